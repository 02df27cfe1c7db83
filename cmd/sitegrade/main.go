package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/sitegrade/sitegrade/internal/config"
	"github.com/sitegrade/sitegrade/internal/engine"
	"github.com/sitegrade/sitegrade/internal/geometry"
	"github.com/sitegrade/sitegrade/internal/site"
	"github.com/sitegrade/sitegrade/internal/volume"
	"github.com/sitegrade/sitegrade/pkg/ascgrid"
	"github.com/sitegrade/sitegrade/pkg/constants"
	"github.com/sitegrade/sitegrade/pkg/output"
	"github.com/sitegrade/sitegrade/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var config zap.Config
	switch format {
	case "console":
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		config.OutputPaths = []string{loggingConfig.OutputFile}
		config.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return config.Build()
}

func main() {
	// Process command line flags first to get config and terrain locations
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to site configuration file")
	terrainLocation := flag.String("terrain", constants.DefaultTerrainFile, "path to ESRI ASCII terrain file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	workers := flag.Int("workers", runtime.NumCPU(), "number of concurrent candidate evaluations")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadSite(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty // Default to pretty format
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}
	if err := conf.Validate(); err != nil {
		logger.Fatal("invalid site configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Load the terrain raster the surfaces will be graded into.
	grid, err := ascgrid.Load(*terrainLocation)
	if err != nil {
		logger.Fatal("failed to load terrain",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	logger.Info("loaded terrain grid",
		zap.String("op", "main"),
		zap.Int("cols", grid.Cols()),
		zap.Int("rows", grid.Rows()),
		zap.Float64("cellSize", grid.CellSize()),
	)
	if min, max, ok := grid.MinMax(); ok {
		for _, warning := range validation.SearchWindowWarnings(conf.Site.Anchor, conf.Site.WindowBelow, conf.Site.WindowAbove, min, max) {
			logger.Warn("Configuration warning: "+warning,
				zap.String("op", "main"),
			)
		}
	}

	// Convert the configuration into the coordinator's plan and pricing.
	plan, costing, err := conf.BuildPlan()
	if err != nil {
		logger.Fatal("failed to build site plan",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// An interrupt cancels the search; the best candidate found so far is
	// still reported.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	geo := geometry.NewEngine(logger, geometry.StrategyVector)
	calc := volume.NewCalculator(logger, geo, conf.Embankment.Angle())
	coordinator := site.NewCoordinator(logger, geo, calc, grid, conf.Site.Strict)

	outcome, err := coordinator.Run(ctx, plan, engine.Options{Workers: *workers})
	if err != nil {
		logger.Fatal("earthwork search failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	report, err := coordinator.Report(plan, outcome, costing)
	if err != nil {
		logger.Fatal("failed to assemble site report",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(report)
	case constants.OutputFormatCSV:
		output.CsvFormat(report)
	}

}
