// Package output provides utilities for formatting and displaying site grading results.
package output

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sitegrade/sitegrade/internal/site"
	"github.com/sitegrade/sitegrade/pkg/constants"
	"github.com/sitegrade/sitegrade/pkg/format"
)

// PrettyFormat outputs a human-readable rather than machine-readable summary.
func PrettyFormat(report *site.Report) {
	p := message.NewPrinter(language.English)
	fmt.Printf("--- Grading plan for site %s (run %s) ---\n", report.Site, report.RunID)
	fmt.Printf("Anchor elevation | %s\n", format.Elevation(report.Anchor))
	fmt.Printf("Design elevation | %s\n", format.Elevation(report.Height))
	if report.Rotation != 0 {
		fmt.Printf("Rotation         | %.1f deg\n", report.Rotation)
	}
	_, _ = p.Printf("Candidates       | %d evaluated of %d\n", report.Evaluated, report.Candidates)
	if report.Cancelled {
		fmt.Printf("Search was cancelled; best candidate found so far is shown.\n")
	}
	fmt.Printf("\n")

	fmt.Printf("Surface | Kind | Height | Slope | Area | Cut | Fill | Cost\n")
	fmt.Printf("_______ | ____ | ______ | _____ | ____ | ___ | ____ | ____\n")
	for _, s := range report.Surfaces {
		slope := "-"
		if s.Kind == constants.SurfaceKindSloped {
			slope = fmt.Sprintf("%.2f%%", s.Slope)
		}
		fmt.Printf("%s | %s | %s | %s | %s | %s | %s | %s\n",
			s.Name, s.Kind, format.Elevation(s.Height), slope, format.Area(s.Area),
			format.Volume(s.Volumes.Cut+s.Volumes.EmbankmentCut),
			format.Volume(s.Volumes.Fill+s.Volumes.EmbankmentFill),
			format.Currency(s.Costs.Total))
	}
	fmt.Printf("\n")

	for _, s := range report.Surfaces {
		if n := len(s.Lines); n > 0 {
			fmt.Printf("Surface %s meets the existing grade along %d intersection line(s)\n", s.Name, n)
		}
	}

	fmt.Printf("\nMaterial balance\n")
	fmt.Printf("Available after swell      | %s\n", format.Volume(report.Balance.Available))
	fmt.Printf("Required after compaction  | %s\n", format.Volume(report.Balance.Required))
	fmt.Printf("Reused cut as fill         | %s\n", format.Volume(report.Balance.Reused))
	fmt.Printf("Surplus to haul off        | %s\n", format.Volume(report.Balance.Surplus))
	fmt.Printf("Deficit to import          | %s\n", format.Volume(report.Balance.Deficit))

	fmt.Printf("\nCost breakdown\n")
	fmt.Printf("Excavation    | %s\n", format.Currency(report.Costs.Excavation))
	fmt.Printf("Transport     | %s\n", format.Currency(report.Costs.Transport))
	fmt.Printf("Fill material | %s\n", format.Currency(report.Costs.FillMaterial))
	fmt.Printf("Compaction    | %s\n", format.Currency(report.Costs.Compaction))
	fmt.Printf("Surfacing     | %s\n", format.Currency(report.Costs.Surfacing))
	fmt.Printf("Total         | %s\n", format.Currency(report.Costs.Total))
}

// CsvFormat outputs in comma-separated value format, one row per surface
// followed by the site totals.
func CsvFormat(report *site.Report) {
	fmt.Printf(`"surface","kind","height_m","slope_percent","area_m2","cut_m3","fill_m3","embankment_cut_m3","embankment_fill_m3","surplus_m3","deficit_m3","cost"`)
	fmt.Printf("\n")
	for _, s := range report.Surfaces {
		slope := ""
		if s.Kind == constants.SurfaceKindSloped {
			slope = fmt.Sprintf("%.2f", s.Slope)
		}
		fmt.Printf(`"%s","%s","%.2f","%s","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f"`,
			s.Name, s.Kind, s.Height, slope, s.Area,
			s.Volumes.Cut, s.Volumes.Fill, s.Volumes.EmbankmentCut, s.Volumes.EmbankmentFill,
			s.Balance.Surplus, s.Balance.Deficit, s.Costs.Total)
		fmt.Printf("\n")
	}
	totalArea := 0.0
	for _, s := range report.Surfaces {
		totalArea += s.Area
	}
	fmt.Printf(`"TOTAL","","%.2f","","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f"`,
		report.Height, totalArea,
		report.Volumes.Cut, report.Volumes.Fill, report.Volumes.EmbankmentCut, report.Volumes.EmbankmentFill,
		report.Balance.Surplus, report.Balance.Deficit, report.Costs.Total)
	fmt.Printf("\n")
}
