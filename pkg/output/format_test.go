package output

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/ctessum/geom"

	"github.com/sitegrade/sitegrade/internal/balance"
	"github.com/sitegrade/sitegrade/internal/intersect"
	"github.com/sitegrade/sitegrade/internal/site"
	"github.com/sitegrade/sitegrade/internal/volume"
)

func testReport() *site.Report {
	return &site.Report{
		Site:       "turbine-07",
		RunID:      "a1b2c3d4",
		Anchor:     100.5,
		Height:     100,
		Evaluated:  4,
		Candidates: 4,
		Surfaces: []site.SurfaceReport{
			{
				Name: "pad", Primary: true, Kind: "flat", Height: 100, Area: 100,
				Volumes: volume.Result{Cut: 1250.25},
				Balance: balance.Balance{Available: 1562.81, Surplus: 1562.81},
				Costs:   balance.CostBreakdown{Excavation: 5626.13, Total: 5626.13},
			},
			{
				Name: "apron", Kind: "sloped", Height: 100, Slope: 2.5, Area: 40,
				Volumes: volume.Result{Fill: 30},
				Balance: balance.Balance{Required: 35.29, Deficit: 35.29},
				Costs:   balance.CostBreakdown{Compaction: 66, Total: 66},
				Lines: []intersect.Line{
					{Surface: "apron", Points: []geom.Point{{X: 17, Y: 5}, {X: 17, Y: 15}}},
				},
			},
		},
		Volumes: volume.Result{Cut: 1250.25, Fill: 30},
		Balance: balance.Balance{Available: 1562.81, Required: 35.29, Reused: 35.29, Surplus: 1527.52},
		Costs: balance.CostBreakdown{
			Excavation: 5626.13, Transport: 4582.57, Compaction: 66, Surfacing: 504, Total: 10778.7,
		},
	}
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() error = %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func TestPrettyFormat(t *testing.T) {
	output := captureStdout(t, func() {
		PrettyFormat(testReport())
	})

	expected := []string{
		"--- Grading plan for site turbine-07 (run a1b2c3d4) ---",
		"Anchor elevation | 100.50 m",
		"Design elevation | 100.00 m",
		"Candidates       | 4 evaluated of 4",
		"Surface | Kind | Height | Slope | Area | Cut | Fill | Cost",
		"pad | flat | 100.00 m | - | 100.00 m² | 1,250.25 m³ | 0.00 m³ | $5,626.13",
		"apron | sloped | 100.00 m | 2.50% | 40.00 m² | 0.00 m³ | 30.00 m³ | $66.00",
		"Surface apron meets the existing grade along 1 intersection line(s)",
		"Reused cut as fill         | 35.29 m³",
		"Surplus to haul off        | 1,527.52 m³",
		"Total         | $10,778.70",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("PrettyFormat output missing %q", want)
		}
	}

	if strings.Contains(output, "Rotation") {
		t.Errorf("PrettyFormat should omit the rotation row for unrotated plans")
	}
	if strings.Contains(output, "cancelled") {
		t.Errorf("PrettyFormat should omit the cancellation notice for complete runs")
	}
}

func TestPrettyFormatRotationAndCancellation(t *testing.T) {
	report := testReport()
	report.Rotation = 45
	report.Cancelled = true

	output := captureStdout(t, func() {
		PrettyFormat(report)
	})

	if !strings.Contains(output, "Rotation         | 45.0 deg") {
		t.Errorf("PrettyFormat missing rotation row, got:\n%s", output)
	}
	if !strings.Contains(output, "Search was cancelled") {
		t.Errorf("PrettyFormat missing cancellation notice")
	}
}

func TestCsvFormat(t *testing.T) {
	output := captureStdout(t, func() {
		CsvFormat(testReport())
	})

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("CsvFormat produced %d lines, expected header, two surfaces and totals", len(lines))
	}

	header := `"surface","kind","height_m","slope_percent","area_m2","cut_m3","fill_m3","embankment_cut_m3","embankment_fill_m3","surplus_m3","deficit_m3","cost"`
	if lines[0] != header {
		t.Errorf("CsvFormat header = %s, expected %s", lines[0], header)
	}
	padRow := `"pad","flat","100.00","","100.00","1250.25","0.00","0.00","0.00","1562.81","0.00","5626.13"`
	if lines[1] != padRow {
		t.Errorf("CsvFormat pad row = %s, expected %s", lines[1], padRow)
	}
	apronRow := `"apron","sloped","100.00","2.50","40.00","0.00","30.00","0.00","0.00","0.00","35.29","66.00"`
	if lines[2] != apronRow {
		t.Errorf("CsvFormat apron row = %s, expected %s", lines[2], apronRow)
	}
	totalRow := `"TOTAL","","100.00","","140.00","1250.25","30.00","0.00","0.00","1527.52","0.00","10778.70"`
	if lines[3] != totalRow {
		t.Errorf("CsvFormat totals row = %s, expected %s", lines[3], totalRow)
	}
}
