package export

import (
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/jengzang/evjourney-backend-go/internal/models"
)

// pdfColumn is one column of the trip table in the PDF summary
type pdfColumn struct {
	label string
	width float64 // mm
	align string
	value func(models.Trip) string
}

var pdfColumns = []pdfColumn{
	{"Date", 22, "L", func(t models.Trip) string { return t.DatePart() }},
	{"From", 52, "L", func(t models.Trip) string { return t.StartAddress }},
	{"To", 52, "L", func(t models.Trip) string { return t.EndAddress }},
	{"km", 18, "R", func(t models.Trip) string { return models.Fixed(t.DistanceKm, 1) }},
	{"kWh", 16, "R", func(t models.Trip) string { return models.Fixed(t.ConsumptionKwh, 1) }},
	{"kWh/100km", 20, "R", func(t models.Trip) string { return t.FormattedEfficiency() }},
}

// WritePDF renders a summary report with the aggregate statistics and a trip table
func WritePDF(w io.Writer, trips []models.Trip, s *models.Statistics, generated time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("EV Journey Summary", false)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "EV JOURNEY SUMMARY")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Generated: "+generated.UTC().Format("2006-01-02 15:04")+" UTC")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Statistics")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range summaryLines(s) {
		pdf.Cell(0, 6, tr(line))
		pdf.Ln(6)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Trips (%d)", len(trips)))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 9)
	for _, c := range pdfColumns {
		pdf.CellFormat(c.width, 6, c.label, "1", 0, c.align, false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, t := range trips {
		for _, c := range pdfColumns {
			pdf.CellFormat(c.width, 5, tr(clip(pdf, c.value(t), c.width-2)), "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}

func summaryLines(s *models.Statistics) []string {
	if s == nil {
		return []string{"No trips in the current selection."}
	}
	return []string{
		fmt.Sprintf("Trips: %d", s.TotalTrips),
		fmt.Sprintf("Total distance: %s km", models.Fixed(s.TotalDistance, 2)),
		fmt.Sprintf("Total consumption: %s kWh", models.Fixed(s.TotalConsumption, 2)),
		fmt.Sprintf("Average efficiency: %s kWh/100km", models.Fixed(s.AvgEfficiency, 2)),
		fmt.Sprintf("Best / worst efficiency: %s / %s kWh/100km",
			models.Fixed(s.BestEfficiency, 2), models.Fixed(s.WorstEfficiency, 2)),
		fmt.Sprintf("Average trip: %s km", models.Fixed(s.AvgTripDistance, 2)),
		fmt.Sprintf("Odometer: %d - %d km", s.OdometerStart, s.OdometerEnd),
		fmt.Sprintf("Fuel saved: %s L, CO2 avoided: %s kg (%s tree-years)",
			models.Fixed(s.GasSaved, 2), models.Fixed(s.CarbonSaved, 2), models.Fixed(s.TreesEquivalent, 1)),
	}
}

// clip shortens s with an ellipsis until it fits width at the current font
func clip(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}

// PDFFilename returns the download name of a PDF summary made at now
func PDFFilename(now time.Time) string {
	return "evjourney-summary-" + now.UTC().Format("2006-01-02") + ".pdf"
}
