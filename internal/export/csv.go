// Package export renders trip collections for download.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jengzang/evjourney-backend-go/internal/models"
)

// Column describes one exported field. Value returns either a string,
// which is always quoted, or a number, which is written bare.
type Column struct {
	Key   string
	Label string
	Value func(models.Trip) any
}

// Columns is the fixed export layout
var Columns = []Column{
	{"startDate", "Start Date", func(t models.Trip) any { return t.StartDate }},
	{"endDate", "End Date", func(t models.Trip) any { return t.EndDate }},
	{"startAddress", "Start Address", func(t models.Trip) any { return t.StartAddress }},
	{"endAddress", "End Address", func(t models.Trip) any { return t.EndAddress }},
	{"distanceKm", "Distance (km)", func(t models.Trip) any { return t.DistanceKm }},
	{"consumptionKwh", "Consumption (kWh)", func(t models.Trip) any { return t.ConsumptionKwh }},
	{"efficiency", "Efficiency (kWh/100km)", func(t models.Trip) any { return t.FormattedEfficiency() }},
	{"category", "Category", func(t models.Trip) any { return t.Category }},
	{"socSource", "SOC Start", func(t models.Trip) any { return t.SocSource }},
	{"socDestination", "SOC End", func(t models.Trip) any { return t.SocDestination }},
	{"socDrop", "SOC Drop", func(t models.Trip) any { return t.SocDrop }},
	{"startOdometer", "Start Odometer", func(t models.Trip) any { return t.StartOdometer }},
	{"endOdometer", "End Odometer", func(t models.Trip) any { return t.EndOdometer }},
}

// WriteCSV writes a header row of column labels followed by one row per trip
func WriteCSV(w io.Writer, trips []models.Trip, columns []Column) error {
	bw := bufio.NewWriter(w)

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.Label
	}
	if _, err := bw.WriteString(strings.Join(header, ",") + "\n"); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	fields := make([]string, len(columns))
	for _, t := range trips {
		for i, c := range columns {
			fields[i] = formatField(c.Value(t))
		}
		if _, err := bw.WriteString(strings.Join(fields, ",") + "\n"); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func formatField(v any) string {
	switch x := v.(type) {
	case string:
		return `"` + strings.ReplaceAll(x, `"`, `""`) + `"`
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}

// Filename returns the download name of a CSV export made at now
func Filename(now time.Time) string {
	return "evjourney-export-" + now.UTC().Format("2006-01-02") + ".csv"
}
