package ingest

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jengzang/evjourney-backend-go/internal/models"
)

var (
	// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrDecode wraps malformed top-level input
	ErrDecode = errors.New("failed to decode journey log")
)

// Supported formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// FormatOf returns the format implied by a file name, or "" when unsupported
func FormatOf(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV
	case ".xlsx":
		return FormatXLSX
	default:
		return ""
	}
}

// Decode reads raw rows from r, choosing the decoder from the file extension
func Decode(filename string, r io.Reader) ([]models.RawRow, error) {
	switch FormatOf(filename) {
	case FormatCSV:
		return DecodeCSV(r)
	case FormatXLSX:
		return DecodeXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// typeCell converts numeric and boolean text to typed values.
// Blank cells report false and are left out of the row.
func typeCell(raw string) (any, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, false
	}
	switch s {
	case "true", "TRUE", "True":
		return true, true
	case "false", "FALSE", "False":
		return false, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && looksNumeric(s) {
		return f, true
	}
	return raw, true
}

// looksNumeric rejects forms ParseFloat accepts but a spreadsheet would keep as text
func looksNumeric(s string) bool {
	lower := strings.ToLower(s)
	if strings.Contains(lower, "inf") || strings.Contains(lower, "nan") ||
		strings.HasPrefix(lower, "0x") || strings.Contains(s, "_") {
		return false
	}
	return true
}

// buildRow maps header names onto cell values
func buildRow(headers, cells []string) models.RawRow {
	row := make(models.RawRow, len(headers))
	for i, cell := range cells {
		if i >= len(headers) || headers[i] == "" {
			continue
		}
		if v, ok := typeCell(cell); ok {
			row[headers[i]] = v
		}
	}
	return row
}

func cleanHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	for i, h := range raw {
		h = strings.TrimPrefix(h, "\ufeff")
		headers[i] = strings.TrimSpace(h)
	}
	return headers
}
