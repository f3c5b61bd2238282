package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jengzang/evjourney-backend-go/internal/models"
)

// DecodeXLSX reads the first worksheet of a workbook.
// Row 1 holds the column names; rows without any value are skipped.
func DecodeXLSX(r io.Reader) ([]models.RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open workbook: %v", ErrDecode, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: no worksheet found in the Excel file", ErrDecode)
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read sheet %q: %v", ErrDecode, sheets[0], err)
	}
	if len(cells) == 0 {
		return []models.RawRow{}, nil
	}

	headers := cleanHeaders(cells[0])
	rows := []models.RawRow{}
	for _, record := range cells[1:] {
		row := buildRow(headers, record)
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}
