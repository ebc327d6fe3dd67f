// Package workbook writes the quote dataset into an existing spreadsheet.
//
// Only cell values below the header row are touched. Drawings such as the chart
// bound to the data range are carried over untouched when the file is saved.
package workbook

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	currency "github.com/malusev998/quote-sheet"
)

const (
	FirstDataRow = 2
	FirstColumn  = 1
	DateFormat   = "yyyy-mm-dd"
)

var ErrSheetNotFound = errors.New("sheet is not found in workbook")

type Loader struct {
	Path   string
	Sheet  string
	Logger *zap.Logger
}

// Load clears the previous data block, writes quotes from row 2 onwards and saves
// the workbook back to Path.
func (l Loader) Load(quotes []currency.Quote) error {
	logger := l.Logger

	if logger == nil {
		logger = zap.NewNop()
	}

	f, err := excelize.OpenFile(l.Path)
	if err != nil {
		return fmt.Errorf("opening workbook %s: %w", l.Path, err)
	}

	defer f.Close()

	idx, err := f.GetSheetIndex(l.Sheet)
	if err != nil {
		return fmt.Errorf("looking up sheet %q: %w", l.Sheet, err)
	}

	if idx == -1 {
		return fmt.Errorf("%w: %q in %s", ErrSheetNotFound, l.Sheet, l.Path)
	}

	cleared, err := clearRows(f, l.Sheet)
	if err != nil {
		return err
	}

	if err := writeRows(f, l.Sheet, quotes); err != nil {
		return err
	}

	if err := save(f, l.Path); err != nil {
		return err
	}

	logger.Info("workbook updated",
		zap.String("path", l.Path),
		zap.String("sheet", l.Sheet),
		zap.Int("cleared_rows", cleared),
		zap.Int("written_rows", len(quotes)),
	)

	return nil
}

// Bounds reports the last row and column of sheet holding a value.
func Bounds(f *excelize.File, sheet string) (maxRow, maxCol int, err error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return 0, 0, fmt.Errorf("reading rows of %q: %w", sheet, err)
	}

	maxRow = len(rows)

	for _, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}

	return maxRow, maxCol, nil
}

func clearRows(f *excelize.File, sheet string) (int, error) {
	maxRow, maxCol, err := Bounds(f, sheet)
	if err != nil {
		return 0, err
	}

	for row := FirstDataRow; row <= maxRow; row++ {
		for col := FirstColumn; col <= maxCol; col++ {
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return 0, err
			}

			if err := f.SetCellValue(sheet, cell, nil); err != nil {
				return 0, fmt.Errorf("clearing %s: %w", cell, err)
			}
		}
	}

	if maxRow < FirstDataRow {
		return 0, nil
	}

	return maxRow - FirstDataRow + 1, nil
}

func writeRows(f *excelize.File, sheet string, quotes []currency.Quote) error {
	if len(quotes) == 0 {
		return nil
	}

	format := DateFormat
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &format})
	if err != nil {
		return fmt.Errorf("creating date style: %w", err)
	}

	for i, q := range quotes {
		row := FirstDataRow + i
		y, m, d := q.Date.Date()

		values := []interface{}{
			time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
			q.Bid,
			q.Ask,
			q.High,
			q.Low,
		}

		for j, value := range values {
			cell, err := excelize.CoordinatesToCellName(FirstColumn+j, row)
			if err != nil {
				return err
			}

			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("writing %s: %w", cell, err)
			}
		}

		dateCell, _ := excelize.CoordinatesToCellName(FirstColumn, row)
		if err := f.SetCellStyle(sheet, dateCell, dateCell, style); err != nil {
			return fmt.Errorf("styling %s: %w", dateCell, err)
		}
	}

	return nil
}

// save writes the workbook next to path and renames it over the original, so a
// failed write leaves the previous file intact.
func save(f *excelize.File, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".quote-sheet-*.xlsx")
	if err != nil {
		return fmt.Errorf("creating temporary workbook: %w", err)
	}

	defer os.Remove(tmp.Name())

	if err := f.Write(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing workbook: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("syncing workbook: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temporary workbook: %w", err)
	}

	if info, err := os.Stat(path); err == nil {
		_ = os.Chmod(tmp.Name(), info.Mode())
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing workbook %s: %w", path, err)
	}

	return nil
}
