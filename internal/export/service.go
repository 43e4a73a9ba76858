// Package export renders analysis results as XLSX workbooks for accountant
// handoff.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/thepesz/dueasy-sub004/constants"
	"github.com/thepesz/dueasy-sub004/internal/entity"
)

// Service produces XLSX bytes from analysis results.
type Service struct {
	logger *slog.Logger
}

// NewService builds the export service.
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ResultsXLSX returns an XLSX workbook with one row per extracted field per
// document: accepted value, confidence, provider, and alternative count.
func (s *Service) ResultsXLSX(results []*entity.DocumentAnalysisResult) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Analysis"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if index, _ := f.GetSheetIndex("Sheet1"); index != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"Document",
		"Field",
		"Value",
		"Confidence",
		"Provider",
		"Alternatives",
		"Overall Confidence",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for docIdx, res := range results {
		if res == nil {
			continue
		}
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		for _, name := range constants.AllFields {
			field := res.FieldByName(name)
			accepted, ok := field.Accepted()
			if !ok {
				continue
			}
			write(1, docIdx+1)
			write(2, string(name))
			write(3, accepted.DisplayValue)
			write(4, fmt.Sprintf("%.2f", accepted.Confidence))
			write(5, string(accepted.Method))
			write(6, len(field.Candidates)-1)
			write(7, fmt.Sprintf("%.2f", res.OverallConfidence))
			row++
		}
	}

	var buf []byte
	w, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	buf = w.Bytes()

	s.logger.Info("export.results_xlsx",
		"documents", len(results),
		"rows", row-2,
		"bytes", len(buf),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf, nil
}
