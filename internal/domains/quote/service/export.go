package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"quotes-api/internal/domains/quote/model"
)

const exportSheetName = "Quotes"

var exportHeaders = []string{"ID", "Author ID", "Author", "Text", "Rating", "Created"}

// ExportToExcel builds a workbook with one row per visible quote.
func (s *quoteService) ExportToExcel(ctx context.Context, filter model.QuoteFilter) (*excelize.File, error) {
	quotes, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}

	f, err := buildQuotesExcelFile(quotes)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}
	return f, nil
}

func buildQuotesExcelFile(quotes []*model.Quote) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := fillQuotesSheet(f, quotes); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

func fillQuotesSheet(f *excelize.File, quotes []*model.Quote) error {
	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return err
	}

	headers := make([]any, len(exportHeaders))
	for i, h := range exportHeaders {
		headers[i] = h
	}
	if err := setRow(f, 1, headers); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(exportSheetName, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, q := range quotes {
		values := []any{
			q.ID,
			q.AuthorID,
			q.AuthorName,
			q.Text,
			q.Rating,
			q.CreatedAt.Format(model.DateLayout),
		}
		if err := setRow(f, i+2, values); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(exportSheetName, "D", "D", 80); err != nil {
		return fmt.Errorf("set text column width: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(exportSheetName, cell, v); err != nil {
			return err
		}
	}
	return nil
}
