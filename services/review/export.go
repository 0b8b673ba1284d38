package review

import (
	"context"
	"fmt"
	"time"

	"sellinginfinity/models"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Reviews"

var exportHeader = []interface{}{
	"ID", "Name", "Email", "Rating", "Review", "Years of experience",
	"Status", "Created at", "Approved at", "Rejected at", "Admin notes",
}

// Export renders the moderation list for status as an xlsx workbook.
func (s *Service) Export(ctx context.Context, status string) ([]byte, error) {
	rows, err := s.ListForModeration(ctx, status)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := exportRow(r)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return buf.Bytes(), nil
}

func exportRow(r models.Review) []interface{} {
	years := ""
	if r.YearsOfExperience != nil {
		years = fmt.Sprint(*r.YearsOfExperience)
	}
	notes := ""
	if r.AdminNotes != nil {
		notes = *r.AdminNotes
	}
	return []interface{}{
		r.ID, r.Name, r.Email, r.Rating, r.ReviewText, years,
		string(r.Status), formatTime(&r.CreatedAt), formatTime(r.ApprovedAt), formatTime(r.RejectedAt), notes,
	}
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
