package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/xavierca1/vault-leads/internal/entity"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	exportSheetName = "Leads"
)

// ExportFile is a ready-to-download rendering of the filtered lead set.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

var exportHeader = []string{
	"id", "email", "company", "full_name", "phone",
	"account_type", "lead_type", "vertical", "volume",
	"ticket_size", "stage", "role", "source",
	"created_at", "approved_at",
}

type ExportLeadsUseCase struct {
	Repo entity.LeadRepositoryInterface
}

func NewExportLeadsUseCase(repo entity.LeadRepositoryInterface) *ExportLeadsUseCase {
	return &ExportLeadsUseCase{Repo: repo}
}

// Execute re-runs the filtered query (fresh capped fetch, same rules as
// the admin listing) and renders the requested format. Zero matches
// still produce a valid header-only file.
func (uc *ExportLeadsUseCase) Execute(ctx context.Context, in ListInput, format string) (*ExportFile, error) {
	filter := entity.LeadFilter{
		Search:      strings.TrimSpace(in.Search),
		AccountType: normalizeCategory(in.AccountType),
		LeadType:    normalizeCategory(in.LeadType),
		Limit:       ClampLimit(in.Limit),
	}

	leads, err := uc.Repo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatXLSX:
		data, err := buildXLSX(leads)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Filename:    exportFilename(FormatXLSX),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	default:
		data, err := buildCSV(leads)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Filename:    exportFilename(FormatCSV),
			ContentType: "text/csv; charset=utf-8",
			Data:        data,
		}, nil
	}
}

func buildCSV(leads []entity.Lead) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = true

	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for i := range leads {
		if err := w.Write(exportRecord(&leads[i])); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildXLSX(leads []entity.Lead) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, err
	}

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheetName, cell, title); err != nil {
			return nil, err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	lastHeaderCell, _ := excelize.CoordinatesToCellName(len(exportHeader), 1)
	if err := f.SetCellStyle(exportSheetName, "A1", lastHeaderCell, bold); err != nil {
		return nil, err
	}

	for i := range leads {
		record := exportRecord(&leads[i])
		for col, value := range record {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(exportSheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportRecord(l *entity.Lead) []string {
	return []string{
		l.ID,
		l.Email,
		l.Company,
		l.FullName,
		l.Phone,
		l.AccountType,
		l.LeadType,
		l.Vertical,
		l.Volume,
		l.TicketSize,
		l.Stage,
		l.Role,
		l.Source,
		formatExportTime(&l.CreatedAt),
		formatExportTime(l.ApprovedAt),
	}
}

// 2026-01-08 23:57:55
func formatExportTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}

// leads_2026-01-08_16-25.csv
func exportFilename(ext string) string {
	return fmt.Sprintf("leads_%s.%s", time.Now().Format("2006-01-02_15-04"), ext)
}
