package usecase

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/xavierca1/vault-leads/internal/entity"
)

func TestExportCSVEmptyResultIsHeaderOnly(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Find", mock.Anything, mock.Anything).Return([]entity.Lead{}, nil)

	uc := NewExportLeadsUseCase(repo)
	file, err := uc.Execute(context.Background(), ListInput{Search: "matches-nothing"}, FormatCSV)

	require.NoError(t, err)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)
	assert.True(t, strings.HasPrefix(file.Filename, "leads_"))
	assert.True(t, strings.HasSuffix(file.Filename, ".csv"))

	content := string(file.Data)
	assert.Equal(t, strings.Join(exportHeader, ",")+"\r\n", content)
}

func TestExportCSVQuotingAndCRLF(t *testing.T) {
	created := time.Date(2026, 1, 8, 23, 57, 55, 0, time.UTC)

	repo := new(MockLeadRepository)
	repo.On("Find", mock.Anything, mock.Anything).Return([]entity.Lead{
		{
			ID:        "lead-1",
			Email:     "a@b.co",
			FullName:  `Jane "JJ" Doe`,
			Company:   "Acme, Inc.",
			CreatedAt: created,
		},
	}, nil)

	uc := NewExportLeadsUseCase(repo)
	file, err := uc.Execute(context.Background(), ListInput{}, FormatCSV)
	require.NoError(t, err)

	content := string(file.Data)
	lines := strings.Split(strings.TrimSuffix(content, "\r\n"), "\r\n")
	require.Len(t, lines, 2)

	// comma forces quoting, embedded quotes are doubled
	assert.Contains(t, lines[1], `"Acme, Inc."`)
	assert.Contains(t, lines[1], `"Jane ""JJ"" Doe"`)
	assert.Contains(t, lines[1], "2026-01-08 23:57:55")
}

func TestExportXLSX(t *testing.T) {
	created := time.Date(2026, 1, 8, 16, 25, 0, 0, time.UTC)
	approved := created.Add(30 * time.Minute)

	repo := new(MockLeadRepository)
	repo.On("Find", mock.Anything, mock.Anything).Return([]entity.Lead{
		{
			ID:         "lead-1",
			Email:      "a@b.co",
			FullName:   "A B",
			CreatedAt:  created,
			ApprovedAt: &approved,
		},
	}, nil)

	uc := NewExportLeadsUseCase(repo)
	file, err := uc.Execute(context.Background(), ListInput{}, FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", file.ContentType)
	assert.True(t, strings.HasSuffix(file.Filename, ".xlsx"))

	wb, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer wb.Close()

	got, err := wb.GetCellValue(exportSheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "id", got)

	email, err := wb.GetCellValue(exportSheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", email)

	createdCell, err := wb.GetCellValue(exportSheetName, "N2")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-08 16:25:00", createdCell)
}

func TestExportXLSXEmptyResultStillValidWorkbook(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Find", mock.Anything, mock.Anything).Return([]entity.Lead{}, nil)

	uc := NewExportLeadsUseCase(repo)
	file, err := uc.Execute(context.Background(), ListInput{}, FormatXLSX)
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows(exportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, exportHeader, rows[0])
}

func TestExportUnknownFormatFallsBackToCSV(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Find", mock.Anything, mock.Anything).Return([]entity.Lead{}, nil)

	uc := NewExportLeadsUseCase(repo)
	file, err := uc.Execute(context.Background(), ListInput{}, "pdf")

	require.NoError(t, err)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)
}
