package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hosfile/prepay-api/internal/models"
	appErrors "github.com/hosfile/prepay-api/pkg/errors"
)

type exportListerStub struct {
	items        []models.Submission
	lastHospital string
}

func (s *exportListerStub) List(ctx context.Context, hospital string) ([]models.Submission, error) {
	s.lastHospital = hospital
	return s.items, nil
}

func exportFixtures() []models.Submission {
	name := "receipt.pdf"
	size := "0.50 MB"
	return []models.Submission{
		{
			ID:        "sub-2",
			Content:   "영수증 첨부",
			Hospital:  models.HospitalGuro,
			Category:  "구로",
			FileName:  &name,
			FileSize:  &size,
			Status:    models.StatusPending,
			CreatedAt: time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:        "sub-1",
			Content:   "상비약 구매",
			Hospital:  models.HospitalAnyang,
			Category:  "안양",
			Status:    models.StatusCompleted,
			CreatedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestExportServiceCSV(t *testing.T) {
	lister := &exportListerStub{items: exportFixtures()}
	svc := NewExportService(lister)

	result, err := svc.Export(context.Background(), "전체", "csv")
	require.NoError(t, err)

	assert.Equal(t, "전체", lister.lastHospital)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasPrefix(result.Filename, "submissions-"))
	assert.True(t, strings.HasSuffix(result.Filename, ".csv"))

	body := string(result.Content)
	assert.Contains(t, body, "ID,Hospital,Category,Content,File,Size,Status,Created At")
	assert.Contains(t, body, "sub-2,구로병원,구로,영수증 첨부,receipt.pdf,0.50 MB,pending,2025-03-02 10:00:00")
	assert.Contains(t, body, "sub-1,안양병원,안양,상비약 구매,-,-,completed,2025-03-01 09:00:00",
		"rows without an attachment carry dash placeholders")
}

func TestExportServicePDF(t *testing.T) {
	svc := NewExportService(&exportListerStub{items: exportFixtures()})

	result, err := svc.Export(context.Background(), "", "pdf")
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasSuffix(result.Filename, ".pdf"))
	require.True(t, len(result.Content) > 4)
	assert.Equal(t, "%PDF", string(result.Content[:4]))
}

func TestExportServiceUnknownFormat(t *testing.T) {
	svc := NewExportService(&exportListerStub{})

	_, err := svc.Export(context.Background(), "", "xlsx")
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestExportServiceEmptyListingStillRenders(t *testing.T) {
	svc := NewExportService(&exportListerStub{})

	result, err := svc.Export(context.Background(), string(models.HospitalAnsan), "csv")
	require.NoError(t, err)
	assert.Contains(t, string(result.Content), "ID,Hospital")
}
