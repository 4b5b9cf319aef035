package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hosfile/prepay-api/internal/export"
	"github.com/hosfile/prepay-api/internal/models"
	appErrors "github.com/hosfile/prepay-api/pkg/errors"
)

type exportLister interface {
	List(ctx context.Context, hospital string) ([]models.Submission, error)
}

// ExportResult bundles a rendered listing for download.
type ExportResult struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportService renders filtered submission listings as CSV or PDF files.
type ExportService struct {
	store exportLister
}

// NewExportService constructs the service.
func NewExportService(store exportLister) *ExportService {
	return &ExportService{store: store}
}

// Export renders the listing for the given hospital filter in the requested
// format (csv or pdf).
func (s *ExportService) Export(ctx context.Context, hospital, format string) (*ExportResult, error) {
	if format != "csv" && format != "pdf" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	items, err := s.store.List(ctx, hospital)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list submissions for export")
	}

	stamp := time.Now().Format("20060102-150405")
	result := &ExportResult{}
	switch format {
	case "csv":
		content, err := export.CSV(items)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		result.Filename = fmt.Sprintf("submissions-%s.csv", stamp)
		result.ContentType = "text/csv"
		result.Content = content
	case "pdf":
		content, err := export.PDF(items, "Pre-payment Submissions")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		result.Filename = fmt.Sprintf("submissions-%s.pdf", stamp)
		result.ContentType = "application/pdf"
		result.Content = content
	}
	return result, nil
}
