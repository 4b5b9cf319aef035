// Package export renders submission listings into downloadable documents.
package export

import (
	"github.com/hosfile/prepay-api/internal/models"
)

var columns = []string{"ID", "Hospital", "Category", "Content", "File", "Size", "Status", "Created At"}

// rowOf flattens one submission into the column order above. Absent file
// fields render as a dash so every row has the same width.
func rowOf(s models.Submission) []string {
	file, size := "-", "-"
	if s.FileName != nil {
		file = *s.FileName
	}
	if s.FileSize != nil {
		size = *s.FileSize
	}
	return []string{
		s.ID,
		string(s.Hospital),
		s.Category,
		s.Content,
		file,
		size,
		string(s.Status),
		s.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
