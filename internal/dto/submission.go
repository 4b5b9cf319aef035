package dto

import "github.com/hosfile/prepay-api/internal/models"

// CreateSubmissionRequest contains the multipart form fields submitted
// alongside an optional file upload.
type CreateSubmissionRequest struct {
	Content  string                  `form:"content" json:"content" validate:"required,min=1"`
	Hospital models.Hospital         `form:"hospital" json:"hospital" validate:"required,oneof=안암병원 구로병원 안산병원 안양병원 기타"`
	Category string                  `form:"category" json:"category"`
	Status   models.SubmissionStatus `form:"status" json:"status" validate:"omitempty,oneof=pending completed failed"`
}

// UpdateSubmissionRequest is a partial overlay; nil fields are left untouched.
type UpdateSubmissionRequest struct {
	Content  *string                  `json:"content"`
	Hospital *models.Hospital         `json:"hospital"`
	Category *string                  `json:"category"`
	FileName *string                  `json:"fileName"`
	FilePath *string                  `json:"filePath"`
	FileSize *string                  `json:"fileSize"`
	Status   *models.SubmissionStatus `json:"status"`
}
