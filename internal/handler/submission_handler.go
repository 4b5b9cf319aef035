package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hosfile/prepay-api/internal/dto"
	"github.com/hosfile/prepay-api/internal/models"
	"github.com/hosfile/prepay-api/internal/service"
	appErrors "github.com/hosfile/prepay-api/pkg/errors"
	"github.com/hosfile/prepay-api/pkg/response"
)

type submissionService interface {
	Create(ctx context.Context, req dto.CreateSubmissionRequest, upload *service.FileUpload) (*models.Submission, error)
	List(ctx context.Context, hospital string) ([]models.Submission, error)
	Get(ctx context.Context, id string) (*models.Submission, error)
	Update(ctx context.Context, id string, updates dto.UpdateSubmissionRequest) (*models.Submission, error)
	Delete(ctx context.Context, id string) error
	Counts(ctx context.Context) (*models.SubmissionCounts, error)
	NasStatus(ctx context.Context) error
}

// SubmissionHandler manages the submission HTTP endpoints.
type SubmissionHandler struct {
	service submissionService
}

// NewSubmissionHandler constructs the handler.
func NewSubmissionHandler(service submissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

// List godoc
// @Summary List submissions
// @Tags Submissions
// @Produce json
// @Param hospital query string false "Hospital filter (전체 or omitted = all)"
// @Success 200 {array} models.Submission
// @Router /api/submissions [get]
func (h *SubmissionHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.Query("hospital"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

// Get godoc
// @Summary Get one submission
// @Tags Submissions
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} models.Submission
// @Failure 404 {object} response.ErrorBody
// @Router /api/submissions/{id} [get]
func (h *SubmissionHandler) Get(c *gin.Context) {
	submission, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, submission)
}

// Create godoc
// @Summary Register a pre-payment submission
// @Tags Submissions
// @Accept multipart/form-data
// @Produce json
// @Param hospital formData string true "Hospital"
// @Param content formData string true "Content"
// @Param category formData string false "Category"
// @Param status formData string false "Status"
// @Param file formData file false "Attachment (jpeg/png/gif/pdf, max 10MB)"
// @Success 201 {object} models.Submission
// @Failure 400 {object} response.ErrorBody
// @Router /api/submissions [post]
func (h *SubmissionHandler) Create(c *gin.Context) {
	var req dto.CreateSubmissionRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "입력 데이터가 올바르지 않습니다."))
		return
	}

	var upload *service.FileUpload
	fileHeader, err := c.FormFile("file")
	switch {
	case err == nil:
		src, openErr := fileHeader.Open()
		if openErr != nil {
			response.Error(c, appErrors.Wrap(openErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "파일을 여는 중 오류가 발생했습니다."))
			return
		}
		defer src.Close() //nolint:errcheck
		upload = &service.FileUpload{
			Filename: fileHeader.Filename,
			Size:     fileHeader.Size,
			MimeType: fileHeader.Header.Get("Content-Type"),
			Content:  src,
		}
	case errors.Is(err, http.ErrMissingFile):
		// attachment is optional
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "잘못된 파일 업로드 요청입니다."))
		return
	}

	submission, err := h.service.Create(c.Request.Context(), req, upload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, submission)
}

// Update godoc
// @Summary Partially update a submission
// @Tags Submissions
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} models.Submission
// @Failure 404 {object} response.ErrorBody
// @Router /api/submissions/{id} [patch]
func (h *SubmissionHandler) Update(c *gin.Context) {
	var updates dto.UpdateSubmissionRequest
	if err := c.ShouldBindJSON(&updates); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "입력 데이터가 올바르지 않습니다."))
		return
	}

	submission, err := h.service.Update(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, submission)
}

// Delete godoc
// @Summary Delete a submission
// @Tags Submissions
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} response.ErrorBody
// @Router /api/submissions/{id} [delete]
func (h *SubmissionHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "제출물이 삭제되었습니다.")
}

// ByHospital godoc
// @Summary List submissions for a single hospital
// @Tags Submissions
// @Produce json
// @Param hospital path string true "Hospital"
// @Success 200 {array} models.Submission
// @Router /api/submissions/hospital/{hospital} [get]
func (h *SubmissionHandler) ByHospital(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.Param("hospital"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

// Counts godoc
// @Summary Live submission counts per hospital
// @Tags Submissions
// @Produce json
// @Success 200 {object} models.SubmissionCounts
// @Router /api/submissions/counts [get]
func (h *SubmissionHandler) Counts(c *gin.Context) {
	counts, err := h.service.Counts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, counts)
}

// NasStatus godoc
// @Summary NAS connectivity probe
// @Tags NAS
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/nas/status [get]
func (h *SubmissionHandler) NasStatus(c *gin.Context) {
	if err := h.service.NasStatus(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "disconnected", "message": "NAS 연결 실패"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "connected", "message": "NAS 연결 정상"})
}
