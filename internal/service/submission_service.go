package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hosfile/prepay-api/internal/dto"
	"github.com/hosfile/prepay-api/internal/models"
	"github.com/hosfile/prepay-api/internal/store"
	appErrors "github.com/hosfile/prepay-api/pkg/errors"
)

type submissionStore interface {
	Create(ctx context.Context, params store.SubmissionParams) (*models.Submission, error)
	GetByID(ctx context.Context, id string) (*models.Submission, error)
	List(ctx context.Context, hospital string) ([]models.Submission, error)
	Update(ctx context.Context, id string, updates dto.UpdateSubmissionRequest) (*models.Submission, error)
	Delete(ctx context.Context, id string) (bool, error)
	CountByHospital(ctx context.Context) (*models.SubmissionCounts, error)
}

type uploadStorage interface {
	UniqueName(field, original string) string
	SaveStream(filename string, r io.Reader) (string, error)
	Delete(filename string) error
}

type nasUploader interface {
	Upload(ctx context.Context, localPath, destFolder string) error
	Probe(ctx context.Context) error
}

// FileUpload carries the optional attachment accompanying a create request.
type FileUpload struct {
	Filename string
	Size     int64
	MimeType string
	Content  io.Reader
}

// SubmissionServiceConfig holds upload validation parameters.
type SubmissionServiceConfig struct {
	MaxFileSize    int64
	AllowedMIMEs   []string
	NasDestination string
}

// SubmissionService orchestrates the submission lifecycle. Create is the only
// multi-step operation: validate, stage the attachment on local disk, push it
// to the NAS best-effort, then persist the record.
type SubmissionService struct {
	store     submissionStore
	uploads   uploadStorage
	nas       nasUploader
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       SubmissionServiceConfig
	mimeSet   map[string]struct{}
}

// NewSubmissionService constructs the service with defaults.
func NewSubmissionService(st submissionStore, uploads uploadStorage, nas nasUploader, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg SubmissionServiceConfig) *SubmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = 10 * 1024 * 1024
	}
	if len(cfg.AllowedMIMEs) == 0 {
		cfg.AllowedMIMEs = []string{"image/jpeg", "image/png", "image/gif", "application/pdf"}
	}
	mimeSet := make(map[string]struct{}, len(cfg.AllowedMIMEs))
	for _, mt := range cfg.AllowedMIMEs {
		mimeSet[strings.ToLower(mt)] = struct{}{}
	}
	return &SubmissionService{
		store:     st,
		uploads:   uploads,
		nas:       nas,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		mimeSet:   mimeSet,
	}
}

// Create validates the form fields, stages the optional attachment and
// persists the record. The NAS push is best-effort: its outcome is logged and
// counted, never surfaced, and never touches the record's status.
func (s *SubmissionService) Create(ctx context.Context, req dto.CreateSubmissionRequest, upload *FileUpload) (*models.Submission, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	params := store.SubmissionParams{
		Content:  req.Content,
		Hospital: req.Hospital,
		Category: req.Category,
		Status:   req.Status,
	}

	var storedName string
	if upload != nil {
		if err := s.checkUpload(upload); err != nil {
			return nil, err
		}
		storedName = s.uploads.UniqueName("file", upload.Filename)
		path, err := s.uploads.SaveStream(storedName, upload.Content)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "파일 저장 중 오류가 발생했습니다.")
		}
		size := fmt.Sprintf("%.2f MB", float64(upload.Size)/1024/1024)
		params.FileName = &upload.Filename
		params.FilePath = &path
		params.FileSize = &size

		s.pushToNAS(ctx, path, storedName)
	}

	submission, err := s.store.Create(ctx, params)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "제출물 생성 중 오류가 발생했습니다.")
	}
	if s.metrics != nil {
		s.metrics.SubmissionCreated()
	}
	return submission, nil
}

// pushToNAS forwards the staged file and discards the outcome; a failure must
// never block the record from being created. On success the local copy is
// removed so the file is not stored twice.
func (s *SubmissionService) pushToNAS(ctx context.Context, path, storedName string) {
	if s.nas == nil {
		return
	}
	if err := s.nas.Upload(ctx, path, s.cfg.NasDestination); err != nil {
		s.logger.Warn("nas upload failed, keeping local copy only", zap.String("path", path), zap.Error(err))
		if s.metrics != nil {
			s.metrics.NasUpload("failure")
		}
		return
	}
	if s.metrics != nil {
		s.metrics.NasUpload("success")
	}
	if err := s.uploads.Delete(storedName); err != nil {
		s.logger.Warn("failed to remove local copy after nas upload", zap.String("path", path), zap.Error(err))
	}
}

// List returns submissions newest first, optionally filtered by hospital.
func (s *SubmissionService) List(ctx context.Context, hospital string) ([]models.Submission, error) {
	items, err := s.store.List(ctx, hospital)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "제출물을 가져오는 중 오류가 발생했습니다.")
	}
	return items, nil
}

// Get fetches one submission by id.
func (s *SubmissionService) Get(ctx context.Context, id string) (*models.Submission, error) {
	submission, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "제출물을 찾을 수 없습니다.")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "제출물을 가져오는 중 오류가 발생했습니다.")
	}
	return submission, nil
}

// Update overlays the supplied fields on an existing submission. No field
// validation is reapplied; whatever the caller sends replaces the stored
// values.
func (s *SubmissionService) Update(ctx context.Context, id string, updates dto.UpdateSubmissionRequest) (*models.Submission, error) {
	submission, err := s.store.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "제출물을 찾을 수 없습니다.")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "제출물 업데이트 중 오류가 발생했습니다.")
	}
	return submission, nil
}

// Delete removes the record and its staged local file when one is present.
func (s *SubmissionService) Delete(ctx context.Context, id string) error {
	submission, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return appErrors.Clone(appErrors.ErrNotFound, "제출물을 찾을 수 없습니다.")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "제출물 삭제 중 오류가 발생했습니다.")
	}

	if submission.HasFile() && s.uploads != nil {
		if err := s.uploads.Delete(filepath.Base(*submission.FilePath)); err != nil {
			s.logger.Warn("failed to remove local file for deleted submission", zap.String("id", id), zap.Error(err))
		}
	}

	existed, err := s.store.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "제출물 삭제 중 오류가 발생했습니다.")
	}
	if !existed {
		return appErrors.Clone(appErrors.ErrNotFound, "제출물을 찾을 수 없습니다.")
	}
	return nil
}

// Counts exposes live per-hospital listing counts.
func (s *SubmissionService) Counts(ctx context.Context) (*models.SubmissionCounts, error) {
	counts, err := s.store.CountByHospital(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "제출물 집계 중 오류가 발생했습니다.")
	}
	return counts, nil
}

// NasStatus probes the appliance with a login/logout round trip.
func (s *SubmissionService) NasStatus(ctx context.Context) error {
	if s.nas == nil {
		return appErrors.Clone(appErrors.ErrUnavailable, "NAS 연동이 설정되지 않았습니다.")
	}
	if err := s.nas.Probe(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "NAS 연결 실패")
	}
	return nil
}

func (s *SubmissionService) checkUpload(upload *FileUpload) error {
	if _, allowed := s.mimeSet[strings.ToLower(upload.MimeType)]; !allowed {
		return appErrors.Clone(appErrors.ErrValidation, "지원하지 않는 파일 형식입니다.")
	}
	if upload.Size > s.cfg.MaxFileSize {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("파일 크기는 %dMB를 초과할 수 없습니다.", s.cfg.MaxFileSize/1024/1024))
	}
	return nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return appErrors.Clone(appErrors.ErrValidation, "입력 데이터가 올바르지 않습니다.")
	}
	details := make([]appErrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, appErrors.FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: fieldMessage(fe),
		})
	}
	return appErrors.Validation("입력 데이터가 올바르지 않습니다.", details)
}

func fieldMessage(fe validator.FieldError) string {
	switch strings.ToLower(fe.Field()) {
	case "hospital":
		return "병원을 선택해주세요"
	case "content":
		return "내용을 입력해주세요"
	case "status":
		return "올바른 상태값이 아닙니다"
	default:
		return fmt.Sprintf("%s 값이 올바르지 않습니다", fe.Field())
	}
}
