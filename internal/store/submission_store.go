package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hosfile/prepay-api/internal/dto"
	"github.com/hosfile/prepay-api/internal/models"
)

// ErrNotFound is returned when the referenced id is absent from the store.
var ErrNotFound = errors.New("record not found")

// SubmissionParams carries the validated fields for a new submission.
type SubmissionParams struct {
	Content  string
	Hospital models.Hospital
	Category string
	FileName *string
	FilePath *string
	FileSize *string
	Status   models.SubmissionStatus
}

type submissionRecord struct {
	submission models.Submission
	seq        uint64
}

// SubmissionStore is the authoritative, process-lifetime collection of
// submissions. It is an in-memory map guarded by a RWMutex so the HTTP layer
// may serve requests in parallel.
type SubmissionStore struct {
	mu          sync.RWMutex
	records     map[string]submissionRecord
	seq         uint64
	lastCreated time.Time
}

// NewSubmissionStore constructs an empty store. One instance lives for the
// whole process; tests build their own.
func NewSubmissionStore() *SubmissionStore {
	return &SubmissionStore{records: map[string]submissionRecord{}}
}

// Create assigns a fresh id and creation timestamp and inserts the record.
// It never fails for valid params.
func (s *SubmissionStore) Create(ctx context.Context, params SubmissionParams) (*models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	// createdAt is the sole sort key and must never decrease across creates,
	// even if the wall clock steps backwards.
	if now.Before(s.lastCreated) {
		now = s.lastCreated
	}
	s.lastCreated = now
	s.seq++

	status := params.Status
	if status == "" {
		status = models.StatusPending
	}

	submission := models.Submission{
		ID:        uuid.NewString(),
		Content:   params.Content,
		Hospital:  params.Hospital,
		Category:  params.Category,
		Status:    status,
		CreatedAt: now,
	}
	// File metadata is a trio; a partially supplied set is stored as absent.
	if params.FileName != nil && params.FilePath != nil && params.FileSize != nil {
		submission.FileName = params.FileName
		submission.FilePath = params.FilePath
		submission.FileSize = params.FileSize
	}

	s.records[submission.ID] = submissionRecord{submission: submission, seq: s.seq}
	return &submission, nil
}

// GetByID returns the record or ErrNotFound.
func (s *SubmissionStore) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	submission := rec.submission
	return &submission, nil
}

// List returns records sorted newest first. An empty filter or the 전체
// sentinel returns everything; otherwise only exact hospital matches.
func (s *SubmissionStore) List(ctx context.Context, hospital string) ([]models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := hospital == "" || hospital == models.HospitalAll
	matched := make([]submissionRecord, 0, len(s.records))
	for _, rec := range s.records {
		if all || string(rec.submission.Hospital) == hospital {
			matched = append(matched, rec)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.submission.CreatedAt.Equal(b.submission.CreatedAt) {
			return a.submission.CreatedAt.After(b.submission.CreatedAt)
		}
		return a.seq > b.seq
	})

	result := make([]models.Submission, 0, len(matched))
	for _, rec := range matched {
		result = append(result, rec.submission)
	}
	return result, nil
}

// Update overlays only the supplied fields and returns the updated record,
// or ErrNotFound. No validation is reapplied.
func (s *SubmissionStore) Update(ctx context.Context, id string, updates dto.UpdateSubmissionRequest) (*models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}

	if updates.Content != nil {
		rec.submission.Content = *updates.Content
	}
	if updates.Hospital != nil {
		rec.submission.Hospital = *updates.Hospital
	}
	if updates.Category != nil {
		rec.submission.Category = *updates.Category
	}
	if updates.FileName != nil {
		rec.submission.FileName = updates.FileName
	}
	if updates.FilePath != nil {
		rec.submission.FilePath = updates.FilePath
	}
	if updates.FileSize != nil {
		rec.submission.FileSize = updates.FileSize
	}
	if updates.Status != nil {
		rec.submission.Status = *updates.Status
	}

	s.records[id] = rec
	submission := rec.submission
	return &submission, nil
}

// Delete removes the record and reports whether one existed. Repeated
// deletes of the same id simply return false.
func (s *SubmissionStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return false, nil
	}
	delete(s.records, id)
	return true, nil
}

// CountByHospital returns live per-site counts plus the grand total.
func (s *SubmissionStore) CountByHospital(ctx context.Context) (*models.SubmissionCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := &models.SubmissionCounts{ByHospital: make(map[models.Hospital]int, len(models.Hospitals))}
	for _, hospital := range models.Hospitals {
		counts.ByHospital[hospital] = 0
	}
	for _, rec := range s.records {
		counts.ByHospital[rec.submission.Hospital]++
		counts.Total++
	}
	return counts, nil
}
