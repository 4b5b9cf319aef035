package models

import "time"

// Hospital is the closed set of sites a submission can be registered under.
type Hospital string

const (
	HospitalAnam   Hospital = "안암병원"
	HospitalGuro   Hospital = "구로병원"
	HospitalAnsan  Hospital = "안산병원"
	HospitalAnyang Hospital = "안양병원"
	HospitalOther  Hospital = "기타"
)

// HospitalAll is the listing sentinel meaning "no filter".
const HospitalAll = "전체"

// Hospitals enumerates every valid site in display order.
var Hospitals = []Hospital{HospitalAnam, HospitalGuro, HospitalAnsan, HospitalAnyang, HospitalOther}

// SubmissionStatus tracks processing of a pre-payment submission. Transitions
// are unconstrained; any value may replace any other via update.
type SubmissionStatus string

const (
	StatusPending   SubmissionStatus = "pending"
	StatusCompleted SubmissionStatus = "completed"
	StatusFailed    SubmissionStatus = "failed"
)

// Submission is one registered pre-payment note, optionally with an attached
// file. The three file fields are either all set or all nil.
type Submission struct {
	ID        string           `json:"id"`
	Content   string           `json:"content"`
	Hospital  Hospital         `json:"hospital"`
	Category  string           `json:"category"`
	FileName  *string          `json:"fileName"`
	FilePath  *string          `json:"filePath"`
	FileSize  *string          `json:"fileSize"`
	Status    SubmissionStatus `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
}

// HasFile reports whether an attachment was stored for this submission.
func (s *Submission) HasFile() bool {
	return s.FilePath != nil
}

// SubmissionCounts carries live per-site listing counts for the category tabs.
type SubmissionCounts struct {
	Total      int              `json:"total"`
	ByHospital map[Hospital]int `json:"byHospital"`
}
