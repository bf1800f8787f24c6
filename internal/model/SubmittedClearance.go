package model

import "time"

// SubmittedClearance is the immutable archival snapshot produced by a submit.
// Student name and number are denormalized on purpose: later edits to the user
// row must not rewrite past certificates.
type SubmittedClearance struct {
	BaseModel
	StudentID             string    `gorm:"not null;type:text;index" json:"student_id"`
	StudentName           string    `gorm:"not null;type:text" json:"student_name"`
	StudentNumber         string    `gorm:"not null;type:text" json:"student_number"`
	ReferenceNumber       string    `gorm:"not null;type:text" json:"reference_number"`
	CompletedRequirements []string  `gorm:"type:text;serializer:json" json:"completed_requirements"`
	SignatureTemplate     string    `gorm:"type:text" json:"signature_template,omitempty"`
	SubmittedAt           time.Time `gorm:"not null" json:"submitted_at"`
}

func (sc SubmittedClearance) TableName() string {
	return "submitted_clearances"
}

// FormatSubmittedAt renders the archival timestamp the way certificates and
// listings display it.
func (sc SubmittedClearance) FormatSubmittedAt() string {
	return sc.SubmittedAt.UTC().Format("2006-01-02 15:04:05")
}
