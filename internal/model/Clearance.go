package model

// Clearance is the mutable, in-progress clearance row of a student. It is
// removed when the clearance is submitted and archived.
type Clearance struct {
	BaseModel
	StudentID         string `gorm:"unique;not null;type:text" json:"student_id"`
	Submitted         bool   `gorm:"not null;default:false" json:"submitted"`
	SignatureTemplate string `gorm:"type:text" json:"signature_template,omitempty"`
}

func (c Clearance) TableName() string {
	return "clearances"
}
