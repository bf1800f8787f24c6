package model

// StudentRequirement is the completion cell at the intersection of one student
// and one requirement. A missing row reads as completed=false, the matrix stays
// sparse.
type StudentRequirement struct {
	BaseModel
	StudentID     string `gorm:"not null;type:text;uniqueIndex:idx_student_requirement" json:"student_id"`
	RequirementID string `gorm:"not null;type:text;uniqueIndex:idx_student_requirement" json:"requirement_id"`
	Completed     bool   `gorm:"not null;default:false" json:"completed"`
}

func (sr StudentRequirement) TableName() string {
	return "student_requirements"
}
