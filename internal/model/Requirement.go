package model

// Requirement is one named item of the institution-wide clearance checklist.
type Requirement struct {
	BaseModel
	Name string `gorm:"unique;not null;type:text" json:"name" form:"name" binding:"required,strNotEmpty"`
}

func (r Requirement) TableName() string {
	return "requirements"
}
