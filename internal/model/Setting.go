package model

const SettingSignatureTemplate = "current_signature_template"

// Setting is a process-wide key/value row. Currently only the active signature
// template URI lives here so that clearance rows created later pick it up.
type Setting struct {
	BaseModel
	Key   string `gorm:"unique;not null;type:text" json:"key"`
	Value string `gorm:"type:text" json:"value"`
}

func (s Setting) TableName() string {
	return "settings"
}
