package model

import "github.com/kimhour/StudentClearance/internal/constant"

// User covers both administrators and students. Students use their student
// number as username; the academic columns stay null for admins.
type User struct {
	BaseModel
	Username string            `gorm:"unique;not null;type:text" json:"username" form:"username" binding:"required"`
	Password string            `gorm:"not null;type:text" json:"-" form:"-"`
	Name     string            `gorm:"type:varchar(100);not null" json:"name" form:"name" binding:"required"`
	Role     constant.UserRole `gorm:"type:text;not null;default:student" json:"role"`
	Email    string            `gorm:"type:text" json:"email,omitempty" form:"email"`
	Course   string            `gorm:"type:text" json:"course,omitempty" form:"course"`
	Year     int               `gorm:"default:null" json:"year,omitempty" form:"year"`
	Major    string            `gorm:"type:text" json:"major,omitempty" form:"major"`
	Section  string            `gorm:"type:text" json:"section,omitempty" form:"section"`
}

func (u User) TableName() string {
	return "users"
}

func (u User) IsAdmin() bool {
	return u.Role == constant.UserRoleAdmin
}
