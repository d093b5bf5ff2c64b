package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Tutor   UserRole = "tutor"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"type:enum('student','tutor','admin');default:'student'" json:"role"`
	Bio       string    `gorm:"type:text" json:"bio"`
	Avatar    string    `gorm:"size:255" json:"avatar"`
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`

	Certificates []Certificate `gorm:"foreignKey:UserID" json:"certificates,omitempty"`
}

func (User) TableName() string {
	return "users"
}
