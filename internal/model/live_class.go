package model

import "time"

type LiveClassStatus string

const (
	LiveClassScheduled LiveClassStatus = "scheduled"
	LiveClassLive      LiveClassStatus = "live"
	LiveClassEnded     LiveClassStatus = "ended"
	LiveClassCancelled LiveClassStatus = "cancelled"
)

type LiveClass struct {
	BaseModel
	CourseID      uint            `gorm:"index;type:bigint unsigned" json:"courseId"`
	Course        *Course         `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	HostID        uint            `gorm:"index;type:bigint unsigned" json:"hostId"`
	Title         string          `gorm:"size:255;not null" json:"title"`
	Description   string          `gorm:"type:text" json:"description"`
	ScheduledAt   time.Time       `json:"scheduledAt"`
	EndsAt        *time.Time      `json:"endsAt,omitempty"`
	MeetingURL    string          `gorm:"size:512" json:"meetingUrl"`
	Status        LiveClassStatus `gorm:"type:enum('scheduled','live','ended','cancelled');default:'scheduled'" json:"status"`
	AttendeeCount int             `gorm:"default:0" json:"attendeeCount"`
}

func (LiveClass) TableName() string {
	return "live_classes"
}
