package model

import (
	"encoding/json"
	"time"
)

type CourseLevel string

const (
	Beginner     CourseLevel = "beginner"
	Intermediate CourseLevel = "intermediate"
	Advanced     CourseLevel = "advanced"
)

// swagger:model Course
type Course struct {
	BaseModel
	Title       string          `gorm:"size:255;not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Category    string          `gorm:"size:100;index" json:"category"`
	Level       CourseLevel     `gorm:"type:enum('beginner','intermediate','advanced');default:'beginner'" json:"level"`
	Tags        json.RawMessage `gorm:"type:json" json:"tags"` // JSON: []string, copied onto certificates as skills
	Thumbnail   string          `gorm:"size:255" json:"thumbnail"`
	TutorID     uint            `gorm:"index;type:bigint unsigned" json:"tutorId"`
	Tutor       *User           `gorm:"foreignKey:TutorID" json:"tutor,omitempty"`
	Price       float64         `gorm:"default:0" json:"price"`
	IsPublished bool            `gorm:"default:false" json:"isPublished"`
	PublishedAt *time.Time      `json:"publishedAt,omitempty"`

	Lessons []Lesson `gorm:"foreignKey:CourseID" json:"lessons,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// SkillTags decodes the course tags; a missing or malformed tags column
// yields an empty list rather than an error.
func (c *Course) SkillTags() []string {
	if len(c.Tags) == 0 {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal(c.Tags, &tags); err != nil {
		return []string{}
	}
	return tags
}

type Lesson struct {
	BaseModel
	CourseID uint   `gorm:"index;type:bigint unsigned" json:"courseId"`
	Title    string `gorm:"size:255;not null" json:"title"`
	Content  string `gorm:"type:text" json:"content"`
	VideoURL string `gorm:"size:512" json:"videoUrl"`
	Duration int    `gorm:"default:0" json:"duration"` // Minutes
	Order    int    `gorm:"default:0" json:"order"`
}

func (Lesson) TableName() string {
	return "lessons"
}
