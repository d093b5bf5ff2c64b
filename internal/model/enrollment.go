package model

import "time"

// Enrollment links a student to a course. One row per (user, course).
type Enrollment struct {
	BaseModel
	UserID      uint       `gorm:"uniqueIndex:idx_enrollment_user_course;type:bigint unsigned" json:"userId"`
	CourseID    uint       `gorm:"uniqueIndex:idx_enrollment_user_course;type:bigint unsigned" json:"courseId"`
	Course      *Course    `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	EnrolledAt  time.Time  `json:"enrolledAt"`
	Progress    int        `gorm:"default:0" json:"progress"` // Percent of lessons completed
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

type LessonProgress struct {
	BaseModel
	UserID      uint      `gorm:"uniqueIndex:idx_lesson_progress_user_lesson;type:bigint unsigned" json:"userId"`
	LessonID    uint      `gorm:"uniqueIndex:idx_lesson_progress_user_lesson;type:bigint unsigned" json:"lessonId"`
	CourseID    uint      `gorm:"index;type:bigint unsigned" json:"courseId"`
	CompletedAt time.Time `json:"completedAt"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
