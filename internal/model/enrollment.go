package model

import "time"

type EnrollmentStatus string

const (
	EnrollmentEnrolled   EnrollmentStatus = "enrolled"
	EnrollmentInProgress EnrollmentStatus = "in_progress" // 预留
	EnrollmentCompleted  EnrollmentStatus = "completed"
	EnrollmentFailed     EnrollmentStatus = "failed" // 预留
)

// Enrollment 课程与用户的关联记录, (course_id, user_id) 唯一
type Enrollment struct {
	HardModel
	CourseID    uint             `gorm:"not null;uniqueIndex:idx_course_user,priority:1" json:"courseId"`
	UserID      uint             `gorm:"not null;uniqueIndex:idx_course_user,priority:2;index" json:"userId"`
	Status      EnrollmentStatus `gorm:"size:20;default:'enrolled'" json:"status"`
	Score       *int             `json:"score"`
	CompletedAt *time.Time       `json:"completedAt"`

	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Enrollment) TableName() string {
	return "course_user"
}
