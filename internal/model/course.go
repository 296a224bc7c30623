package model

import (
	"time"
)

type CourseStatus string

const (
	CourseDraft     CourseStatus = "draft"
	CoursePublished CourseStatus = "published"
	CourseArchived  CourseStatus = "archived"
)

// swagger:model Course
type Course struct {
	BaseModel
	Title            string       `gorm:"size:255;not null" json:"title"`
	Slug             string       `gorm:"size:191;uniqueIndex;not null" json:"slug"`
	ShortDescription string       `gorm:"size:255" json:"shortDescription"`
	Description      string       `gorm:"type:text" json:"description"`
	Level            string       `gorm:"size:50;default:'beginner'" json:"level"`
	Status           CourseStatus `gorm:"size:20;default:'draft';index" json:"status"`
	Language         string       `gorm:"size:10;default:'hu'" json:"language"`
	EstimatedMinutes *uint        `json:"estimatedMinutes"`
	SortOrder        int          `gorm:"default:0" json:"sortOrder"`
	ThumbnailPath    string       `gorm:"size:255" json:"thumbnailPath"`
	CreatedBy        *uint        `gorm:"index" json:"createdBy"`
	PublishedAt      *time.Time   `json:"publishedAt"`

	Chapters []Chapter `gorm:"foreignKey:CourseID" json:"chapters,omitempty"`

	// 直接前置课程, 由仓储层显式填充
	PrerequisiteIDs []uint `gorm:"-" json:"prerequisiteIds"`
}

func (Course) TableName() string {
	return "courses"
}

func (c *Course) IsPublished() bool {
	return c.Status == CoursePublished
}

// CoursePrerequisite 有向边: CourseID 需要先完成 RequiredCourseID
type CoursePrerequisite struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseID         uint      `gorm:"not null;uniqueIndex:idx_course_required,priority:1" json:"courseId"`
	RequiredCourseID uint      `gorm:"not null;uniqueIndex:idx_course_required,priority:2;index" json:"requiredCourseId"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (CoursePrerequisite) TableName() string {
	return "course_prerequisites"
}
