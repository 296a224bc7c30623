package service

import (
	"elearning_backend/internal/model"
	"time"
)

// CourseSummary 课程列表项, 也是目录缓存中保存的结构
type CourseSummary struct {
	ID               uint               `json:"id"`
	Title            string             `json:"title"`
	Slug             string             `json:"slug"`
	ShortDescription string             `json:"shortDescription"`
	Level            string             `json:"level"`
	Status           model.CourseStatus `json:"status"`
	Language         string             `json:"language"`
	EstimatedMinutes *uint              `json:"estimatedMinutes"`
	SortOrder        int                `json:"sortOrder"`
	ThumbnailPath    string             `json:"thumbnailPath"`
	PublishedAt      *time.Time         `json:"publishedAt"`
	PrerequisiteIDs  []uint             `json:"prerequisiteIds"`
}

func NewCourseSummary(c *model.Course) CourseSummary {
	prereq := c.PrerequisiteIDs
	if prereq == nil {
		prereq = []uint{}
	}
	return CourseSummary{
		ID:               c.ID,
		Title:            c.Title,
		Slug:             c.Slug,
		ShortDescription: c.ShortDescription,
		Level:            c.Level,
		Status:           c.Status,
		Language:         c.Language,
		EstimatedMinutes: c.EstimatedMinutes,
		SortOrder:        c.SortOrder,
		ThumbnailPath:    c.ThumbnailPath,
		PublishedAt:      c.PublishedAt,
		PrerequisiteIDs:  prereq,
	}
}

// CourseListing 可报名与被锁定的已发布课程
type CourseListing struct {
	Available []CourseSummary `json:"available"`
	Locked    []CourseSummary `json:"locked"`
}

// PrerequisitesSatisfied 只检查直接前置课程, 不做传递闭包
func PrerequisitesSatisfied(prerequisiteIDs []uint, completed map[uint]struct{}) bool {
	for _, id := range prerequisiteIDs {
		if _, ok := completed[id]; !ok {
			return false
		}
	}
	return true
}

// ResolveAvailability 把已发布课程拆成可报名和锁定两组, 保持输入顺序
func ResolveAvailability(courses []CourseSummary, completed map[uint]struct{}) CourseListing {
	listing := CourseListing{
		Available: make([]CourseSummary, 0, len(courses)),
		Locked:    make([]CourseSummary, 0),
	}
	for _, c := range courses {
		if PrerequisitesSatisfied(c.PrerequisiteIDs, completed) {
			listing.Available = append(listing.Available, c)
		} else {
			listing.Locked = append(listing.Locked, c)
		}
	}
	return listing
}

func idSet(ids []uint) map[uint]struct{} {
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
