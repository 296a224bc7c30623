package service

import (
	"context"
	"elearning_backend/internal/model"
	"elearning_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
)

// 学员视角的课程结构, 不包含选项的正确答案

type CourseView struct {
	CourseSummary
	Description string        `json:"description"`
	Chapters    []ChapterView `json:"chapters"`
}

type ChapterView struct {
	ID               uint             `json:"id"`
	Title            string           `json:"title"`
	Slug             string           `json:"slug"`
	Content          string           `json:"content"`
	EstimatedMinutes *uint            `json:"estimatedMinutes"`
	SortOrder        int              `json:"sortOrder"`
	Attachments      []AttachmentView `json:"attachments"`
	Tasks            []TaskView       `json:"tasks"`
}

type AttachmentView struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	URL       string `json:"url"`
	SortOrder int    `json:"sortOrder"`
}

type TaskView struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Type        model.TaskType `json:"type"`
	MaxScore    int            `json:"maxScore"`
	IsRequired  bool           `json:"isRequired"`
	SortOrder   int            `json:"sortOrder"`
	Options     []OptionView   `json:"options"`
}

type OptionView struct {
	ID        uint   `json:"id"`
	Text      string `json:"text"`
	SortOrder int    `json:"sortOrder"`
}

// CourseDetail 课程结构与当前用户进度
type CourseDetail struct {
	Course   CourseView     `json:"course"`
	Progress CourseProgress `json:"progress"`
}

// MyCourse 用户报名的课程及报名状态
type MyCourse struct {
	Course      CourseSummary          `json:"course"`
	Status      model.EnrollmentStatus `json:"status"`
	Score       *int                   `json:"score"`
	CompletedAt *time.Time             `json:"completedAt"`
	EnrolledAt  time.Time              `json:"enrolledAt"`
}

func (s *CourseService) buildCourseView(ctx context.Context, course *model.Course) CourseView {
	view := CourseView{
		CourseSummary: NewCourseSummary(course),
		Description:   course.Description,
		Chapters:      make([]ChapterView, 0, len(course.Chapters)),
	}

	for _, ch := range course.Chapters {
		cv := ChapterView{
			ID:               ch.ID,
			Title:            ch.Title,
			Slug:             ch.Slug,
			Content:          ch.Content,
			EstimatedMinutes: ch.EstimatedMinutes,
			SortOrder:        ch.SortOrder,
			Attachments:      make([]AttachmentView, 0, len(ch.Attachments)),
			Tasks:            make([]TaskView, 0, len(ch.Tasks)),
		}

		for _, att := range ch.Attachments {
			cv.Attachments = append(cv.Attachments, AttachmentView{
				ID:        att.ID,
				Title:     att.Title,
				Type:      att.Type,
				URL:       s.attachmentURL(ctx, &att),
				SortOrder: att.SortOrder,
			})
		}

		for _, t := range ch.Tasks {
			tv := TaskView{
				ID:          t.ID,
				Title:       t.Title,
				Description: t.Description,
				Type:        t.Type,
				MaxScore:    t.MaxScore,
				IsRequired:  t.IsRequired,
				SortOrder:   t.SortOrder,
				Options:     make([]OptionView, 0, len(t.Options)),
			}
			for _, o := range t.Options {
				tv.Options = append(tv.Options, OptionView{ID: o.ID, Text: o.Text, SortOrder: o.SortOrder})
			}
			cv.Tasks = append(cv.Tasks, tv)
		}

		view.Chapters = append(view.Chapters, cv)
	}
	return view
}

// attachmentURL 有存储路径时由存储服务生成地址, 否则使用外链
func (s *CourseService) attachmentURL(ctx context.Context, att *model.ChapterAttachment) string {
	if att.FilePath == "" || s.Storage == nil {
		return att.URL
	}
	u, err := s.Storage.GetURL(ctx, att.FilePath)
	if err != nil {
		logger.Log.Warn("Failed to resolve attachment url",
			zap.Uint("attachmentId", att.ID),
			zap.String("path", att.FilePath),
			zap.Error(err),
		)
		return att.URL
	}
	return u
}
