package service

import (
	"context"
	"elearning_backend/internal/model"
	"elearning_backend/internal/repository"
	"elearning_backend/internal/util"
	"elearning_backend/pkg/logger"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CourseRequest 创建课程, 新课程总是草稿状态
// swagger:model CourseRequest
type CourseRequest struct {
	Title            string `json:"title" binding:"required,max=255"`
	Slug             string `json:"slug" binding:"required,max=191"`
	ShortDescription string `json:"short_description" binding:"max=255"`
	Description      string `json:"description"`
	Level            string `json:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
	Language         string `json:"language" binding:"omitempty,max=10"`
	EstimatedMinutes *uint  `json:"estimated_minutes"`
	SortOrder        int    `json:"sort_order"`
	ThumbnailPath    string `json:"thumbnail_path" binding:"max=255"`
}

// UpdateCourseRequest 只更新非空字段; 状态通过发布/下线/归档接口修改
// swagger:model UpdateCourseRequest
type UpdateCourseRequest struct {
	Title            *string `json:"title" binding:"omitempty,max=255"`
	Slug             *string `json:"slug" binding:"omitempty,max=191"`
	ShortDescription *string `json:"short_description" binding:"omitempty,max=255"`
	Description      *string `json:"description"`
	Level            *string `json:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
	Language         *string `json:"language" binding:"omitempty,max=10"`
	EstimatedMinutes *uint   `json:"estimated_minutes"`
	SortOrder        *int    `json:"sort_order"`
	ThumbnailPath    *string `json:"thumbnail_path" binding:"omitempty,max=255"`
}

// SyncPrerequisitesRequest 整体替换前置课程
// swagger:model SyncPrerequisitesRequest
type SyncPrerequisitesRequest struct {
	RequiredCourseIDs []uint `json:"required_course_ids"`
}

// swagger:model ChapterRequest
type ChapterRequest struct {
	Title            string `json:"title" binding:"required,max=255"`
	Slug             string `json:"slug" binding:"required,max=191"`
	Content          string `json:"content"`
	EstimatedMinutes *uint  `json:"estimated_minutes"`
	SortOrder        int    `json:"sort_order"`
	IsPublished      *bool  `json:"is_published"`
}

// swagger:model UpdateChapterRequest
type UpdateChapterRequest struct {
	Title            *string `json:"title" binding:"omitempty,max=255"`
	Slug             *string `json:"slug" binding:"omitempty,max=191"`
	Content          *string `json:"content"`
	EstimatedMinutes *uint   `json:"estimated_minutes"`
	SortOrder        *int    `json:"sort_order"`
	IsPublished      *bool   `json:"is_published"`
}

// OptionRequest ID 为 0 表示新选项
// swagger:model OptionRequest
type OptionRequest struct {
	ID        uint   `json:"id"`
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
	SortOrder int    `json:"sort_order"`
}

// swagger:model TaskRequest
type TaskRequest struct {
	Title       string          `json:"title" binding:"required,max=255"`
	Description string          `json:"description"`
	Type        model.TaskType  `json:"type" binding:"required,oneof=single_choice multiple_choice true_false text"`
	MaxScore    *int            `json:"max_score" binding:"omitempty,min=1"`
	IsRequired  *bool           `json:"is_required"`
	SortOrder   int             `json:"sort_order"`
	Options     []OptionRequest `json:"options" binding:"dive"`
}

// swagger:model UpdateTaskRequest
type UpdateTaskRequest struct {
	Title       *string         `json:"title" binding:"omitempty,max=255"`
	Description *string         `json:"description"`
	Type        *model.TaskType `json:"type" binding:"omitempty,oneof=single_choice multiple_choice true_false text"`
	MaxScore    *int            `json:"max_score" binding:"omitempty,min=1"`
	IsRequired  *bool           `json:"is_required"`
	SortOrder   *int            `json:"sort_order"`
}

// swagger:model SyncOptionsRequest
type SyncOptionsRequest struct {
	Options []OptionRequest `json:"options" binding:"dive"`
}

// CatalogAdminService 管理端课程目录维护, 每次修改后清空目录缓存
type CatalogAdminService struct {
	AdminRepo  *repository.CatalogAdminRepository
	CourseRepo *repository.CourseRepository
	Cache      *CatalogCache
}

func NewCatalogAdminService(adminRepo *repository.CatalogAdminRepository, courseRepo *repository.CourseRepository, cache *CatalogCache) *CatalogAdminService {
	return &CatalogAdminService{
		AdminRepo:  adminRepo,
		CourseRepo: courseRepo,
		Cache:      cache,
	}
}

func (s *CatalogAdminService) invalidate(ctx context.Context) {
	s.Cache.Invalidate(ctx)
}

// slugConflict 唯一索引冲突转换为参数错误
func slugConflict(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.NewValidationError("slug", "already exists")
	}
	return err
}

func (s *CatalogAdminService) CreateCourse(ctx context.Context, adminID uint, req CourseRequest) (*model.Course, error) {
	course := &model.Course{
		Title:            req.Title,
		Slug:             req.Slug,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		Level:            req.Level,
		Status:           model.CourseDraft,
		Language:         req.Language,
		EstimatedMinutes: req.EstimatedMinutes,
		SortOrder:        req.SortOrder,
		ThumbnailPath:    req.ThumbnailPath,
		CreatedBy:        &adminID,
	}
	if err := s.AdminRepo.CreateCourse(ctx, course); err != nil {
		return nil, slugConflict(err)
	}

	s.invalidate(ctx)
	logger.Log.Info("Course created", zap.Uint("courseId", course.ID), zap.Uint("adminId", adminID))
	return s.CourseRepo.FindByID(ctx, course.ID)
}

func (s *CatalogAdminService) UpdateCourse(ctx context.Context, id uint, req UpdateCourseRequest) (*model.Course, error) {
	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Slug != nil {
		fields["slug"] = *req.Slug
	}
	if req.ShortDescription != nil {
		fields["short_description"] = *req.ShortDescription
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Level != nil {
		fields["level"] = *req.Level
	}
	if req.Language != nil {
		fields["language"] = *req.Language
	}
	if req.EstimatedMinutes != nil {
		fields["estimated_minutes"] = *req.EstimatedMinutes
	}
	if req.SortOrder != nil {
		fields["sort_order"] = *req.SortOrder
	}
	if req.ThumbnailPath != nil {
		fields["thumbnail_path"] = *req.ThumbnailPath
	}

	if len(fields) > 0 {
		if err := s.AdminRepo.UpdateCourse(ctx, id, fields); err != nil {
			return nil, slugConflict(err)
		}
		s.invalidate(ctx)
	}
	return s.CourseRepo.FindByID(ctx, id)
}

func (s *CatalogAdminService) DeleteCourse(ctx context.Context, id uint) error {
	if err := s.AdminRepo.DeleteCourse(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	logger.Log.Info("Course deleted", zap.Uint("courseId", id))
	return nil
}

// PublishCourse 发布并记录发布时间
func (s *CatalogAdminService) PublishCourse(ctx context.Context, id uint) (*model.Course, error) {
	return s.setStatus(ctx, id, map[string]interface{}{
		"status":       model.CoursePublished,
		"published_at": time.Now(),
	})
}

// UnpublishCourse 回到草稿并清空发布时间
func (s *CatalogAdminService) UnpublishCourse(ctx context.Context, id uint) (*model.Course, error) {
	return s.setStatus(ctx, id, map[string]interface{}{
		"status":       model.CourseDraft,
		"published_at": nil,
	})
}

func (s *CatalogAdminService) ArchiveCourse(ctx context.Context, id uint) (*model.Course, error) {
	return s.setStatus(ctx, id, map[string]interface{}{
		"status": model.CourseArchived,
	})
}

func (s *CatalogAdminService) setStatus(ctx context.Context, id uint, fields map[string]interface{}) (*model.Course, error) {
	if err := s.AdminRepo.UpdateCourse(ctx, id, fields); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	logger.Log.Info("Course status changed", zap.Uint("courseId", id), zap.Any("status", fields["status"]))
	return s.CourseRepo.FindByID(ctx, id)
}

// SyncPrerequisites 允许形成环, 但不允许课程依赖自身
func (s *CatalogAdminService) SyncPrerequisites(ctx context.Context, courseID uint, requiredIDs []uint) (*model.Course, error) {
	if _, err := s.CourseRepo.FindByID(ctx, courseID); err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(requiredIDs))
	seen := make(map[uint]struct{}, len(requiredIDs))
	for _, id := range requiredIDs {
		if id == courseID {
			return nil, util.NewValidationError("required_course_ids", "a course cannot require itself")
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	count, err := s.AdminRepo.CountCourses(ctx, ids)
	if err != nil {
		return nil, err
	}
	if int(count) != len(ids) {
		return nil, util.ErrCourseNotFound
	}

	if err := s.AdminRepo.SyncPrerequisites(ctx, courseID, ids); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return s.CourseRepo.FindByID(ctx, courseID)
}

func (s *CatalogAdminService) CreateChapter(ctx context.Context, courseID uint, req ChapterRequest) (*model.Chapter, error) {
	if _, err := s.CourseRepo.FindByID(ctx, courseID); err != nil {
		return nil, err
	}

	chapter := &model.Chapter{
		CourseID:         courseID,
		Title:            req.Title,
		Slug:             req.Slug,
		Content:          req.Content,
		EstimatedMinutes: req.EstimatedMinutes,
		SortOrder:        req.SortOrder,
		IsPublished:      true,
	}
	if req.IsPublished != nil {
		chapter.IsPublished = *req.IsPublished
	}

	if err := s.AdminRepo.CreateChapter(ctx, chapter); err != nil {
		return nil, slugConflict(err)
	}
	s.invalidate(ctx)
	return chapter, nil
}

func (s *CatalogAdminService) UpdateChapter(ctx context.Context, id uint, req UpdateChapterRequest) (*model.Chapter, error) {
	chapter, err := s.AdminRepo.FindChapter(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Slug != nil {
		fields["slug"] = *req.Slug
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if req.EstimatedMinutes != nil {
		fields["estimated_minutes"] = *req.EstimatedMinutes
	}
	if req.SortOrder != nil {
		fields["sort_order"] = *req.SortOrder
	}
	if req.IsPublished != nil {
		fields["is_published"] = *req.IsPublished
	}

	if len(fields) > 0 {
		if err := s.AdminRepo.UpdateChapter(ctx, chapter, fields); err != nil {
			return nil, slugConflict(err)
		}
		s.invalidate(ctx)
	}
	return s.AdminRepo.FindChapter(ctx, id)
}

func (s *CatalogAdminService) DeleteChapter(ctx context.Context, id uint) error {
	if err := s.AdminRepo.DeleteChapter(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func toOptions(reqs []OptionRequest) []model.TaskOption {
	options := make([]model.TaskOption, 0, len(reqs))
	for _, o := range reqs {
		opt := model.TaskOption{
			Text:      o.Text,
			IsCorrect: o.IsCorrect,
			SortOrder: o.SortOrder,
		}
		opt.ID = o.ID
		options = append(options, opt)
	}
	return options
}

// CreateTask max_score 默认为 1, 选项不做正确性校验
func (s *CatalogAdminService) CreateTask(ctx context.Context, chapterID uint, req TaskRequest) (*model.Task, error) {
	if _, err := s.AdminRepo.FindChapter(ctx, chapterID); err != nil {
		return nil, err
	}

	task := &model.Task{
		ChapterID:   chapterID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		MaxScore:    1,
		IsRequired:  true,
		SortOrder:   req.SortOrder,
	}
	if req.MaxScore != nil {
		task.MaxScore = *req.MaxScore
	}
	if req.IsRequired != nil {
		task.IsRequired = *req.IsRequired
	}

	options := toOptions(req.Options)
	for i := range options {
		options[i].ID = 0
	}
	task.Options = options

	if err := s.AdminRepo.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return s.AdminRepo.FindTask(ctx, task.ID)
}

func (s *CatalogAdminService) UpdateTask(ctx context.Context, id uint, req UpdateTaskRequest) (*model.Task, error) {
	task, err := s.AdminRepo.FindTask(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Type != nil {
		fields["type"] = *req.Type
	}
	if req.MaxScore != nil {
		fields["max_score"] = *req.MaxScore
	}
	if req.IsRequired != nil {
		fields["is_required"] = *req.IsRequired
	}
	if req.SortOrder != nil {
		fields["sort_order"] = *req.SortOrder
	}

	if len(fields) > 0 {
		if err := s.AdminRepo.UpdateTask(ctx, task, fields); err != nil {
			return nil, err
		}
		s.invalidate(ctx)
	}
	return s.AdminRepo.FindTask(ctx, id)
}

func (s *CatalogAdminService) DeleteTask(ctx context.Context, id uint) error {
	if err := s.AdminRepo.DeleteTask(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// SyncOptions 已有选项按ID更新, 新选项创建, 未列出的删除
func (s *CatalogAdminService) SyncOptions(ctx context.Context, taskID uint, reqs []OptionRequest) (*model.Task, error) {
	if _, err := s.AdminRepo.FindTask(ctx, taskID); err != nil {
		return nil, err
	}
	if err := s.AdminRepo.SyncOptions(ctx, taskID, toOptions(reqs)); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return s.AdminRepo.FindTask(ctx, taskID)
}
