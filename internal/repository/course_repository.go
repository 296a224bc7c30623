package repository

import (
	"context"
	"elearning_backend/internal/model"
	"elearning_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

// CourseRepository 课程目录的只读访问, 返回完整装配好的聚合
type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) WithTx(tx *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: tx}
}

// FindByID 任意状态的课程(不含已软删除), 附带直接前置课程ID
func (r *CourseRepository) FindByID(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	if err := r.DB.WithContext(ctx).First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	ids, err := r.PrerequisiteIDs(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	course.PrerequisiteIDs = ids
	return &course, nil
}

// FindWithStructure 已发布课程 + 已发布章节(含附件、题目、选项), 全部按 sort_order 排序
func (r *CourseRepository) FindWithStructure(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.WithContext(ctx).
		Preload("Chapters", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_published = ?", true).Order("sort_order asc, id asc")
		}).
		Preload("Chapters.Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc, id asc")
		}).
		Preload("Chapters.Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc, id asc")
		}).
		Preload("Chapters.Tasks.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc, id asc")
		}).
		Where("status = ?", model.CoursePublished).
		First(&course, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	ids, err := r.PrerequisiteIDs(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	course.PrerequisiteIDs = ids
	return &course, nil
}

// ListPublished 所有已发布课程及其直接前置课程, 按 sort_order 排序
func (r *CourseRepository) ListPublished(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.WithContext(ctx).
		Where("status = ?", model.CoursePublished).
		Order("sort_order asc, id asc").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return courses, nil
	}

	ids := make([]uint, len(courses))
	for i := range courses {
		ids[i] = courses[i].ID
	}

	edges, err := r.prerequisiteEdges(ctx, ids)
	if err != nil {
		return nil, err
	}

	byCourse := make(map[uint][]uint, len(courses))
	for _, e := range edges {
		byCourse[e.CourseID] = append(byCourse[e.CourseID], e.RequiredCourseID)
	}
	for i := range courses {
		courses[i].PrerequisiteIDs = byCourse[courses[i].ID]
		if courses[i].PrerequisiteIDs == nil {
			courses[i].PrerequisiteIDs = []uint{}
		}
	}
	return courses, nil
}

// PrerequisiteIDs 直接前置课程, 已软删除的前置课程不计入
func (r *CourseRepository) PrerequisiteIDs(ctx context.Context, courseID uint) ([]uint, error) {
	edges, err := r.prerequisiteEdges(ctx, []uint{courseID})
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.RequiredCourseID)
	}
	return ids, nil
}

func (r *CourseRepository) prerequisiteEdges(ctx context.Context, courseIDs []uint) ([]model.CoursePrerequisite, error) {
	var edges []model.CoursePrerequisite
	err := r.DB.WithContext(ctx).
		Table("course_prerequisites p").
		Select("p.*").
		Joins("JOIN courses rc ON rc.id = p.required_course_id AND rc.deleted_at IS NULL").
		Where("p.course_id IN ?", courseIDs).
		Order("p.course_id asc, p.required_course_id asc").
		Scan(&edges).Error
	return edges, err
}

// TaskIDs 课程下所有题目(不区分章节发布状态)
func (r *CourseRepository) TaskIDs(ctx context.Context, courseID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).
		Table("chapter_tasks t").
		Joins("JOIN course_chapters ch ON ch.id = t.chapter_id").
		Where("ch.course_id = ?", courseID).
		Order("t.id asc").
		Pluck("t.id", &ids).Error
	return ids, err
}

// FindTask 题目及其选项, 同时返回所属课程ID
func (r *CourseRepository) FindTask(ctx context.Context, taskID uint) (*model.Task, uint, error) {
	var task model.Task
	err := r.DB.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc, id asc")
		}).
		First(&task, taskID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, util.ErrTaskNotFound
		}
		return nil, 0, err
	}

	var chapter model.Chapter
	if err := r.DB.WithContext(ctx).Select("id", "course_id").First(&chapter, task.ChapterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, util.ErrChapterNotFound
		}
		return nil, 0, err
	}
	return &task, chapter.CourseID, nil
}
