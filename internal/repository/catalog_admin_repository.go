package repository

import (
	"context"
	"elearning_backend/internal/model"
	"elearning_backend/internal/util"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogAdminRepository 管理端对课程目录的写操作
type CatalogAdminRepository struct {
	DB *gorm.DB
}

func NewCatalogAdminRepository(db *gorm.DB) *CatalogAdminRepository {
	return &CatalogAdminRepository{DB: db}
}

func (r *CatalogAdminRepository) CreateCourse(ctx context.Context, course *model.Course) error {
	return r.DB.WithContext(ctx).Create(course).Error
}

func (r *CatalogAdminRepository) UpdateCourse(ctx context.Context, id uint, fields map[string]interface{}) error {
	res := r.DB.WithContext(ctx).Model(&model.Course{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// 字段值未变化时 MySQL 也返回 0, 再确认一次是否存在
		var count int64
		if err := r.DB.WithContext(ctx).Model(&model.Course{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return util.ErrCourseNotFound
		}
	}
	return nil
}

// DeleteCourse 软删除; 指向它的前置边保留, 读取时按 deleted_at 过滤
func (r *CatalogAdminRepository) DeleteCourse(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&model.Course{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrCourseNotFound
	}
	return nil
}

// CountCourses 统计未删除的课程ID数量, 用于校验前置课程是否存在
func (r *CatalogAdminRepository) CountCourses(ctx context.Context, ids []uint) (int64, error) {
	var count int64
	if len(ids) == 0 {
		return 0, nil
	}
	err := r.DB.WithContext(ctx).Model(&model.Course{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

// SyncPrerequisites 用 ids 整体替换课程的前置边集合
func (r *CatalogAdminRepository) SyncPrerequisites(ctx context.Context, courseID uint, ids []uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		del := tx.Where("course_id = ?", courseID)
		if len(ids) > 0 {
			del = del.Where("required_course_id NOT IN ?", ids)
		}
		if err := del.Delete(&model.CoursePrerequisite{}).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		edges := make([]model.CoursePrerequisite, 0, len(ids))
		for _, id := range ids {
			edges = append(edges, model.CoursePrerequisite{CourseID: courseID, RequiredCourseID: id})
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&edges).Error
	})
}

func (r *CatalogAdminRepository) FindChapter(ctx context.Context, id uint) (*model.Chapter, error) {
	var chapter model.Chapter
	if err := r.DB.WithContext(ctx).First(&chapter, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChapterNotFound
		}
		return nil, err
	}
	return &chapter, nil
}

func (r *CatalogAdminRepository) CreateChapter(ctx context.Context, chapter *model.Chapter) error {
	return r.DB.WithContext(ctx).Create(chapter).Error
}

func (r *CatalogAdminRepository) UpdateChapter(ctx context.Context, chapter *model.Chapter, fields map[string]interface{}) error {
	return r.DB.WithContext(ctx).Model(chapter).Updates(fields).Error
}

// DeleteChapter 连同附件、题目、选项与提交记录一起删除
func (r *CatalogAdminRepository) DeleteChapter(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taskIDs []uint
		if err := tx.Model(&model.Task{}).Where("chapter_id = ?", id).Pluck("id", &taskIDs).Error; err != nil {
			return err
		}
		if err := deleteTasks(tx, taskIDs); err != nil {
			return err
		}
		if err := tx.Where("chapter_id = ?", id).Delete(&model.ChapterAttachment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Chapter{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrChapterNotFound
		}
		return nil
	})
}

func (r *CatalogAdminRepository) FindTask(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	err := r.DB.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc, id asc")
		}).
		First(&task, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// CreateTask 题目与内联选项在同一事务中创建
func (r *CatalogAdminRepository) CreateTask(ctx context.Context, task *model.Task) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		options := task.Options
		task.Options = nil
		if err := tx.Omit(clause.Associations).Create(task).Error; err != nil {
			return err
		}
		for i := range options {
			options[i].TaskID = task.ID
		}
		if len(options) > 0 {
			if err := tx.Create(&options).Error; err != nil {
				return err
			}
		}
		task.Options = options
		return nil
	})
}

func (r *CatalogAdminRepository) UpdateTask(ctx context.Context, task *model.Task, fields map[string]interface{}) error {
	return r.DB.WithContext(ctx).Model(task).Omit(clause.Associations).Updates(fields).Error
}

func (r *CatalogAdminRepository) DeleteTask(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Task{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return util.ErrTaskNotFound
		}
		return deleteTasks(tx, []uint{id})
	})
}

// SyncOptions 更新列出的已有选项、创建新选项、删除其余选项
func (r *CatalogAdminRepository) SyncOptions(ctx context.Context, taskID uint, options []model.TaskOption) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		keep := make([]uint, 0, len(options))
		for i := range options {
			opt := &options[i]
			opt.TaskID = taskID

			if opt.ID != 0 {
				res := tx.Model(&model.TaskOption{}).
					Where("id = ? AND task_id = ?", opt.ID, taskID).
					Updates(map[string]interface{}{
						"text":       opt.Text,
						"is_correct": opt.IsCorrect,
						"sort_order": opt.SortOrder,
					})
				if res.Error != nil {
					return res.Error
				}
				var exists int64
				if err := tx.Model(&model.TaskOption{}).Where("id = ? AND task_id = ?", opt.ID, taskID).Count(&exists).Error; err != nil {
					return err
				}
				if exists == 0 {
					return util.ErrOptionNotFound
				}
			} else if err := tx.Create(opt).Error; err != nil {
				return err
			}
			keep = append(keep, opt.ID)
		}

		del := tx.Where("task_id = ?", taskID)
		if len(keep) > 0 {
			del = del.Where("id NOT IN ?", keep)
		}
		return del.Delete(&model.TaskOption{}).Error
	})
}

func deleteTasks(tx *gorm.DB, taskIDs []uint) error {
	if len(taskIDs) == 0 {
		return nil
	}
	if err := tx.Where("task_id IN ?", taskIDs).Delete(&model.TaskOption{}).Error; err != nil {
		return err
	}
	if err := tx.Where("task_id IN ?", taskIDs).Delete(&model.TaskSubmission{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", taskIDs).Delete(&model.Task{}).Error
}
