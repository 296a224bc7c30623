package repository

import (
	"context"
	"elearning_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) WithTx(tx *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: tx}
}

// NextAttempt 在事务中加锁读取 max(attempt)+1
func (r *SubmissionRepository) NextAttempt(ctx context.Context, taskID, userID uint) (int, error) {
	var last int
	err := r.DB.WithContext(ctx).
		Model(&model.TaskSubmission{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Select("COALESCE(MAX(attempt), 0)").
		Scan(&last).Error
	if err != nil {
		return 0, err
	}
	return last + 1, nil
}

func (r *SubmissionRepository) Create(ctx context.Context, s *model.TaskSubmission) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

// CorrectTaskIDs taskIDs 中用户至少答对过一次的题目(去重)
func (r *SubmissionRepository) CorrectTaskIDs(ctx context.Context, userID uint, taskIDs []uint) ([]uint, error) {
	if len(taskIDs) == 0 {
		return []uint{}, nil
	}
	var ids []uint
	err := r.DB.WithContext(ctx).
		Model(&model.TaskSubmission{}).
		Distinct().
		Where("user_id = ? AND is_correct = ? AND task_id IN ?", userID, true, taskIDs).
		Order("task_id asc").
		Pluck("task_id", &ids).Error
	return ids, err
}

func (r *SubmissionRepository) ListForUserTask(ctx context.Context, taskID, userID uint) ([]model.TaskSubmission, error) {
	var list []model.TaskSubmission
	err := r.DB.WithContext(ctx).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Order("attempt desc").
		Find(&list).Error
	return list, err
}
