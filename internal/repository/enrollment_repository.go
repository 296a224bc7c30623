package repository

import (
	"context"
	"elearning_backend/internal/model"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) WithTx(tx *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: tx}
}

func (r *EnrollmentRepository) CompletedCourseIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("user_id = ? AND status = ?", userID, model.EnrollmentCompleted).
		Pluck("course_id", &ids).Error
	return ids, err
}

// Find 不存在时返回 nil, nil
func (r *EnrollmentRepository) Find(ctx context.Context, courseID, userID uint) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.DB.WithContext(ctx).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Upsert 按 (course_id, user_id) 插入或覆盖状态字段, 重复执行结果相同
func (r *EnrollmentRepository) Upsert(ctx context.Context, e *model.Enrollment) error {
	return r.DB.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "course_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "score", "completed_at", "updated_at"}),
		}).
		Create(e).Error
}

// ListForUser 用户全部报名记录, 最新报名在前
func (r *EnrollmentRepository) ListForUser(ctx context.Context, userID uint) ([]model.Enrollment, error) {
	var list []model.Enrollment
	err := r.DB.WithContext(ctx).
		InnerJoins("Course").
		Where("course_user.user_id = ?", userID).
		Order("course_user.created_at desc, course_user.id desc").
		Find(&list).Error
	return list, err
}
