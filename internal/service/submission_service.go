package service

import (
	"context"
	"elearning_backend/internal/model"
	"elearning_backend/internal/repository"
	"elearning_backend/pkg/database"
	"elearning_backend/pkg/logger"
	"elearning_backend/pkg/monitoring"
	"elearning_backend/pkg/tracing"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SubmissionService 题目提交: 判分、分配尝试序号、更新进度与完成状态
type SubmissionService struct {
	DB             *gorm.DB
	CourseRepo     *repository.CourseRepository
	SubmissionRepo *repository.SubmissionRepository
	Courses        *CourseService
	MaxAttempts    int
}

func NewSubmissionService(
	db *gorm.DB,
	courseRepo *repository.CourseRepository,
	submissionRepo *repository.SubmissionRepository,
	courses *CourseService,
	maxAttempts int,
) *SubmissionService {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &SubmissionService{
		DB:             db,
		CourseRepo:     courseRepo,
		SubmissionRepo: submissionRepo,
		Courses:        courses,
		MaxAttempts:    maxAttempts,
	}
}

// SubmitResult 提交结果
type SubmitResult struct {
	Submission *model.TaskSubmission `json:"submission"`
	IsCorrect  bool                  `json:"is_correct"`
	Score      int                   `json:"score"`
	Attempt    int                   `json:"attempt"`
	Progress   CourseProgress        `json:"progress"`
}

// Submit 校验并判分后在事务中写入提交记录.
// 尝试序号冲突或死锁时整个事务重试, 最多 MaxAttempts 次
func (s *SubmissionService) Submit(ctx context.Context, taskID, userID uint, answer SubmittedAnswer) (*SubmitResult, error) {
	ctx, span := tracing.Start(ctx, "SubmissionService.Submit",
		attribute.Int64("task.id", int64(taskID)),
		attribute.Int64("user.id", int64(userID)),
	)
	defer span.End()

	task, courseID, err := s.CourseRepo.FindTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := ValidateSubmission(task, answer); err != nil {
		return nil, err
	}

	answer.SelectedOptionIDs = FilterOptionIDs(task, answer.SelectedOptionIDs)
	isCorrect, score := EvaluateTask(task, answer)

	var (
		result    *SubmitResult
		completed bool
	)
	for i := 1; i <= s.MaxAttempts; i++ {
		result, completed, err = s.persist(ctx, task, courseID, userID, answer, isCorrect, score)
		if err == nil {
			break
		}
		if !database.IsRetryable(err) || i == s.MaxAttempts {
			tracing.Fail(span, err)
			return nil, err
		}
		monitoring.SubmissionRetryCounter.Inc()
		logger.Log.Warn("Retrying submission transaction",
			zap.Uint("taskId", taskID),
			zap.Uint("userId", userID),
			zap.Int("try", i),
			zap.Error(err),
		)
	}

	monitoring.SubmissionCounter.WithLabelValues(string(task.Type), strconv.FormatBool(isCorrect)).Inc()
	if completed {
		monitoring.CourseCompletionCounter.Inc()
		logger.Log.Info("Course completed",
			zap.Uint("courseId", courseID),
			zap.Uint("userId", userID),
			zap.Int("score", result.Progress.CompletedTasks),
		)
	}
	span.SetAttributes(attribute.Int("submission.attempt", result.Attempt), attribute.Bool("submission.correct", isCorrect))
	return result, nil
}

func (s *SubmissionService) persist(
	ctx context.Context,
	task *model.Task,
	courseID, userID uint,
	answer SubmittedAnswer,
	isCorrect bool,
	score int,
) (*SubmitResult, bool, error) {
	var (
		result    SubmitResult
		completed bool
	)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := s.Courses.withTx(tx)

		attempt, err := r.submissions.NextAttempt(ctx, task.ID, userID)
		if err != nil {
			return err
		}

		submission := &model.TaskSubmission{
			TaskID:      task.ID,
			UserID:      userID,
			Attempt:     attempt,
			TextAnswer:  answer.TextAnswer,
			Score:       score,
			IsCorrect:   isCorrect,
			SubmittedAt: time.Now(),
		}
		if len(answer.SelectedOptionIDs) > 0 {
			submission.SelectedOptionIDs = datatypes.NewJSONSlice(answer.SelectedOptionIDs)
		}
		if err := r.submissions.Create(ctx, submission); err != nil {
			return err
		}

		progress, err := computeProgress(ctx, r, courseID, userID)
		if err != nil {
			return err
		}

		completed, err = markCompletedIfEligible(ctx, r, courseID, userID, &progress)
		if err != nil {
			return err
		}

		result = SubmitResult{
			Submission: submission,
			IsCorrect:  isCorrect,
			Score:      score,
			Attempt:    attempt,
			Progress:   progress,
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &result, completed, nil
}

// History 当前用户在该题目上的全部提交, 最新在前
func (s *SubmissionService) History(ctx context.Context, taskID, userID uint) ([]model.TaskSubmission, error) {
	if _, _, err := s.CourseRepo.FindTask(ctx, taskID); err != nil {
		return nil, err
	}
	return s.SubmissionRepo.ListForUserTask(ctx, taskID, userID)
}
