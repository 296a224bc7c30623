package service

import (
	"context"
	"elearning_backend/internal/model"
	"elearning_backend/internal/testutil"
	"elearning_backend/internal/util"
	"elearning_backend/pkg/database"
	"elearning_backend/pkg/monitoring"
	"sort"
	"sync"
	"testing"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// wrongOptionIDs 第一个错误选项
func wrongOptionIDs(task *model.Task) []uint {
	for _, o := range task.Options {
		if !o.IsCorrect {
			return []uint{o.ID}
		}
	}
	return nil
}

func TestSubmissionService_AttemptNumbers(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	const user uint = 21

	course := testutil.CreateCourse(t, s.db, "Attempts", model.CoursePublished, 1)
	chapter := testutil.CreateChapter(t, s.db, course.ID, 1, true)
	task := testutil.CreateTask(t, s.db, chapter.ID, model.TaskSingleChoice, 2, false, true, false)
	other := testutil.CreateTask(t, s.db, chapter.ID, model.TaskSingleChoice, 1, true, false)

	answers := [][]uint{wrongOptionIDs(task), wrongOptionIDs(task), testutil.CorrectOptionIDs(task)}
	for i, selected := range answers {
		result, err := s.submission.Submit(ctx, task.ID, user, SubmittedAnswer{SelectedOptionIDs: selected})
		require.NoError(t, err)
		assert.Equal(t, i+1, result.Attempt)
		assert.Equal(t, i+1, result.Submission.Attempt)
	}

	// 序号按 (题目, 用户) 独立计数
	result, err := s.submission.Submit(ctx, other.ID, user, SubmittedAnswer{SelectedOptionIDs: wrongOptionIDs(other)})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Attempt)

	result, err = s.submission.Submit(ctx, task.ID, user+1, SubmittedAnswer{SelectedOptionIDs: wrongOptionIDs(task)})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Attempt)

	history, err := s.submission.History(ctx, task.ID, user)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, []int{3, 2, 1}, []int{history[0].Attempt, history[1].Attempt, history[2].Attempt})
	assert.True(t, history[0].IsCorrect)
	assert.Equal(t, 2, history[0].Score)
	assert.False(t, history[1].IsCorrect)
	assert.Equal(t, 0, history[1].Score)
}

func TestSubmissionService_Scoring(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	const user uint = 22

	course := testutil.CreateCourse(t, s.db, "Scoring", model.CoursePublished, 1)
	chapter := testutil.CreateChapter(t, s.db, course.ID, 1, true)
	multi := testutil.CreateTask(t, s.db, chapter.ID, model.TaskMultipleChoice, 3, true, false, true, true)
	single := testutil.CreateTask(t, s.db, chapter.ID, model.TaskSingleChoice, 2, false, true)
	text := testutil.CreateTask(t, s.db, chapter.ID, model.TaskText, 5)
	foreign := testutil.CreateTask(t, s.db, chapter.ID, model.TaskSingleChoice, 1, true)

	correct := testutil.CorrectOptionIDs(multi)
	foreignID := foreign.Options[0].ID

	tests := []struct {
		name      string
		task      *model.Task
		answer    SubmittedAnswer
		wantOK    bool
		wantScore int
	}{
		{"multiple exact", multi, SubmittedAnswer{SelectedOptionIDs: correct}, true, 3},
		{"multiple missing one", multi, SubmittedAnswer{SelectedOptionIDs: correct[:2]}, false, 0},
		{"multiple with wrong option", multi, SubmittedAnswer{SelectedOptionIDs: append([]uint{multi.Options[1].ID}, correct...)}, false, 0},
		{"multiple with foreign option", multi, SubmittedAnswer{SelectedOptionIDs: append([]uint{foreignID}, correct...)}, true, 3},
		{"multiple with duplicates", multi, SubmittedAnswer{SelectedOptionIDs: append(correct, correct...)}, true, 3},
		{"single correct", single, SubmittedAnswer{SelectedOptionIDs: testutil.CorrectOptionIDs(single)}, true, 2},
		{"single foreign only", single, SubmittedAnswer{SelectedOptionIDs: []uint{foreignID}}, false, 0},
		{"text", text, SubmittedAnswer{TextAnswer: strPtr("goroutines are cheap")}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.submission.Submit(ctx, tt.task.ID, user, tt.answer)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, result.IsCorrect)
			assert.Equal(t, tt.wantScore, result.Score)
			assert.Equal(t, tt.wantOK, result.Submission.IsCorrect)
			for _, id := range result.Submission.SelectedOptionIDs {
				assert.NotEqual(t, foreignID, id)
			}
		})
	}

	history, err := s.submission.History(ctx, text.ID, user)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.NotNil(t, history[0].TextAnswer)
	assert.Equal(t, "goroutines are cheap", *history[0].TextAnswer)
	assert.Empty(t, history[0].SelectedOptionIDs)
}

func TestSubmissionService_ValidationErrors(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	const user uint = 23

	course := testutil.CreateCourse(t, s.db, "Validation", model.CoursePublished, 1)
	chapter := testutil.CreateChapter(t, s.db, course.ID, 1, true)
	single := testutil.CreateTask(t, s.db, chapter.ID, model.TaskSingleChoice, 1, true, false)
	multi := testutil.CreateTask(t, s.db, chapter.ID, model.TaskMultipleChoice, 1, true, true)
	text := testutil.CreateTask(t, s.db, chapter.ID, model.TaskText, 1)

	tests := []struct {
		name   string
		task   *model.Task
		answer SubmittedAnswer
	}{
		{"single with two options", single, SubmittedAnswer{SelectedOptionIDs: []uint{single.Options[0].ID, single.Options[1].ID}}},
		{"single without options", single, SubmittedAnswer{}},
		{"multiple without options", multi, SubmittedAnswer{SelectedOptionIDs: []uint{}}},
		{"text without answer", text, SubmittedAnswer{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.submission.Submit(ctx, tt.task.ID, user, tt.answer)
			assert.True(t, util.IsValidationError(err), "want ValidationError, got %v", err)
		})
	}

	var count int64
	require.NoError(t, s.db.Model(&model.TaskSubmission{}).Count(&count).Error)
	assert.Zero(t, count)

	_, err := s.submission.Submit(ctx, 9999, user, SubmittedAnswer{SelectedOptionIDs: []uint{1}})
	assert.ErrorIs(t, err, util.ErrTaskNotFound)

	_, err = s.submission.History(ctx, 9999, user)
	assert.ErrorIs(t, err, util.ErrTaskNotFound)
}

func TestSubmissionService_CompletesCourse(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	const user uint = 24

	course := testutil.CreateCourse(t, s.db, "Finish", model.CoursePublished, 1)
	open := testutil.CreateChapter(t, s.db, course.ID, 1, true)
	hidden := testutil.CreateChapter(t, s.db, course.ID, 2, false)
	first := testutil.CreateTask(t, s.db, open.ID, model.TaskSingleChoice, 5, true, false)
	second := testutil.CreateTask(t, s.db, hidden.ID, model.TaskTrueFalse, 5, false, true)

	_, err := s.courses.Enroll(ctx, course.ID, user)
	require.NoError(t, err)

	result, err := s.submission.Submit(ctx, first.ID, user, SubmittedAnswer{SelectedOptionIDs: testutil.CorrectOptionIDs(first)})
	require.NoError(t, err)
	assert.Equal(t, CourseProgress{TotalTasks: 2, CompletedTasks: 1, ProgressPercent: 50}, result.Progress)
	assert.Equal(t, model.EnrollmentEnrolled, s.enrollment(t, course.ID, user).Status)

	result, err = s.submission.Submit(ctx, second.ID, user, SubmittedAnswer{SelectedOptionIDs: testutil.CorrectOptionIDs(second)})
	require.NoError(t, err)
	assert.Equal(t, CourseProgress{TotalTasks: 2, CompletedTasks: 2, ProgressPercent: 100}, result.Progress)

	e := s.enrollment(t, course.ID, user)
	assert.Equal(t, model.EnrollmentCompleted, e.Status)
	require.NotNil(t, e.Score)
	// 完成分数为答对的题目数, 与题目分值无关
	assert.Equal(t, 2, *e.Score)
	assert.NotNil(t, e.CompletedAt)

	// 之后答错不会撤销完成状态
	result, err = s.submission.Submit(ctx, first.ID, user, SubmittedAnswer{SelectedOptionIDs: wrongOptionIDs(first)})
	require.NoError(t, err)
	assert.Equal(t, 100, result.Progress.ProgressPercent)
	assert.Equal(t, model.EnrollmentCompleted, s.enrollment(t, course.ID, user).Status)

	// 完成后解锁后续课程
	next := testutil.CreateCourse(t, s.db, "Next", model.CoursePublished, 2, course.ID)
	ok, err := s.courses.CanEnroll(ctx, next.ID, user)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSubmissionService_CompletesWithoutEnrollment(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	const user uint = 25

	course := testutil.CreateCourse(t, s.db, "Drop-in", model.CoursePublished, 1)
	chapter := testutil.CreateChapter(t, s.db, course.ID, 1, true)
	task := testutil.CreateTask(t, s.db, chapter.ID, model.TaskSingleChoice, 1, true)

	_, err := s.submission.Submit(ctx, task.ID, user, SubmittedAnswer{SelectedOptionIDs: testutil.CorrectOptionIDs(task)})
	require.NoError(t, err)

	e := s.enrollment(t, course.ID, user)
	require.NotNil(t, e)
	assert.Equal(t, model.EnrollmentCompleted, e.Status)
}

func TestSubmissionService_ConcurrentAttempts(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	const (
		user    uint = 26
		workers      = 6
	)

	course := testutil.CreateCourse(t, s.db, "Race", model.CoursePublished, 1)
	chapter := testutil.CreateChapter(t, s.db, course.ID, 1, true)
	task := testutil.CreateTask(t, s.db, chapter.ID, model.TaskSingleChoice, 1, true, false)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		attempts []int
		errs     []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := s.submission.Submit(ctx, task.ID, user, SubmittedAnswer{SelectedOptionIDs: wrongOptionIDs(task)})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			attempts = append(attempts, result.Attempt)
		}()
	}
	wg.Wait()

	require.Empty(t, errs)
	sort.Ints(attempts)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, attempts)
}

func TestSubmissionRepository_DuplicateAttempt(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	course := testutil.CreateCourse(t, s.db, "Dup", model.CoursePublished, 1)
	chapter := testutil.CreateChapter(t, s.db, course.ID, 1, true)
	task := testutil.CreateTask(t, s.db, chapter.ID, model.TaskText, 1)

	repo := s.submission.SubmissionRepo
	require.NoError(t, repo.Create(ctx, &model.TaskSubmission{TaskID: task.ID, UserID: 1, Attempt: 1}))

	err := repo.Create(ctx, &model.TaskSubmission{TaskID: task.ID, UserID: 1, Attempt: 1})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.True(t, database.IsRetryable(err))

	next, err := repo.NextAttempt(ctx, task.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, next)
}

// staleAttempts 让前 n 次提交写入时沿用已被占用的序号 1, 模拟并发写入者抢先提交
func staleAttempts(t *testing.T, db *gorm.DB, n int) *int {
	t.Helper()

	forced := 0
	err := db.Callback().Create().Before("gorm:create").Register("test:stale_attempt", func(tx *gorm.DB) {
		sub, ok := tx.Statement.Dest.(*model.TaskSubmission)
		if !ok || forced >= n {
			return
		}
		forced++
		sub.Attempt = 1
	})
	require.NoError(t, err)
	return &forced
}

func TestSubmissionService_RetriesOnDuplicateAttempt(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	const user uint = 27

	course := testutil.CreateCourse(t, s.db, "Retry", model.CoursePublished, 1)
	chapter := testutil.CreateChapter(t, s.db, course.ID, 1, true)
	task := testutil.CreateTask(t, s.db, chapter.ID, model.TaskSingleChoice, 1, true, false)

	_, err := s.submission.Submit(ctx, task.ID, user, SubmittedAnswer{SelectedOptionIDs: wrongOptionIDs(task)})
	require.NoError(t, err)

	forced := staleAttempts(t, s.db, 1)
	retries := promtest.ToFloat64(monitoring.SubmissionRetryCounter)

	result, err := s.submission.Submit(ctx, task.ID, user, SubmittedAnswer{SelectedOptionIDs: testutil.CorrectOptionIDs(task)})
	require.NoError(t, err)
	assert.Equal(t, 1, *forced)
	assert.Equal(t, 2, result.Attempt)
	assert.True(t, result.IsCorrect)
	assert.Equal(t, 100, result.Progress.ProgressPercent)
	assert.Equal(t, retries+1, promtest.ToFloat64(monitoring.SubmissionRetryCounter))

	history, err := s.submission.History(ctx, task.ID, user)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 2, history[0].Attempt)
	assert.Equal(t, model.EnrollmentCompleted, s.enrollment(t, course.ID, user).Status)
}

func TestSubmissionService_RetriesExhausted(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	const user uint = 28

	course := testutil.CreateCourse(t, s.db, "Retry limit", model.CoursePublished, 1)
	chapter := testutil.CreateChapter(t, s.db, course.ID, 1, true)
	task := testutil.CreateTask(t, s.db, chapter.ID, model.TaskSingleChoice, 1, true)

	_, err := s.submission.Submit(ctx, task.ID, user, SubmittedAnswer{SelectedOptionIDs: testutil.CorrectOptionIDs(task)})
	require.NoError(t, err)
	require.NotNil(t, s.enrollment(t, course.ID, user))

	forced := staleAttempts(t, s.db, 10)

	_, err = s.submission.Submit(ctx, task.ID, user, SubmittedAnswer{SelectedOptionIDs: testutil.CorrectOptionIDs(task)})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.Equal(t, s.submission.MaxAttempts, *forced)

	history, err := s.submission.History(ctx, task.ID, user)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
