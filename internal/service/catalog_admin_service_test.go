package service

import (
	"context"
	"elearning_backend/internal/model"
	"elearning_backend/internal/testutil"
	"elearning_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *int { return &i }

func TestCatalogAdminService_CourseLifecycle(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	const admin uint = 1

	course, err := s.admin.CreateCourse(ctx, admin, CourseRequest{
		Title:     "Go Generics",
		Slug:      "go-generics",
		Level:     "intermediate",
		Language:  "en",
		SortOrder: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, model.CourseDraft, course.Status)
	assert.Nil(t, course.PublishedAt)
	require.NotNil(t, course.CreatedBy)
	assert.Equal(t, admin, *course.CreatedBy)
	assert.Empty(t, course.PrerequisiteIDs)

	_, err = s.admin.CreateCourse(ctx, admin, CourseRequest{Title: "Copy", Slug: "go-generics"})
	assert.True(t, util.IsValidationError(err), "want ValidationError, got %v", err)

	title := "Go Generics in Practice"
	updated, err := s.admin.UpdateCourse(ctx, course.ID, UpdateCourseRequest{Title: &title, SortOrder: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, 0, updated.SortOrder)
	assert.Equal(t, "go-generics", updated.Slug)

	published, err := s.admin.PublishCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CoursePublished, published.Status)
	assert.NotNil(t, published.PublishedAt)

	available, err := s.courses.AvailableCourses(ctx, 50)
	require.NoError(t, err)
	assert.Equal(t, []uint{course.ID}, summaryIDs(available))

	draft, err := s.admin.UnpublishCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CourseDraft, draft.Status)
	assert.Nil(t, draft.PublishedAt)

	archived, err := s.admin.ArchiveCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CourseArchived, archived.Status)

	require.NoError(t, s.admin.DeleteCourse(ctx, course.ID))
	_, err = s.courses.CourseRepo.FindByID(ctx, course.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	assert.ErrorIs(t, s.admin.DeleteCourse(ctx, course.ID), util.ErrCourseNotFound)
	_, err = s.admin.PublishCourse(ctx, course.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
	_, err = s.admin.UpdateCourse(ctx, 9999, UpdateCourseRequest{Title: &title})
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestCatalogAdminService_SyncPrerequisites(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	a := testutil.CreateCourse(t, s.db, "A", model.CoursePublished, 1)
	b := testutil.CreateCourse(t, s.db, "B", model.CoursePublished, 2)
	c := testutil.CreateCourse(t, s.db, "C", model.CoursePublished, 3)

	course, err := s.admin.SyncPrerequisites(ctx, c.ID, []uint{b.ID, a.ID, a.ID})
	require.NoError(t, err)
	assert.Equal(t, []uint{a.ID, b.ID}, course.PrerequisiteIDs)

	course, err = s.admin.SyncPrerequisites(ctx, c.ID, []uint{b.ID})
	require.NoError(t, err)
	assert.Equal(t, []uint{b.ID}, course.PrerequisiteIDs)

	// 环是允许的
	_, err = s.admin.SyncPrerequisites(ctx, b.ID, []uint{c.ID})
	require.NoError(t, err)

	_, err = s.admin.SyncPrerequisites(ctx, c.ID, []uint{a.ID, c.ID})
	assert.True(t, util.IsValidationError(err), "want ValidationError, got %v", err)

	_, err = s.admin.SyncPrerequisites(ctx, c.ID, []uint{a.ID, 9999})
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	_, err = s.admin.SyncPrerequisites(ctx, 9999, []uint{a.ID})
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	// 失败的同步不修改原有前置
	current, err := s.courses.CourseRepo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{b.ID}, current.PrerequisiteIDs)

	course, err = s.admin.SyncPrerequisites(ctx, c.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, course.PrerequisiteIDs)
}

func TestCatalogAdminService_ChaptersAndTasks(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	course := testutil.CreateCourse(t, s.db, "Structure", model.CoursePublished, 1)

	chapter, err := s.admin.CreateChapter(ctx, course.ID, ChapterRequest{
		Title:       "Hidden chapter",
		Slug:        "hidden-chapter",
		SortOrder:   1,
		IsPublished: boolPtr(false),
	})
	require.NoError(t, err)
	stored, err := s.admin.AdminRepo.FindChapter(ctx, chapter.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsPublished)

	_, err = s.admin.CreateChapter(ctx, course.ID, ChapterRequest{Title: "Dup", Slug: "hidden-chapter"})
	assert.True(t, util.IsValidationError(err), "want ValidationError, got %v", err)

	_, err = s.admin.CreateChapter(ctx, 9999, ChapterRequest{Title: "Orphan", Slug: "orphan"})
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	chapter, err = s.admin.UpdateChapter(ctx, chapter.ID, UpdateChapterRequest{IsPublished: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, chapter.IsPublished)

	task, err := s.admin.CreateTask(ctx, chapter.ID, TaskRequest{
		Title:      "Pick the channel op",
		Type:       model.TaskSingleChoice,
		IsRequired: boolPtr(false),
		Options: []OptionRequest{
			{Text: "close(ch)", IsCorrect: true, SortOrder: 1},
			{Text: "ch = nil", SortOrder: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, task.MaxScore)
	assert.False(t, task.IsRequired)
	require.Len(t, task.Options, 2)
	assert.True(t, task.Options[0].IsCorrect)

	task, err = s.admin.UpdateTask(ctx, task.ID, UpdateTaskRequest{MaxScore: intPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, 4, task.MaxScore)

	_, err = s.admin.CreateTask(ctx, 9999, TaskRequest{Title: "Orphan", Type: model.TaskText})
	assert.ErrorIs(t, err, util.ErrChapterNotFound)

	_, err = s.admin.UpdateTask(ctx, 9999, UpdateTaskRequest{MaxScore: intPtr(2)})
	assert.ErrorIs(t, err, util.ErrTaskNotFound)
}

// false 标志必须原样落库, 隐藏章节不出现在学员视图中
func TestCatalogAdminService_CreateKeepsFalseFlags(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	course := testutil.CreateCourse(t, s.db, "Flags", model.CoursePublished, 1)
	visible, err := s.admin.CreateChapter(ctx, course.ID, ChapterRequest{Title: "Visible", Slug: "flags-visible", SortOrder: 1})
	require.NoError(t, err)
	assert.True(t, visible.IsPublished)

	hidden, err := s.admin.CreateChapter(ctx, course.ID, ChapterRequest{
		Title:       "Hidden",
		Slug:        "flags-hidden",
		SortOrder:   2,
		IsPublished: boolPtr(false),
	})
	require.NoError(t, err)
	assert.False(t, hidden.IsPublished)

	var published bool
	require.NoError(t, s.db.Model(&model.Chapter{}).Where("id = ?", hidden.ID).Pluck("is_published", &published).Error)
	assert.False(t, published)

	optional, err := s.admin.CreateTask(ctx, visible.ID, TaskRequest{
		Title:      "Optional",
		Type:       model.TaskText,
		IsRequired: boolPtr(false),
	})
	require.NoError(t, err)
	required, err := s.admin.CreateTask(ctx, visible.ID, TaskRequest{Title: "Required", Type: model.TaskText})
	require.NoError(t, err)

	var stored []model.Task
	require.NoError(t, s.db.Where("chapter_id = ?", visible.ID).Order("id").Find(&stored).Error)
	require.Len(t, stored, 2)
	assert.Equal(t, optional.ID, stored[0].ID)
	assert.False(t, stored[0].IsRequired)
	assert.Equal(t, required.ID, stored[1].ID)
	assert.True(t, stored[1].IsRequired)

	detail, err := s.courses.CourseDetail(ctx, course.ID, 1)
	require.NoError(t, err)
	require.Len(t, detail.Course.Chapters, 1)
	assert.Equal(t, visible.ID, detail.Course.Chapters[0].ID)
}

func TestCatalogAdminService_SyncOptions(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	course := testutil.CreateCourse(t, s.db, "Options", model.CoursePublished, 1)
	chapter := testutil.CreateChapter(t, s.db, course.ID, 1, true)
	task := testutil.CreateTask(t, s.db, chapter.ID, model.TaskMultipleChoice, 1, true, false, false)
	other := testutil.CreateTask(t, s.db, chapter.ID, model.TaskSingleChoice, 1, true)

	keep, drop := task.Options[0], task.Options[1]
	synced, err := s.admin.SyncOptions(ctx, task.ID, []OptionRequest{
		{ID: keep.ID, Text: "renamed", IsCorrect: false, SortOrder: 2},
		{ID: task.Options[2].ID, Text: task.Options[2].Text, IsCorrect: true, SortOrder: 1},
		{Text: "brand new", IsCorrect: true, SortOrder: 3},
	})
	require.NoError(t, err)
	require.Len(t, synced.Options, 3)

	byText := map[string]model.TaskOption{}
	for _, o := range synced.Options {
		byText[o.Text] = o
		assert.NotEqual(t, drop.ID, o.ID)
	}
	assert.Equal(t, keep.ID, byText["renamed"].ID)
	assert.False(t, byText["renamed"].IsCorrect)
	assert.True(t, byText["brand new"].IsCorrect)
	assert.Equal(t, task.Options[2].ID, synced.Options[0].ID)

	// 不能借用其他题目的选项
	_, err = s.admin.SyncOptions(ctx, task.ID, []OptionRequest{{ID: other.Options[0].ID, Text: "stolen"}})
	assert.ErrorIs(t, err, util.ErrOptionNotFound)

	after, err := s.admin.AdminRepo.FindTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Len(t, after.Options, 3)

	_, err = s.admin.SyncOptions(ctx, 9999, nil)
	assert.ErrorIs(t, err, util.ErrTaskNotFound)
}

func TestCatalogAdminService_DeleteCascades(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	const user uint = 31

	course := testutil.CreateCourse(t, s.db, "Cascade", model.CoursePublished, 1)
	chapter := testutil.CreateChapter(t, s.db, course.ID, 1, true)
	kept := testutil.CreateChapter(t, s.db, course.ID, 2, true)
	task := testutil.CreateTask(t, s.db, chapter.ID, model.TaskSingleChoice, 1, true, false)
	survivor := testutil.CreateTask(t, s.db, kept.ID, model.TaskSingleChoice, 1, true, false)
	require.NoError(t, s.db.Create(&model.ChapterAttachment{ChapterID: chapter.ID, Title: "Notes", URL: "https://example.com"}).Error)

	_, err := s.submission.Submit(ctx, task.ID, user, SubmittedAnswer{SelectedOptionIDs: testutil.CorrectOptionIDs(task)})
	require.NoError(t, err)
	_, err = s.submission.Submit(ctx, survivor.ID, user, SubmittedAnswer{SelectedOptionIDs: wrongOptionIDs(survivor)})
	require.NoError(t, err)

	require.NoError(t, s.admin.DeleteChapter(ctx, chapter.ID))

	count := func(m interface{}, query string, args ...interface{}) int64 {
		var n int64
		require.NoError(t, s.db.Model(m).Where(query, args...).Count(&n).Error)
		return n
	}
	assert.Zero(t, count(&model.Task{}, "chapter_id = ?", chapter.ID))
	assert.Zero(t, count(&model.TaskOption{}, "task_id = ?", task.ID))
	assert.Zero(t, count(&model.TaskSubmission{}, "task_id = ?", task.ID))
	assert.Zero(t, count(&model.ChapterAttachment{}, "chapter_id = ?", chapter.ID))
	assert.Equal(t, int64(1), count(&model.TaskSubmission{}, "task_id = ?", survivor.ID))

	progress, err := s.courses.Progress(ctx, course.ID, user)
	require.NoError(t, err)
	assert.Equal(t, CourseProgress{TotalTasks: 1}, progress)

	assert.ErrorIs(t, s.admin.DeleteChapter(ctx, chapter.ID), util.ErrChapterNotFound)

	require.NoError(t, s.admin.DeleteTask(ctx, survivor.ID))
	assert.Zero(t, count(&model.TaskSubmission{}, "task_id = ?", survivor.ID))
	assert.ErrorIs(t, s.admin.DeleteTask(ctx, survivor.ID), util.ErrTaskNotFound)
}
