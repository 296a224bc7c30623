// Package testutil 测试用的 sqlite 数据库与课程数据构造
package testutil

import (
	"elearning_backend/internal/model"
	"elearning_backend/pkg/database"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var seq atomic.Int64

func next() int64 {
	return seq.Add(1)
}

// NewDB 在临时目录创建 sqlite 文件库并完成迁移. 单连接, 事务天然串行
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "engine.db")
	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// CreateCourse 创建课程并写入直接前置课程
func CreateCourse(t testing.TB, db *gorm.DB, title string, status model.CourseStatus, sortOrder int, prerequisites ...uint) *model.Course {
	t.Helper()

	course := &model.Course{
		Title:     title,
		Slug:      fmt.Sprintf("course-%d", next()),
		Status:    status,
		SortOrder: sortOrder,
	}
	if status == model.CoursePublished {
		now := time.Now()
		course.PublishedAt = &now
	}
	require.NoError(t, db.Create(course).Error)

	for _, id := range prerequisites {
		require.NoError(t, db.Create(&model.CoursePrerequisite{CourseID: course.ID, RequiredCourseID: id}).Error)
	}
	course.PrerequisiteIDs = append([]uint{}, prerequisites...)
	return course
}

func CreateChapter(t testing.TB, db *gorm.DB, courseID uint, sortOrder int, published bool) *model.Chapter {
	t.Helper()

	chapter := &model.Chapter{
		CourseID:    courseID,
		Title:       fmt.Sprintf("Chapter %d", sortOrder),
		Slug:        fmt.Sprintf("chapter-%d", next()),
		SortOrder:   sortOrder,
		IsPublished: published,
	}
	require.NoError(t, db.Create(chapter).Error)
	return chapter
}

// CreateTask correct 中每一项生成一个选项, true 为正确选项
func CreateTask(t testing.TB, db *gorm.DB, chapterID uint, taskType model.TaskType, maxScore int, correct ...bool) *model.Task {
	t.Helper()

	task := &model.Task{
		ChapterID:  chapterID,
		Title:      fmt.Sprintf("Task %d", next()),
		Type:       taskType,
		MaxScore:   maxScore,
		IsRequired: true,
	}
	require.NoError(t, db.Omit("Options").Create(task).Error)

	for i, ok := range correct {
		opt := model.TaskOption{
			TaskID:    task.ID,
			Text:      fmt.Sprintf("Option %d", i+1),
			IsCorrect: ok,
			SortOrder: i,
		}
		require.NoError(t, db.Create(&opt).Error)
		task.Options = append(task.Options, opt)
	}
	return task
}

// CorrectOptionIDs 任务中标记为正确的选项ID
func CorrectOptionIDs(task *model.Task) []uint {
	var ids []uint
	for _, o := range task.Options {
		if o.IsCorrect {
			ids = append(ids, o.ID)
		}
	}
	return ids
}

// SetEnrollment 直接写入报名状态, 用于构造前置课程已完成等场景
func SetEnrollment(t testing.TB, db *gorm.DB, courseID, userID uint, status model.EnrollmentStatus) {
	t.Helper()

	e := &model.Enrollment{CourseID: courseID, UserID: userID, Status: status}
	if status == model.EnrollmentCompleted {
		now := time.Now()
		e.CompletedAt = &now
	}
	require.NoError(t, db.Create(e).Error)
}
