package service

import (
	"context"
	"elearning_backend/internal/model"
	"elearning_backend/internal/repository"
	"elearning_backend/internal/util"
	"elearning_backend/pkg/logger"
	"elearning_backend/pkg/monitoring"
	"elearning_backend/pkg/tracing"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CourseService 课程可见性、报名状态机与进度汇总
type CourseService struct {
	DB             *gorm.DB
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
	SubmissionRepo *repository.SubmissionRepository
	Storage        *StorageService
	Cache          *CatalogCache
}

func NewCourseService(
	db *gorm.DB,
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	submissionRepo *repository.SubmissionRepository,
	storage *StorageService,
	cache *CatalogCache,
) *CourseService {
	return &CourseService{
		DB:             db,
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		SubmissionRepo: submissionRepo,
		Storage:        storage,
		Cache:          cache,
	}
}

// EnrollResult 报名后的课程与进度
type EnrollResult struct {
	Course   *model.Course  `json:"course"`
	Progress CourseProgress `json:"progress"`
}

// txRepos 绑定到同一事务的仓储
type txRepos struct {
	courses     *repository.CourseRepository
	enrollments *repository.EnrollmentRepository
	submissions *repository.SubmissionRepository
}

func (s *CourseService) withTx(tx *gorm.DB) txRepos {
	return txRepos{
		courses:     s.CourseRepo.WithTx(tx),
		enrollments: s.EnrollmentRepo.WithTx(tx),
		submissions: s.SubmissionRepo.WithTx(tx),
	}
}

func (s *CourseService) repos() txRepos {
	return txRepos{
		courses:     s.CourseRepo,
		enrollments: s.EnrollmentRepo,
		submissions: s.SubmissionRepo,
	}
}

// publishedCatalog 优先读缓存, 未命中时查库并回填
func (s *CourseService) publishedCatalog(ctx context.Context) ([]CourseSummary, error) {
	if cached, ok := s.Cache.Get(ctx); ok {
		return cached, nil
	}

	courses, err := s.CourseRepo.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]CourseSummary, 0, len(courses))
	for i := range courses {
		summaries = append(summaries, NewCourseSummary(&courses[i]))
	}
	s.Cache.Set(ctx, summaries)
	return summaries, nil
}

func completedSet(ctx context.Context, enrollments *repository.EnrollmentRepository, userID uint) (map[uint]struct{}, error) {
	ids, err := enrollments.CompletedCourseIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return idSet(ids), nil
}

// CourseListing 已发布课程按前置条件分为可报名与锁定两组
func (s *CourseService) CourseListing(ctx context.Context, userID uint) (*CourseListing, error) {
	catalog, err := s.publishedCatalog(ctx)
	if err != nil {
		return nil, err
	}
	completed, err := completedSet(ctx, s.EnrollmentRepo, userID)
	if err != nil {
		return nil, err
	}
	listing := ResolveAvailability(catalog, completed)
	return &listing, nil
}

func (s *CourseService) AvailableCourses(ctx context.Context, userID uint) ([]CourseSummary, error) {
	listing, err := s.CourseListing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return listing.Available, nil
}

func (s *CourseService) LockedCourses(ctx context.Context, userID uint) ([]CourseSummary, error) {
	listing, err := s.CourseListing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return listing.Locked, nil
}

// enrollmentRejection 返回拒绝原因码, 允许报名时返回空串
func enrollmentRejection(ctx context.Context, r txRepos, course *model.Course, userID uint) (string, error) {
	if !course.IsPublished() {
		return util.ReasonCourseNotPublished, nil
	}
	completed, err := completedSet(ctx, r.enrollments, userID)
	if err != nil {
		return "", err
	}
	if !PrerequisitesSatisfied(course.PrerequisiteIDs, completed) {
		return util.ReasonPrerequisitesMissing, nil
	}
	return "", nil
}

func rejectionReason(err error) string {
	var rejected *util.EnrollmentRejectedError
	if errors.As(err, &rejected) {
		return rejected.Reason
	}
	return ""
}

// CheckEnrollment 课程不存在时返回 ErrCourseNotFound, 不允许报名时返回 EnrollmentRejectedError
func (s *CourseService) CheckEnrollment(ctx context.Context, courseID, userID uint) error {
	course, err := s.CourseRepo.FindByID(ctx, courseID)
	if err != nil {
		return err
	}
	reason, err := enrollmentRejection(ctx, s.repos(), course, userID)
	if err != nil {
		return err
	}
	if reason != "" {
		return &util.EnrollmentRejectedError{Reason: reason}
	}
	return nil
}

func (s *CourseService) CanEnroll(ctx context.Context, courseID, userID uint) (bool, error) {
	err := s.CheckEnrollment(ctx, courseID, userID)
	if errors.Is(err, util.ErrEnrollmentNotAllowed) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Enroll 在一个事务内检查前置条件并写入报名记录.
// 已完成的课程再次报名会回到 enrolled 状态(重修)
func (s *CourseService) Enroll(ctx context.Context, courseID, userID uint) (*EnrollResult, error) {
	ctx, span := tracing.Start(ctx, "CourseService.Enroll",
		attribute.Int64("course.id", int64(courseID)),
		attribute.Int64("user.id", int64(userID)),
	)
	defer span.End()

	var result EnrollResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := s.withTx(tx)

		course, err := r.courses.FindByID(ctx, courseID)
		if err != nil {
			return err
		}

		reason, err := enrollmentRejection(ctx, r, course, userID)
		if err != nil {
			return err
		}
		if reason != "" {
			return &util.EnrollmentRejectedError{Reason: reason}
		}

		if err := r.enrollments.Upsert(ctx, &model.Enrollment{
			CourseID: courseID,
			UserID:   userID,
			Status:   model.EnrollmentEnrolled,
		}); err != nil {
			return err
		}

		progress, err := computeProgress(ctx, r, courseID, userID)
		if err != nil {
			return err
		}

		fresh, err := r.courses.FindByID(ctx, courseID)
		if err != nil {
			return err
		}
		result = EnrollResult{Course: fresh, Progress: progress}
		return nil
	})

	switch {
	case err == nil:
		monitoring.EnrollmentCounter.WithLabelValues("enrolled").Inc()
		logger.Log.Info("User enrolled",
			zap.Uint("courseId", courseID),
			zap.Uint("userId", userID),
			zap.Int("progressPercent", result.Progress.ProgressPercent),
		)
		return &result, nil
	case errors.Is(err, util.ErrEnrollmentNotAllowed):
		monitoring.EnrollmentCounter.WithLabelValues("rejected").Inc()
		span.SetAttributes(attribute.String("enrollment.rejected", rejectionReason(err)))
	case util.IsNotFound(err):
	default:
		monitoring.EnrollmentCounter.WithLabelValues("error").Inc()
		tracing.Fail(span, err)
	}
	return nil, err
}

func computeProgress(ctx context.Context, r txRepos, courseID, userID uint) (CourseProgress, error) {
	taskIDs, err := r.courses.TaskIDs(ctx, courseID)
	if err != nil {
		return CourseProgress{}, err
	}
	correct, err := r.submissions.CorrectTaskIDs(ctx, userID, taskIDs)
	if err != nil {
		return CourseProgress{}, err
	}
	return ComputeProgress(taskIDs, correct), nil
}

// markCompletedIfEligible 进度为 100 时把报名记录置为 completed, 返回是否写入
func markCompletedIfEligible(ctx context.Context, r txRepos, courseID, userID uint, progress *CourseProgress) (bool, error) {
	if progress == nil {
		p, err := computeProgress(ctx, r, courseID, userID)
		if err != nil {
			return false, err
		}
		progress = &p
	}
	if !progress.IsComplete() {
		return false, nil
	}

	score := progress.CompletedTasks
	now := time.Now()
	err := r.enrollments.Upsert(ctx, &model.Enrollment{
		CourseID:    courseID,
		UserID:      userID,
		Status:      model.EnrollmentCompleted,
		Score:       &score,
		CompletedAt: &now,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// MarkCompletedIfEligible progress 为 nil 时重新计算
func (s *CourseService) MarkCompletedIfEligible(ctx context.Context, courseID, userID uint, progress *CourseProgress) error {
	marked, err := markCompletedIfEligible(ctx, s.repos(), courseID, userID, progress)
	if err != nil {
		return err
	}
	if marked {
		monitoring.CourseCompletionCounter.Inc()
	}
	return nil
}

// Progress 课程存在即可查询, 不要求已报名
func (s *CourseService) Progress(ctx context.Context, courseID, userID uint) (CourseProgress, error) {
	if _, err := s.CourseRepo.FindByID(ctx, courseID); err != nil {
		return CourseProgress{}, err
	}
	return computeProgress(ctx, s.repos(), courseID, userID)
}

// CourseDetail 已发布课程的完整结构与当前用户进度
func (s *CourseService) CourseDetail(ctx context.Context, courseID, userID uint) (*CourseDetail, error) {
	course, err := s.CourseRepo.FindWithStructure(ctx, courseID)
	if err != nil {
		return nil, err
	}
	progress, err := computeProgress(ctx, s.repos(), courseID, userID)
	if err != nil {
		return nil, err
	}
	return &CourseDetail{
		Course:   s.buildCourseView(ctx, course),
		Progress: progress,
	}, nil
}

// MyCourses 最新报名在前
func (s *CourseService) MyCourses(ctx context.Context, userID uint) ([]MyCourse, error) {
	enrollments, err := s.EnrollmentRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	list := make([]MyCourse, 0, len(enrollments))
	for _, e := range enrollments {
		if e.Course == nil {
			continue
		}
		list = append(list, MyCourse{
			Course:      NewCourseSummary(e.Course),
			Status:      e.Status,
			Score:       e.Score,
			CompletedAt: e.CompletedAt,
			EnrolledAt:  e.CreatedAt,
		})
	}
	return list, nil
}
