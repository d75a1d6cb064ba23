package usecase

import (
	"context"
	"time"

	"culinary-hub/internal/entity"
	"culinary-hub/internal/repo/persistent"
	"culinary-hub/pkg/logger"
	"culinary-hub/pkg/queue"
)

type EnrollmentUseCase interface {
	Enroll(ctx context.Context, actor entity.Actor, courseID uint) (*entity.Enrollment, error)
	Mine(ctx context.Context, actor entity.Actor) ([]*entity.Enrollment, error)
	Get(ctx context.Context, actor entity.Actor, courseID uint) (*entity.Enrollment, error)
	UpdateProgress(ctx context.Context, actor entity.Actor, courseID uint, progress entity.Progress) (*entity.Enrollment, error)
	Unenroll(ctx context.Context, actor entity.Actor, courseID uint) error
}

type enrollmentUseCase struct {
	enrollmentRepo persistent.EnrollmentRepository
	userRepo       persistent.UserRepository
	publisher      EventPublisher
	logger         *logger.Logger
}

func NewEnrollmentUseCase(
	enrollmentRepo persistent.EnrollmentRepository,
	userRepo persistent.UserRepository,
	publisher EventPublisher,
	logger *logger.Logger,
) EnrollmentUseCase {
	return &enrollmentUseCase{
		enrollmentRepo: enrollmentRepo,
		userRepo:       userRepo,
		publisher:      publisher,
		logger:         logger,
	}
}

func (uc *enrollmentUseCase) Enroll(ctx context.Context, actor entity.Actor, courseID uint) (*entity.Enrollment, error) {
	enrollment := &entity.Enrollment{UserID: actor.UserID, CourseID: courseID}
	if err := uc.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (uc *enrollmentUseCase) Mine(ctx context.Context, actor entity.Actor) ([]*entity.Enrollment, error) {
	return uc.enrollmentRepo.ListByUser(ctx, actor.UserID)
}

func (uc *enrollmentUseCase) Get(ctx context.Context, actor entity.Actor, courseID uint) (*entity.Enrollment, error) {
	return uc.enrollmentRepo.Get(ctx, actor.UserID, courseID)
}

// UpdateProgress publishes a completion event only on the update that first
// reaches 1.00.
func (uc *enrollmentUseCase) UpdateProgress(ctx context.Context, actor entity.Actor, courseID uint, progress entity.Progress) (*entity.Enrollment, error) {
	if progress < entity.ProgressNone || progress > entity.ProgressComplete {
		return nil, entity.Invalid("progress must be between 0.00 and 1.00")
	}

	enrollment, completedNow, err := uc.enrollmentRepo.UpdateProgress(ctx, actor.UserID, courseID, progress, time.Now())
	if err != nil {
		return nil, err
	}
	if completedNow {
		uc.logger.Info("Course completed: user=%d course=%d", actor.UserID, courseID)
		uc.notifyCompleted(ctx, enrollment)
	}
	return enrollment, nil
}

func (uc *enrollmentUseCase) notifyCompleted(ctx context.Context, enrollment *entity.Enrollment) {
	user, err := uc.userRepo.GetByID(ctx, enrollment.UserID)
	if err != nil {
		uc.logger.Error("Failed to load user %d for notification: %v", enrollment.UserID, err)
		return
	}

	completedAt := time.Now()
	if enrollment.CompletedAt != nil {
		completedAt = *enrollment.CompletedAt
	}
	publishEvent(ctx, uc.publisher, uc.logger, queue.RoutingEnrollmentCompleted, queue.EnrollmentCompletedEvent{
		EnrollmentID: enrollment.ID,
		UserID:       user.ID,
		FullName:     user.FullName,
		Email:        user.Email,
		CourseID:     enrollment.CourseID,
		CourseName:   enrollment.CourseName,
		CompletedAt:  completedAt,
	})
}

func (uc *enrollmentUseCase) Unenroll(ctx context.Context, actor entity.Actor, courseID uint) error {
	return uc.enrollmentRepo.Delete(ctx, actor.UserID, courseID)
}
