package usecase

import (
	"context"
	"io"
	"strings"
	"time"

	"culinary-hub/internal/entity"
	"culinary-hub/internal/repo/persistent"
	"culinary-hub/pkg/logger"
	"culinary-hub/pkg/queue"
)

type ChefUseCase interface {
	List(ctx context.Context, page entity.Page) ([]*entity.Chef, int64, error)
	Get(ctx context.Context, id uint) (*entity.Chef, error)
	GetByUser(ctx context.Context, userID uint) (*entity.Chef, error)

	Apply(ctx context.Context, actor entity.Actor, profile entity.ChefProfile) (*entity.ChefApplication, error)
	MyApplications(ctx context.Context, actor entity.Actor) ([]*entity.ChefApplication, error)
	UploadCertificate(ctx context.Context, actor entity.Actor, r io.Reader) (string, error)

	ListApplications(ctx context.Context, actor entity.Actor, status entity.ApplicationStatus, page entity.Page) ([]*entity.ChefApplication, int64, error)
	GetApplication(ctx context.Context, actor entity.Actor, id uint) (*entity.ChefApplication, error)
	Approve(ctx context.Context, actor entity.Actor, id uint, remarks string) (*entity.ChefApplication, error)
	Reject(ctx context.Context, actor entity.Actor, id uint, remarks string) (*entity.ChefApplication, error)

	// ReconcileRatings recomputes every chef's rating from the review tables
	// and returns how many stored ratings were corrected.
	ReconcileRatings(ctx context.Context) (int, error)
}

type chefUseCase struct {
	chefRepo   persistent.ChefRepository
	userRepo   persistent.UserRepository
	reviewRepo persistent.ReviewRepository
	uploader   Uploader
	publisher  EventPublisher
	logger     *logger.Logger
}

func NewChefUseCase(
	chefRepo persistent.ChefRepository,
	userRepo persistent.UserRepository,
	reviewRepo persistent.ReviewRepository,
	uploader Uploader,
	publisher EventPublisher,
	logger *logger.Logger,
) ChefUseCase {
	return &chefUseCase{
		chefRepo:   chefRepo,
		userRepo:   userRepo,
		reviewRepo: reviewRepo,
		uploader:   uploader,
		publisher:  publisher,
		logger:     logger,
	}
}

func (uc *chefUseCase) List(ctx context.Context, page entity.Page) ([]*entity.Chef, int64, error) {
	return uc.chefRepo.List(ctx, page)
}

func (uc *chefUseCase) Get(ctx context.Context, id uint) (*entity.Chef, error) {
	return uc.chefRepo.GetByID(ctx, id)
}

func (uc *chefUseCase) GetByUser(ctx context.Context, userID uint) (*entity.Chef, error) {
	return uc.chefRepo.GetByUserID(ctx, userID)
}

func (uc *chefUseCase) Apply(ctx context.Context, actor entity.Actor, profile entity.ChefProfile) (*entity.ChefApplication, error) {
	if profile.YearsOfExperience < 0 {
		return nil, entity.Invalid("yearsOfExperience cannot be negative")
	}
	profile.SpecialtyCuisine = strings.TrimSpace(profile.SpecialtyCuisine)

	app := &entity.ChefApplication{UserID: actor.UserID, ChefProfile: profile}
	if err := uc.chefRepo.CreateApplication(ctx, app); err != nil {
		return nil, err
	}

	uc.logger.Info("Chef application submitted: id=%d user=%d", app.ID, app.UserID)
	return app, nil
}

func (uc *chefUseCase) MyApplications(ctx context.Context, actor entity.Actor) ([]*entity.ChefApplication, error) {
	return uc.chefRepo.ListApplicationsByUser(ctx, actor.UserID)
}

func (uc *chefUseCase) UploadCertificate(ctx context.Context, actor entity.Actor, r io.Reader) (string, error) {
	return uc.uploader.Upload(ctx, FolderCertificates, r)
}

func requireAdmin(actor entity.Actor) error {
	if !actor.IsAdmin() {
		return entity.Forbidden("admin role required")
	}
	return nil
}

func (uc *chefUseCase) ListApplications(ctx context.Context, actor entity.Actor, status entity.ApplicationStatus, page entity.Page) ([]*entity.ChefApplication, int64, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, 0, err
	}
	if status != "" && !status.Valid() {
		return nil, 0, entity.Invalid("status must be one of Pending, Approved, Rejected")
	}
	return uc.chefRepo.ListApplications(ctx, status, page)
}

func (uc *chefUseCase) GetApplication(ctx context.Context, actor entity.Actor, id uint) (*entity.ChefApplication, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return uc.chefRepo.GetApplication(ctx, id)
}

func (uc *chefUseCase) Approve(ctx context.Context, actor entity.Actor, id uint, remarks string) (*entity.ChefApplication, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	app, chef, err := uc.chefRepo.Approve(ctx, id, strings.TrimSpace(remarks), time.Now())
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Chef application approved: id=%d chef=%d by=%d", app.ID, chef.ID, actor.UserID)
	uc.notifyReviewed(ctx, app)
	return app, nil
}

func (uc *chefUseCase) Reject(ctx context.Context, actor entity.Actor, id uint, remarks string) (*entity.ChefApplication, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	app, err := uc.chefRepo.Reject(ctx, id, strings.TrimSpace(remarks), time.Now())
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Chef application rejected: id=%d by=%d", app.ID, actor.UserID)
	uc.notifyReviewed(ctx, app)
	return app, nil
}

func (uc *chefUseCase) notifyReviewed(ctx context.Context, app *entity.ChefApplication) {
	user, err := uc.userRepo.GetByID(ctx, app.UserID)
	if err != nil {
		uc.logger.Error("Failed to load applicant %d for notification: %v", app.UserID, err)
		return
	}

	reviewedAt := time.Now()
	if app.DateReviewed != nil {
		reviewedAt = *app.DateReviewed
	}
	publishEvent(ctx, uc.publisher, uc.logger, queue.RoutingChefApplicationReviewed, queue.ChefApplicationReviewedEvent{
		ApplicationID: app.ID,
		UserID:        user.ID,
		FullName:      user.FullName,
		Email:         user.Email,
		Status:        string(app.Status),
		AdminRemarks:  app.AdminRemarks,
		ReviewedAt:    reviewedAt,
	})
}

func (uc *chefUseCase) ReconcileRatings(ctx context.Context) (int, error) {
	n, err := uc.reviewRepo.ReconcileChefRatings(ctx)
	if err != nil {
		return n, err
	}
	uc.logger.Info("Chef ratings reconciled: %d corrected", n)
	return n, nil
}
