package persistent

import (
	"context"
	"time"

	"culinary-hub/internal/entity"
	"culinary-hub/internal/model"

	"gorm.io/gorm"
)

type ChefRepository interface {
	List(ctx context.Context, page entity.Page) ([]*entity.Chef, int64, error)
	GetByID(ctx context.Context, id uint) (*entity.Chef, error)
	GetByUserID(ctx context.Context, userID uint) (*entity.Chef, error)

	CreateApplication(ctx context.Context, app *entity.ChefApplication) error
	ListApplicationsByUser(ctx context.Context, userID uint) ([]*entity.ChefApplication, error)
	ListApplications(ctx context.Context, status entity.ApplicationStatus, page entity.Page) ([]*entity.ChefApplication, int64, error)
	GetApplication(ctx context.Context, id uint) (*entity.ChefApplication, error)
	Approve(ctx context.Context, id uint, remarks string, at time.Time) (*entity.ChefApplication, *entity.Chef, error)
	Reject(ctx context.Context, id uint, remarks string, at time.Time) (*entity.ChefApplication, error)
}

type chefRepository struct {
	db *gorm.DB
}

func NewChefRepository(db *gorm.DB) ChefRepository {
	return &chefRepository{db: db}
}

func (r *chefRepository) List(ctx context.Context, page entity.Page) ([]*entity.Chef, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.ChefModel{}).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.ChefModel
	if err := query.Scopes(withAuthor("User"), paginate(page)).
		Order("rating DESC").Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	chefs := make([]*entity.Chef, len(rows))
	for i := range rows {
		chefs[i] = ToChefEntity(&rows[i])
	}
	return chefs, total, nil
}

func (r *chefRepository) GetByID(ctx context.Context, id uint) (*entity.Chef, error) {
	var row model.ChefModel
	if err := r.db.WithContext(ctx).Scopes(withAuthor("User")).First(&row, id).Error; err != nil {
		return nil, readError(err, "chef")
	}
	return ToChefEntity(&row), nil
}

func (r *chefRepository) GetByUserID(ctx context.Context, userID uint) (*entity.Chef, error) {
	var row model.ChefModel
	if err := r.db.WithContext(ctx).Scopes(withAuthor("User")).Where("user_id = ?", userID).First(&row).Error; err != nil {
		return nil, readError(err, "chef")
	}
	return ToChefEntity(&row), nil
}

// CreateApplication relies on the partial unique index to reject a second
// Pending application from the same user.
func (r *chefRepository) CreateApplication(ctx context.Context, app *entity.ChefApplication) error {
	row := ToApplicationModel(app)
	row.Status = string(entity.StatusPending)
	row.AdminRemarks = ""
	row.DateReviewed = nil
	row.DateApplied = time.Now()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var chefs int64
		if err := tx.Model(&model.ChefModel{}).Where("user_id = ?", row.UserID).Count(&chefs).Error; err != nil {
			return err
		}
		if chefs > 0 {
			return entity.Conflict("user is already a chef")
		}
		if err := tx.Create(row).Error; err != nil {
			if isDuplicate(err) {
				return entity.Conflict("a pending application already exists")
			}
			return writeError(err, "application", "user")
		}
		return nil
	})
	if err != nil {
		return err
	}

	fresh, err := r.GetApplication(ctx, row.ID)
	if err != nil {
		return err
	}
	*app = *fresh
	return nil
}

func (r *chefRepository) ListApplicationsByUser(ctx context.Context, userID uint) ([]*entity.ChefApplication, error) {
	var rows []model.ChefApplicationModel
	if err := r.db.WithContext(ctx).Scopes(withAuthor("User")).
		Where("user_id = ?", userID).
		Order("date_applied DESC").Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toApplications(rows), nil
}

func (r *chefRepository) ListApplications(ctx context.Context, status entity.ApplicationStatus, page entity.Page) ([]*entity.ChefApplication, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.ChefApplicationModel{})
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.ChefApplicationModel
	if err := query.Scopes(withAuthor("User"), paginate(page)).
		Order("date_applied ASC").Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toApplications(rows), total, nil
}

func toApplications(rows []model.ChefApplicationModel) []*entity.ChefApplication {
	apps := make([]*entity.ChefApplication, len(rows))
	for i := range rows {
		apps[i] = ToApplicationEntity(&rows[i])
	}
	return apps
}

func (r *chefRepository) GetApplication(ctx context.Context, id uint) (*entity.ChefApplication, error) {
	var row model.ChefApplicationModel
	if err := r.db.WithContext(ctx).Scopes(withAuthor("User")).First(&row, id).Error; err != nil {
		return nil, readError(err, "application")
	}
	return ToApplicationEntity(&row), nil
}

// Approve flips a Pending application, creates the chef profile and promotes
// the applicant in one transaction. The status guard in the UPDATE makes a
// concurrent second review affect zero rows.
func (r *chefRepository) Approve(ctx context.Context, id uint, remarks string, at time.Time) (*entity.ChefApplication, *entity.Chef, error) {
	var chefID uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := markReviewed(tx, id, entity.StatusApproved, remarks, at); err != nil {
			return err
		}

		var app model.ChefApplicationModel
		if err := tx.First(&app, id).Error; err != nil {
			return readError(err, "application")
		}

		chef := &model.ChefModel{
			UserID:             app.UserID,
			SpecialtyCuisine:   app.SpecialtyCuisine,
			YearsOfExperience:  app.YearsOfExperience,
			CertificationName:  app.CertificationName,
			CertificationImage: app.CertificationImage,
			PortfolioLink:      app.PortfolioLink,
			Biography:          app.Biography,
			ApprovedDate:       at,
		}
		if err := tx.Create(chef).Error; err != nil {
			if isDuplicate(err) {
				return entity.Conflict("user is already a chef")
			}
			return writeError(err, "chef", "user")
		}
		chefID = chef.ID

		// admins keep their role; everyone else becomes a chef
		if err := tx.Model(&model.UserModel{}).
			Where("id = ? AND role <> ?", app.UserID, string(entity.RoleAdmin)).
			Update("role", string(entity.RoleChef)).Error; err != nil {
			return err
		}
		// the new chef may already own reviewed content
		return refreshChefRating(tx, app.UserID)
	})
	if err != nil {
		return nil, nil, err
	}

	app, err := r.GetApplication(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	chef, err := r.GetByID(ctx, chefID)
	if err != nil {
		return nil, nil, err
	}
	return app, chef, nil
}

func (r *chefRepository) Reject(ctx context.Context, id uint, remarks string, at time.Time) (*entity.ChefApplication, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return markReviewed(tx, id, entity.StatusRejected, remarks, at)
	})
	if err != nil {
		return nil, err
	}
	return r.GetApplication(ctx, id)
}

func markReviewed(tx *gorm.DB, id uint, status entity.ApplicationStatus, remarks string, at time.Time) error {
	result := tx.Model(&model.ChefApplicationModel{}).
		Where("id = ? AND status = ?", id, string(entity.StatusPending)).
		Updates(map[string]interface{}{
			"status":        string(status),
			"admin_remarks": remarks,
			"date_reviewed": at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var current model.ChefApplicationModel
	if err := tx.Select("id", "status").First(&current, id).Error; err != nil {
		return readError(err, "application")
	}
	return entity.Conflict("application was already %s", current.Status)
}
