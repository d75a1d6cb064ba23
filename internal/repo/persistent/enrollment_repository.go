package persistent

import (
	"context"
	"time"

	"culinary-hub/internal/entity"
	"culinary-hub/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *entity.Enrollment) error
	Get(ctx context.Context, userID, courseID uint) (*entity.Enrollment, error)
	ListByUser(ctx context.Context, userID uint) ([]*entity.Enrollment, error)
	// UpdateProgress stores the new value and reports whether this call is
	// the one that completed the course.
	UpdateProgress(ctx context.Context, userID, courseID uint, progress entity.Progress, at time.Time) (*entity.Enrollment, bool, error)
	Delete(ctx context.Context, userID, courseID uint) error
}

type enrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *entity.Enrollment) error {
	row := &model.EnrollmentModel{
		UserID:     enrollment.UserID,
		CourseID:   enrollment.CourseID,
		EnrolledAt: time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if isDuplicate(err) {
			return entity.Conflict("already enrolled in this course")
		}
		return writeError(err, "enrollment", "course")
	}

	fresh, err := r.Get(ctx, row.UserID, row.CourseID)
	if err != nil {
		return err
	}
	*enrollment = *fresh
	return nil
}

func (r *enrollmentRepository) Get(ctx context.Context, userID, courseID uint) (*entity.Enrollment, error) {
	var row model.EnrollmentModel
	if err := r.db.WithContext(ctx).Preload("Course").
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&row).Error; err != nil {
		return nil, readError(err, "enrollment")
	}
	return ToEnrollmentEntity(&row), nil
}

func (r *enrollmentRepository) ListByUser(ctx context.Context, userID uint) ([]*entity.Enrollment, error) {
	var rows []model.EnrollmentModel
	if err := r.db.WithContext(ctx).Preload("Course").
		Where("user_id = ?", userID).
		Order("enrolled_at DESC").Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	enrollments := make([]*entity.Enrollment, len(rows))
	for i := range rows {
		enrollments[i] = ToEnrollmentEntity(&rows[i])
	}
	return enrollments, nil
}

// Completion is sticky: lowering progress afterwards keeps the course
// completed and its completion time.
func (r *enrollmentRepository) UpdateProgress(ctx context.Context, userID, courseID uint, progress entity.Progress, at time.Time) (*entity.Enrollment, bool, error) {
	completedNow := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.EnrollmentModel{}).
			Where("user_id = ? AND course_id = ?", userID, courseID).
			Update("progress", progress.Float64())
		if result.Error != nil {
			return writeError(result.Error, "enrollment", "course")
		}
		if result.RowsAffected == 0 {
			return entity.NotFound("enrollment")
		}

		if !progress.Complete() {
			return nil
		}
		result = tx.Model(&model.EnrollmentModel{}).
			Where("user_id = ? AND course_id = ? AND completed = ?", userID, courseID, false).
			Updates(map[string]interface{}{"completed": true, "completed_at": at})
		if result.Error != nil {
			return result.Error
		}
		completedNow = result.RowsAffected == 1
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	enrollment, err := r.Get(ctx, userID, courseID)
	if err != nil {
		return nil, false, err
	}
	return enrollment, completedNow, nil
}

func (r *enrollmentRepository) Delete(ctx context.Context, userID, courseID uint) error {
	result := r.db.WithContext(ctx).Where("user_id = ? AND course_id = ?", userID, courseID).Delete(&model.EnrollmentModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.NotFound("enrollment")
	}
	return nil
}
