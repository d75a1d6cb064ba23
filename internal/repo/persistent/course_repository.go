package persistent

import (
	"context"
	"time"

	"culinary-hub/internal/entity"
	"culinary-hub/internal/model"

	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(ctx context.Context, course *entity.Course) error
	GetByID(ctx context.Context, id uint) (*entity.Course, error)
	List(ctx context.Context, page entity.Page) ([]*entity.Course, int64, error)
	ListByChef(ctx context.Context, chefID uint, page entity.Page) ([]*entity.Course, int64, error)
	Update(ctx context.Context, course *entity.Course) error
	SetImage(ctx context.Context, id uint, url string) error
	Delete(ctx context.Context, id uint) error

	ListSections(ctx context.Context, courseID uint) ([]*entity.CourseSection, error)
	GetSection(ctx context.Context, courseID, sectionID uint) (*entity.CourseSection, error)
	CreateSection(ctx context.Context, section *entity.CourseSection) error
	UpdateSection(ctx context.Context, section *entity.CourseSection) error
	DeleteSection(ctx context.Context, courseID, sectionID uint) error

	ListQuestions(ctx context.Context, courseID uint) ([]*entity.QuizQuestion, error)
	GetQuestion(ctx context.Context, courseID, questionID uint) (*entity.QuizQuestion, error)
	CreateQuestion(ctx context.Context, question *entity.QuizQuestion) error
	UpdateQuestion(ctx context.Context, question *entity.QuizQuestion) error
	DeleteQuestion(ctx context.Context, courseID, questionID uint) error
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *entity.Course) error {
	courseModel := ToCourseModel(course)
	if err := r.db.WithContext(ctx).Create(courseModel).Error; err != nil {
		return writeError(err, "course", "chef")
	}
	return r.reload(ctx, courseModel.ID, course)
}

func (r *courseRepository) reload(ctx context.Context, id uint, dst *entity.Course) error {
	fresh, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	*dst = *fresh
	return nil
}

func (r *courseRepository) GetByID(ctx context.Context, id uint) (*entity.Course, error) {
	var courseModel model.CourseModel
	if err := r.db.WithContext(ctx).Scopes(withAuthor("Chef")).First(&courseModel, id).Error; err != nil {
		return nil, readError(err, "course")
	}
	return ToCourseEntity(&courseModel), nil
}

func (r *courseRepository) List(ctx context.Context, page entity.Page) ([]*entity.Course, int64, error) {
	return r.list(r.db.WithContext(ctx).Model(&model.CourseModel{}), page)
}

func (r *courseRepository) ListByChef(ctx context.Context, chefID uint, page entity.Page) ([]*entity.Course, int64, error) {
	return r.list(r.db.WithContext(ctx).Model(&model.CourseModel{}).Where("chef_id = ?", chefID), page)
}

func (r *courseRepository) list(query *gorm.DB, page entity.Page) ([]*entity.Course, int64, error) {
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courseModels []model.CourseModel
	if err := query.Scopes(withAuthor("Chef"), paginate(page)).
		Order("created_at DESC").Order("id DESC").
		Find(&courseModels).Error; err != nil {
		return nil, 0, err
	}

	courses := make([]*entity.Course, len(courseModels))
	for i := range courseModels {
		courses[i] = ToCourseEntity(&courseModels[i])
	}
	return courses, total, nil
}

func (r *courseRepository) Update(ctx context.Context, course *entity.Course) error {
	result := r.db.WithContext(ctx).Model(&model.CourseModel{}).Where("id = ?", course.ID).Updates(map[string]interface{}{
		"course_name":    course.CourseName,
		"ingredients":    course.Ingredients,
		"difficulty":     course.Difficulty,
		"estimated_time": course.EstimatedTime,
		"description":    course.Description,
		"updated_at":     time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.NotFound("course")
	}
	return r.reload(ctx, course.ID, course)
}

func (r *courseRepository) SetImage(ctx context.Context, id uint, url string) error {
	result := r.db.WithContext(ctx).Model(&model.CourseModel{}).Where("id = ?", id).Update("course_image", url)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.NotFound("course")
	}
	return nil
}

// Delete cascades to sections, questions, reviews and enrollments, then
// refreshes the chef's aggregate since their reviews went with it.
func (r *courseRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var courseModel model.CourseModel
		if err := tx.Select("id", "chef_id").First(&courseModel, id).Error; err != nil {
			return readError(err, "course")
		}
		if err := tx.Delete(&model.CourseModel{}, id).Error; err != nil {
			return deleteError(err, "course")
		}
		return refreshChefRating(tx, courseModel.ChefID)
	})
}

func (r *courseRepository) ListSections(ctx context.Context, courseID uint) ([]*entity.CourseSection, error) {
	var rows []model.CourseSectionModel
	if err := r.db.WithContext(ctx).Where("course_id = ?", courseID).
		Order("section_order ASC").Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	sections := make([]*entity.CourseSection, len(rows))
	for i := range rows {
		sections[i] = ToSectionEntity(&rows[i])
	}
	return sections, nil
}

func (r *courseRepository) GetSection(ctx context.Context, courseID, sectionID uint) (*entity.CourseSection, error) {
	var row model.CourseSectionModel
	if err := r.db.WithContext(ctx).Where("id = ? AND course_id = ?", sectionID, courseID).First(&row).Error; err != nil {
		return nil, readError(err, "section")
	}
	return ToSectionEntity(&row), nil
}

func (r *courseRepository) CreateSection(ctx context.Context, section *entity.CourseSection) error {
	row := ToSectionModel(section)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return writeError(err, "section", "course")
	}
	*section = *ToSectionEntity(row)
	return nil
}

func (r *courseRepository) UpdateSection(ctx context.Context, section *entity.CourseSection) error {
	result := r.db.WithContext(ctx).Model(&model.CourseSectionModel{}).
		Where("id = ? AND course_id = ?", section.ID, section.CourseID).
		Updates(map[string]interface{}{
			"section_title": section.SectionTitle,
			"content_type":  string(section.ContentType),
			"content":       section.Content,
			"section_order": section.SectionOrder,
		})
	if result.Error != nil {
		return writeError(result.Error, "section", "course")
	}
	if result.RowsAffected == 0 {
		return entity.NotFound("section")
	}
	return nil
}

func (r *courseRepository) DeleteSection(ctx context.Context, courseID, sectionID uint) error {
	result := r.db.WithContext(ctx).Where("id = ? AND course_id = ?", sectionID, courseID).Delete(&model.CourseSectionModel{})
	if result.Error != nil {
		return deleteError(result.Error, "section")
	}
	if result.RowsAffected == 0 {
		return entity.NotFound("section")
	}
	return nil
}

func (r *courseRepository) ListQuestions(ctx context.Context, courseID uint) ([]*entity.QuizQuestion, error) {
	var rows []model.QuizQuestionModel
	if err := r.db.WithContext(ctx).Where("course_id = ?", courseID).
		Order("question_order ASC").Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	questions := make([]*entity.QuizQuestion, len(rows))
	for i := range rows {
		questions[i] = ToQuestionEntity(&rows[i])
	}
	return questions, nil
}

func (r *courseRepository) GetQuestion(ctx context.Context, courseID, questionID uint) (*entity.QuizQuestion, error) {
	var row model.QuizQuestionModel
	if err := r.db.WithContext(ctx).Where("id = ? AND course_id = ?", questionID, courseID).First(&row).Error; err != nil {
		return nil, readError(err, "quiz question")
	}
	return ToQuestionEntity(&row), nil
}

func (r *courseRepository) CreateQuestion(ctx context.Context, question *entity.QuizQuestion) error {
	row := ToQuestionModel(question)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return writeError(err, "quiz question", "course")
	}
	*question = *ToQuestionEntity(row)
	return nil
}

func (r *courseRepository) UpdateQuestion(ctx context.Context, question *entity.QuizQuestion) error {
	result := r.db.WithContext(ctx).Model(&model.QuizQuestionModel{}).
		Where("id = ? AND course_id = ?", question.ID, question.CourseID).
		Updates(map[string]interface{}{
			"question":       question.Question,
			"option_a":       question.OptionA,
			"option_b":       question.OptionB,
			"option_c":       question.OptionC,
			"option_d":       question.OptionD,
			"correct_answer": question.CorrectAnswer,
			"question_order": question.QuestionOrder,
		})
	if result.Error != nil {
		return writeError(result.Error, "quiz question", "course")
	}
	if result.RowsAffected == 0 {
		return entity.NotFound("quiz question")
	}
	return nil
}

func (r *courseRepository) DeleteQuestion(ctx context.Context, courseID, questionID uint) error {
	result := r.db.WithContext(ctx).Where("id = ? AND course_id = ?", questionID, courseID).Delete(&model.QuizQuestionModel{})
	if result.Error != nil {
		return deleteError(result.Error, "quiz question")
	}
	if result.RowsAffected == 0 {
		return entity.NotFound("quiz question")
	}
	return nil
}
