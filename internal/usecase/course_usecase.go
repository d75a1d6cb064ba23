package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"culinary-hub/internal/entity"
	"culinary-hub/internal/repo/persistent"
	"culinary-hub/pkg/cache"
	"culinary-hub/pkg/logger"
)

const courseDetailTTL = 10 * time.Minute

func courseDetailKey(id uint) string {
	return fmt.Sprintf("course:detail:%d", id)
}

type CourseInput struct {
	CourseName    string
	Ingredients   string
	Difficulty    string
	EstimatedTime string
	Description   string
}

type SectionInput struct {
	SectionTitle string
	ContentType  entity.ContentType
	Content      string
	SectionOrder int
}

type QuestionInput struct {
	Question      string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectAnswer string
	QuestionOrder int
}

type CourseUseCase interface {
	List(ctx context.Context, page entity.Page) ([]*entity.Course, int64, error)
	ListByChef(ctx context.Context, chefID uint, page entity.Page) ([]*entity.Course, int64, error)
	Create(ctx context.Context, actor entity.Actor, input CourseInput) (*entity.Course, error)
	Detail(ctx context.Context, id uint) (*entity.CourseDetail, error)
	Update(ctx context.Context, actor entity.Actor, id uint, input CourseInput) (*entity.Course, error)
	Delete(ctx context.Context, actor entity.Actor, id uint) error
	UploadImage(ctx context.Context, actor entity.Actor, id uint, r io.Reader) (string, error)

	ListSections(ctx context.Context, courseID uint) ([]*entity.CourseSection, error)
	CreateSection(ctx context.Context, actor entity.Actor, courseID uint, input SectionInput) (*entity.CourseSection, error)
	UpdateSection(ctx context.Context, actor entity.Actor, courseID, sectionID uint, input SectionInput) (*entity.CourseSection, error)
	DeleteSection(ctx context.Context, actor entity.Actor, courseID, sectionID uint) error

	ListQuestions(ctx context.Context, courseID uint) ([]*entity.QuizQuestion, error)
	CreateQuestion(ctx context.Context, actor entity.Actor, courseID uint, input QuestionInput) (*entity.QuizQuestion, error)
	UpdateQuestion(ctx context.Context, actor entity.Actor, courseID, questionID uint, input QuestionInput) (*entity.QuizQuestion, error)
	DeleteQuestion(ctx context.Context, actor entity.Actor, courseID, questionID uint) error
}

type courseUseCase struct {
	courseRepo persistent.CourseRepository
	reviewRepo persistent.ReviewRepository
	cache      cache.Store
	uploader   Uploader
	logger     *logger.Logger
}

func NewCourseUseCase(
	courseRepo persistent.CourseRepository,
	reviewRepo persistent.ReviewRepository,
	store cache.Store,
	uploader Uploader,
	logger *logger.Logger,
) CourseUseCase {
	if store == nil {
		store = cache.NopStore{}
	}
	return &courseUseCase{
		courseRepo: courseRepo,
		reviewRepo: reviewRepo,
		cache:      store,
		uploader:   uploader,
		logger:     logger,
	}
}

func (uc *courseUseCase) List(ctx context.Context, page entity.Page) ([]*entity.Course, int64, error) {
	return uc.courseRepo.List(ctx, page)
}

func (uc *courseUseCase) ListByChef(ctx context.Context, chefID uint, page entity.Page) ([]*entity.Course, int64, error) {
	return uc.courseRepo.ListByChef(ctx, chefID, page)
}

func (uc *courseUseCase) Create(ctx context.Context, actor entity.Actor, input CourseInput) (*entity.Course, error) {
	if !actor.CanPublish() {
		return nil, entity.Forbidden("only chefs can create courses")
	}

	course := &entity.Course{ChefID: actor.UserID}
	applyCourseInput(course, input)
	if err := uc.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	uc.logger.Info("Course created: id=%d chef=%d", course.ID, course.ChefID)
	return course, nil
}

func applyCourseInput(course *entity.Course, input CourseInput) {
	course.CourseName = strings.TrimSpace(input.CourseName)
	course.Ingredients = input.Ingredients
	course.Difficulty = input.Difficulty
	course.EstimatedTime = input.EstimatedTime
	course.Description = input.Description
}

// Detail serves from cache when possible. Every write below drops the entry.
func (uc *courseUseCase) Detail(ctx context.Context, id uint) (*entity.CourseDetail, error) {
	var cached entity.CourseDetail
	err := uc.cache.Get(ctx, courseDetailKey(id), &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		uc.logger.Warn("Course cache read failed for %d: %v", id, err)
	}

	course, err := uc.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sections, err := uc.courseRepo.ListSections(ctx, id)
	if err != nil {
		return nil, err
	}
	questions, err := uc.courseRepo.ListQuestions(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews, err := uc.reviewRepo.ListCourseReviews(ctx, id)
	if err != nil {
		return nil, err
	}
	rating, err := uc.reviewRepo.CourseRating(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &entity.CourseDetail{
		Course:    course,
		Sections:  sections,
		Questions: questions,
		Reviews:   reviews,
		Rating:    rating,
	}
	if err := uc.cache.Set(ctx, courseDetailKey(id), detail, courseDetailTTL); err != nil {
		uc.logger.Warn("Course cache write failed for %d: %v", id, err)
	}
	return detail, nil
}

func (uc *courseUseCase) invalidate(ctx context.Context, id uint) {
	if err := uc.cache.Delete(ctx, courseDetailKey(id)); err != nil {
		uc.logger.Warn("Course cache invalidation failed for %d: %v", id, err)
	}
}

// ownedCourse loads the course and checks the actor may change it.
func (uc *courseUseCase) ownedCourse(ctx context.Context, actor entity.Actor, id uint) (*entity.Course, error) {
	course, err := uc.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(course.ChefID) {
		return nil, entity.Forbidden("you can only manage your own courses")
	}
	return course, nil
}

func (uc *courseUseCase) Update(ctx context.Context, actor entity.Actor, id uint, input CourseInput) (*entity.Course, error) {
	course, err := uc.ownedCourse(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	applyCourseInput(course, input)
	if err := uc.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, id)
	return course, nil
}

func (uc *courseUseCase) Delete(ctx context.Context, actor entity.Actor, id uint) error {
	if _, err := uc.ownedCourse(ctx, actor, id); err != nil {
		return err
	}
	if err := uc.courseRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, id)

	uc.logger.Info("Course deleted: id=%d by=%d", id, actor.UserID)
	return nil
}

func (uc *courseUseCase) UploadImage(ctx context.Context, actor entity.Actor, id uint, r io.Reader) (string, error) {
	if _, err := uc.ownedCourse(ctx, actor, id); err != nil {
		return "", err
	}

	url, err := uc.uploader.Upload(ctx, FolderCourses, r)
	if err != nil {
		return "", err
	}
	if err := uc.courseRepo.SetImage(ctx, id, url); err != nil {
		return "", err
	}
	uc.invalidate(ctx, id)
	return url, nil
}

func (uc *courseUseCase) ListSections(ctx context.Context, courseID uint) ([]*entity.CourseSection, error) {
	if _, err := uc.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return uc.courseRepo.ListSections(ctx, courseID)
}

func validSection(input SectionInput) error {
	if !input.ContentType.Valid() {
		return entity.Invalid("contentType must be one of text, image, video")
	}
	return nil
}

func (uc *courseUseCase) CreateSection(ctx context.Context, actor entity.Actor, courseID uint, input SectionInput) (*entity.CourseSection, error) {
	if err := validSection(input); err != nil {
		return nil, err
	}
	if _, err := uc.ownedCourse(ctx, actor, courseID); err != nil {
		return nil, err
	}

	section := &entity.CourseSection{
		CourseID:     courseID,
		SectionTitle: strings.TrimSpace(input.SectionTitle),
		ContentType:  input.ContentType,
		Content:      input.Content,
		SectionOrder: input.SectionOrder,
	}
	if err := uc.courseRepo.CreateSection(ctx, section); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, courseID)
	return section, nil
}

func (uc *courseUseCase) UpdateSection(ctx context.Context, actor entity.Actor, courseID, sectionID uint, input SectionInput) (*entity.CourseSection, error) {
	if err := validSection(input); err != nil {
		return nil, err
	}
	if _, err := uc.ownedCourse(ctx, actor, courseID); err != nil {
		return nil, err
	}

	section, err := uc.courseRepo.GetSection(ctx, courseID, sectionID)
	if err != nil {
		return nil, err
	}
	section.SectionTitle = strings.TrimSpace(input.SectionTitle)
	section.ContentType = input.ContentType
	section.Content = input.Content
	section.SectionOrder = input.SectionOrder

	if err := uc.courseRepo.UpdateSection(ctx, section); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, courseID)
	return section, nil
}

func (uc *courseUseCase) DeleteSection(ctx context.Context, actor entity.Actor, courseID, sectionID uint) error {
	if _, err := uc.ownedCourse(ctx, actor, courseID); err != nil {
		return err
	}
	if err := uc.courseRepo.DeleteSection(ctx, courseID, sectionID); err != nil {
		return err
	}
	uc.invalidate(ctx, courseID)
	return nil
}

func (uc *courseUseCase) ListQuestions(ctx context.Context, courseID uint) ([]*entity.QuizQuestion, error) {
	if _, err := uc.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return uc.courseRepo.ListQuestions(ctx, courseID)
}

func normalizeAnswer(answer string) (string, error) {
	answer = strings.ToUpper(strings.TrimSpace(answer))
	switch answer {
	case "A", "B", "C", "D":
		return answer, nil
	}
	return "", entity.Invalid("correctAnswer must be one of A, B, C, D")
}

func applyQuestionInput(q *entity.QuizQuestion, input QuestionInput, answer string) {
	q.Question = strings.TrimSpace(input.Question)
	q.OptionA = input.OptionA
	q.OptionB = input.OptionB
	q.OptionC = input.OptionC
	q.OptionD = input.OptionD
	q.CorrectAnswer = answer
	q.QuestionOrder = input.QuestionOrder
}

func (uc *courseUseCase) CreateQuestion(ctx context.Context, actor entity.Actor, courseID uint, input QuestionInput) (*entity.QuizQuestion, error) {
	answer, err := normalizeAnswer(input.CorrectAnswer)
	if err != nil {
		return nil, err
	}
	if _, err := uc.ownedCourse(ctx, actor, courseID); err != nil {
		return nil, err
	}

	question := &entity.QuizQuestion{CourseID: courseID}
	applyQuestionInput(question, input, answer)
	if err := uc.courseRepo.CreateQuestion(ctx, question); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, courseID)
	return question, nil
}

func (uc *courseUseCase) UpdateQuestion(ctx context.Context, actor entity.Actor, courseID, questionID uint, input QuestionInput) (*entity.QuizQuestion, error) {
	answer, err := normalizeAnswer(input.CorrectAnswer)
	if err != nil {
		return nil, err
	}
	if _, err := uc.ownedCourse(ctx, actor, courseID); err != nil {
		return nil, err
	}

	question, err := uc.courseRepo.GetQuestion(ctx, courseID, questionID)
	if err != nil {
		return nil, err
	}
	applyQuestionInput(question, input, answer)
	if err := uc.courseRepo.UpdateQuestion(ctx, question); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, courseID)
	return question, nil
}

func (uc *courseUseCase) DeleteQuestion(ctx context.Context, actor entity.Actor, courseID, questionID uint) error {
	if _, err := uc.ownedCourse(ctx, actor, courseID); err != nil {
		return err
	}
	if err := uc.courseRepo.DeleteQuestion(ctx, courseID, questionID); err != nil {
		return err
	}
	uc.invalidate(ctx, courseID)
	return nil
}
