package usecase

import (
	"context"
	"testing"

	"culinary-hub/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseUseCase_OnlyChefsPublish(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	uc := NewCourseUseCase(r.courses, r.reviews, nil, &fakeUploader{}, testLogger())

	user := seedUser(t, r, "user", entity.RoleUser)
	chef := seedUser(t, r, "chef", entity.RoleChef)
	otherChef := seedUser(t, r, "other", entity.RoleChef)

	_, err := uc.Create(ctx, user, CourseInput{CourseName: "Nope"})
	assert.ErrorIs(t, err, entity.ErrForbidden)

	course, err := uc.Create(ctx, chef, CourseInput{CourseName: " Pasta 101 ", Difficulty: "Beginner"})
	require.NoError(t, err)
	assert.Equal(t, "Pasta 101", course.CourseName)
	assert.Equal(t, chef.UserID, course.ChefID)

	_, err = uc.Update(ctx, otherChef, course.ID, CourseInput{CourseName: "Mine now"})
	assert.ErrorIs(t, err, entity.ErrForbidden)
	assert.ErrorIs(t, uc.Delete(ctx, otherChef, course.ID), entity.ErrForbidden)

	list, total, err := uc.ListByChef(ctx, chef.UserID, entity.NewPage(0, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)
}

func TestCourseUseCase_DetailIsCachedAndInvalidated(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	store := newMemoryStore()
	courses := NewCourseUseCase(r.courses, r.reviews, store, &fakeUploader{}, testLogger())
	reviews := NewReviewUseCase(r.reviews, r.courses, r.recipes, store, testLogger())

	chef := seedUser(t, r, "chef", entity.RoleChef)
	student := seedUser(t, r, "student", entity.RoleUser)

	course, err := courses.Create(ctx, chef, CourseInput{CourseName: "Bread"})
	require.NoError(t, err)

	for _, order := range []int{2, 1} {
		_, err := courses.CreateSection(ctx, chef, course.ID, SectionInput{SectionTitle: "Step", ContentType: entity.ContentText, SectionOrder: order})
		require.NoError(t, err)
	}

	detail, err := courses.Detail(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, detail.Sections, 2)
	assert.Equal(t, 1, detail.Sections[0].SectionOrder)
	assert.Contains(t, store.values, courseDetailKey(course.ID))

	_, err = reviews.CreateCourseReview(ctx, student, course.ID, 4, "tasty")
	require.NoError(t, err)
	assert.NotContains(t, store.values, courseDetailKey(course.ID))

	detail, err = courses.Detail(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.Rating.Count)
	assert.InDelta(t, 4.0, detail.Rating.Average, 0.001)
	require.Len(t, detail.Reviews, 1)

	cached, err := courses.Detail(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, detail.Course.CourseName, cached.Course.CourseName)
	assert.Len(t, cached.Reviews, 1)
}

func TestCourseUseCase_DetailDroppedWhenChefDeleted(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	store := newMemoryStore()
	courses := NewCourseUseCase(r.courses, r.reviews, store, &fakeUploader{}, testLogger())
	users := NewUserUseCase(r.users, store, &fakeUploader{}, testLogger())

	chef := seedUser(t, r, "chef", entity.RoleChef)
	course, err := courses.Create(ctx, chef, CourseInput{CourseName: "Pastry"})
	require.NoError(t, err)

	_, err = courses.Detail(ctx, course.ID)
	require.NoError(t, err)
	require.Contains(t, store.values, courseDetailKey(course.ID))

	require.NoError(t, users.Delete(ctx, chef, chef.UserID))
	assert.NotContains(t, store.values, courseDetailKey(course.ID))

	_, err = courses.Detail(ctx, course.ID)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestCourseUseCase_SectionAndQuizValidation(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	uc := NewCourseUseCase(r.courses, r.reviews, nil, &fakeUploader{}, testLogger())

	chef := seedUser(t, r, "chef", entity.RoleChef)
	course, err := uc.Create(ctx, chef, CourseInput{CourseName: "Sauces"})
	require.NoError(t, err)

	_, err = uc.CreateSection(ctx, chef, course.ID, SectionInput{SectionTitle: "Listen", ContentType: "audio"})
	assert.ErrorIs(t, err, entity.ErrValidation)

	_, err = uc.CreateQuestion(ctx, chef, course.ID, QuestionInput{Question: "Mother sauces?", CorrectAnswer: "E"})
	assert.ErrorIs(t, err, entity.ErrValidation)

	question, err := uc.CreateQuestion(ctx, chef, course.ID, QuestionInput{
		Question: "Which is a mother sauce?", OptionA: "Ketchup", OptionB: "Velouté",
		OptionC: "Mayo", OptionD: "Ranch", CorrectAnswer: " b ", QuestionOrder: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "B", question.CorrectAnswer)

	updated, err := uc.UpdateQuestion(ctx, chef, course.ID, question.ID, QuestionInput{
		Question: "Which is a mother sauce?", OptionA: "Béchamel", OptionB: "Ketchup",
		OptionC: "Mayo", OptionD: "Ranch", CorrectAnswer: "A", QuestionOrder: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "A", updated.CorrectAnswer)

	require.NoError(t, uc.DeleteQuestion(ctx, chef, course.ID, question.ID))
	assert.ErrorIs(t, uc.DeleteQuestion(ctx, chef, course.ID, question.ID), entity.ErrNotFound)

	_, err = uc.ListSections(ctx, course.ID+10)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestReviewUseCase_Rules(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	courses := NewCourseUseCase(r.courses, r.reviews, nil, &fakeUploader{}, testLogger())
	reviews := NewReviewUseCase(r.reviews, r.courses, r.recipes, nil, testLogger())

	chef := seedUser(t, r, "chef", entity.RoleChef)
	alice := seedUser(t, r, "alice", entity.RoleUser)
	bob := seedUser(t, r, "bob", entity.RoleUser)
	course, err := courses.Create(ctx, chef, CourseInput{CourseName: "Grill"})
	require.NoError(t, err)

	_, err = reviews.CreateCourseReview(ctx, alice, course.ID, 6, "")
	assert.ErrorIs(t, err, entity.ErrValidation)

	review, err := reviews.CreateCourseReview(ctx, alice, course.ID, 5, "great")
	require.NoError(t, err)
	assert.Equal(t, "Test alice", review.ReviewerName)

	_, err = reviews.CreateCourseReview(ctx, alice, course.ID, 4, "again")
	assert.ErrorIs(t, err, entity.ErrConflict)

	_, err = reviews.UpdateCourseReview(ctx, bob, review.ID, 1, "mine")
	assert.ErrorIs(t, err, entity.ErrForbidden)

	updated, err := reviews.UpdateCourseReview(ctx, alice, review.ID, 3, "meh")
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Rating)

	_, err = reviews.CreateCourseReview(ctx, bob, course.ID+5, 3, "")
	assert.ErrorIs(t, err, entity.ErrNotFound)

	require.NoError(t, reviews.DeleteCourseReview(ctx, alice, review.ID))
	list, err := reviews.ListCourseReviews(ctx, course.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
