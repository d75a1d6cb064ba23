package persistent

import (
	"context"
	"fmt"
	"testing"
	"time"

	"culinary-hub/internal/entity"
	"culinary-hub/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string, role entity.Role) *entity.User {
	t.Helper()
	user := &entity.User{
		FullName:     "Test " + username,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		Role:         role,
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func createPost(t *testing.T, db *gorm.DB, userID uint) *entity.Post {
	t.Helper()
	post := &entity.Post{UserID: userID, Title: "Sourdough notes", Content: "Feed the starter twice a day"}
	require.NoError(t, NewPostRepository(db).Create(context.Background(), post))
	return post
}

func createCourse(t *testing.T, db *gorm.DB, chefID uint) *entity.Course {
	t.Helper()
	course := &entity.Course{ChefID: chefID, CourseName: "Knife Skills", Difficulty: "Beginner"}
	require.NoError(t, NewCourseRepository(db).Create(context.Background(), course))
	return course
}

func count(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Count(&n).Error)
	return n
}

func TestPostRepository_LikeIsUniquePerUser(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewPostRepository(db)

	author := createUser(t, db, "author", entity.RoleUser)
	fan := createUser(t, db, "fan", entity.RoleUser)
	post := createPost(t, db, author.ID)

	require.NoError(t, repo.Like(ctx, fan.ID, post.ID))
	err := repo.Like(ctx, fan.ID, post.ID)
	assert.ErrorIs(t, err, entity.ErrConflict)

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Rating)

	liked, err := repo.IsLiked(ctx, fan.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	require.NoError(t, repo.Unlike(ctx, fan.ID, post.ID))
	assert.ErrorIs(t, repo.Unlike(ctx, fan.ID, post.ID), entity.ErrNotFound)

	got, err = repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Rating)
}

func TestPostRepository_RecordViewOncePerUser(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewPostRepository(db)

	author := createUser(t, db, "author", entity.RoleUser)
	reader := createUser(t, db, "reader", entity.RoleUser)
	post := createPost(t, db, author.ID)

	require.NoError(t, repo.RecordView(ctx, reader.ID, post.ID))
	assert.ErrorIs(t, repo.RecordView(ctx, reader.ID, post.ID), entity.ErrConflict)
	assert.ErrorIs(t, repo.RecordView(ctx, reader.ID, post.ID+100), entity.ErrNotFound)

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Views)
}

func TestCommentRepository_DeleteWithRepliesIsRejected(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	comments := NewCommentRepository(db)

	user := createUser(t, db, "talker", entity.RoleUser)
	post := createPost(t, db, user.ID)

	root := &entity.Comment{PostID: post.ID, UserID: user.ID, Content: "first"}
	require.NoError(t, comments.Create(ctx, root))
	replies := make([]*entity.Comment, 2)
	for i := range replies {
		replies[i] = &entity.Comment{PostID: post.ID, UserID: user.ID, ParentCommentID: &root.ID, Content: fmt.Sprintf("reply %d", i)}
		require.NoError(t, comments.Create(ctx, replies[i]))
	}

	err := comments.Delete(ctx, root.ID)
	assert.ErrorIs(t, err, entity.ErrHasDependents)
	assert.Contains(t, err.Error(), "2 replies")

	for _, reply := range replies {
		require.NoError(t, comments.Delete(ctx, reply.ID))
	}
	require.NoError(t, comments.Delete(ctx, root.ID))

	got, err := NewPostRepository(db).GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Comments)
}

func TestCommentRepository_ParentMustBeOnSamePost(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	comments := NewCommentRepository(db)

	user := createUser(t, db, "talker", entity.RoleUser)
	first := createPost(t, db, user.ID)
	second := createPost(t, db, user.ID)

	root := &entity.Comment{PostID: first.ID, UserID: user.ID, Content: "on first"}
	require.NoError(t, comments.Create(ctx, root))

	stray := &entity.Comment{PostID: second.ID, UserID: user.ID, ParentCommentID: &root.ID, Content: "wrong post"}
	assert.ErrorIs(t, comments.Create(ctx, stray), entity.ErrValidation)
}

func TestCommentRepository_ListThreadBuildsTree(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	comments := NewCommentRepository(db)

	user := createUser(t, db, "talker", entity.RoleUser)
	post := createPost(t, db, user.ID)

	root := &entity.Comment{PostID: post.ID, UserID: user.ID, Content: "root"}
	require.NoError(t, comments.Create(ctx, root))
	reply := &entity.Comment{PostID: post.ID, UserID: user.ID, ParentCommentID: &root.ID, Content: "reply"}
	require.NoError(t, comments.Create(ctx, reply))
	nested := &entity.Comment{PostID: post.ID, UserID: user.ID, ParentCommentID: &reply.ID, Content: "nested"}
	require.NoError(t, comments.Create(ctx, nested))

	rows, err := comments.ListThread(ctx, post.ID, nil, 5, 500)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	tree := entity.BuildCommentTree(rows, nil, 5, 500)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Replies, 1)
	require.Len(t, tree[0].Replies[0].Replies, 1)
	assert.Equal(t, "nested", tree[0].Replies[0].Replies[0].Comment.Content)
}

func TestPostRepository_DeleteRemovesThread(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)

	user := createUser(t, db, "author", entity.RoleUser)
	post := createPost(t, db, user.ID)

	root := &entity.Comment{PostID: post.ID, UserID: user.ID, Content: "root"}
	require.NoError(t, comments.Create(ctx, root))
	reply := &entity.Comment{PostID: post.ID, UserID: user.ID, ParentCommentID: &root.ID, Content: "reply"}
	require.NoError(t, comments.Create(ctx, reply))
	require.NoError(t, comments.Like(ctx, user.ID, reply.ID))
	require.NoError(t, posts.Like(ctx, user.ID, post.ID))

	require.NoError(t, posts.Delete(ctx, post.ID))

	assert.Zero(t, count(t, db, &model.CommentModel{}))
	assert.Zero(t, count(t, db, &model.CommentLikeModel{}))
	assert.Zero(t, count(t, db, &model.PostLikeModel{}))
	assert.ErrorIs(t, posts.Delete(ctx, post.ID), entity.ErrNotFound)
}

func TestCourseRepository_DeleteRemovesChildren(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewCourseRepository(db)

	chef := createUser(t, db, "chef", entity.RoleChef)
	course := createCourse(t, db, chef.ID)

	for i := 1; i <= 3; i++ {
		section := &entity.CourseSection{CourseID: course.ID, SectionTitle: fmt.Sprintf("Part %d", i), ContentType: entity.ContentText, SectionOrder: i}
		require.NoError(t, repo.CreateSection(ctx, section))
	}
	for i := 1; i <= 2; i++ {
		question := &entity.QuizQuestion{
			CourseID: course.ID, Question: "Which knife?", OptionA: "Chef", OptionB: "Bread",
			OptionC: "Paring", OptionD: "Cleaver", CorrectAnswer: "A", QuestionOrder: i,
		}
		require.NoError(t, repo.CreateQuestion(ctx, question))
	}

	sections, err := repo.ListSections(ctx, course.ID)
	require.NoError(t, err)
	assert.Len(t, sections, 3)

	require.NoError(t, repo.Delete(ctx, course.ID))

	assert.Zero(t, count(t, db, &model.CourseSectionModel{}))
	assert.Zero(t, count(t, db, &model.QuizQuestionModel{}))
	_, err = repo.GetByID(ctx, course.ID)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestCourseRepository_SectionContentTypeIsChecked(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewCourseRepository(db)

	chef := createUser(t, db, "chef", entity.RoleChef)
	course := createCourse(t, db, chef.ID)

	section := &entity.CourseSection{CourseID: course.ID, SectionTitle: "Audio", ContentType: "audio"}
	assert.ErrorIs(t, repo.CreateSection(ctx, section), entity.ErrValidation)
}

func TestReviewRepository_OneReviewPerUserAndAggregate(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	reviews := NewReviewRepository(db)

	chef := createUser(t, db, "chef", entity.RoleChef)
	course := createCourse(t, db, chef.ID)
	alice := createUser(t, db, "alice", entity.RoleUser)
	bob := createUser(t, db, "bob", entity.RoleUser)

	require.NoError(t, reviews.CreateCourseReview(ctx, &entity.CourseReview{CourseID: course.ID, UserID: alice.ID, Rating: 4}))
	require.NoError(t, reviews.CreateCourseReview(ctx, &entity.CourseReview{CourseID: course.ID, UserID: bob.ID, Rating: 5}))

	err := reviews.CreateCourseReview(ctx, &entity.CourseReview{CourseID: course.ID, UserID: alice.ID, Rating: 1})
	assert.ErrorIs(t, err, entity.ErrConflict)

	summary, err := reviews.CourseRating(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Count)
	assert.InDelta(t, 4.5, summary.Average, 0.001)

	empty, err := reviews.CourseRating(ctx, course.ID+1)
	require.NoError(t, err)
	assert.Equal(t, entity.RatingSummary{}, empty)
}

func TestUserRepository_DeleteKeepsReviews(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	reviews := NewReviewRepository(db)

	chef := createUser(t, db, "chef", entity.RoleChef)
	course := createCourse(t, db, chef.ID)
	critic := createUser(t, db, "critic", entity.RoleUser)
	criticPost := createPost(t, db, critic.ID)

	review := &entity.CourseReview{CourseID: course.ID, UserID: critic.ID, Rating: 3, Comment: "ok"}
	require.NoError(t, reviews.CreateCourseReview(ctx, review))
	require.NoError(t, NewPostRepository(db).Like(ctx, critic.ID, criticPost.ID))

	removed, err := users.Delete(ctx, critic.ID)
	require.NoError(t, err)
	assert.Empty(t, removed)

	_, err = users.GetByID(ctx, critic.ID)
	assert.ErrorIs(t, err, entity.ErrNotFound)

	kept, err := reviews.ListCourseReviews(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, critic.ID, kept[0].UserID)
	assert.Equal(t, "Test critic", kept[0].ReviewerName)

	assert.Zero(t, count(t, db, &model.PostModel{}))
	assert.Zero(t, count(t, db, &model.PostLikeModel{}))

	// the scrubbed username is free again
	createUser(t, db, "critic", entity.RoleUser)
}

func TestUserRepository_DeleteReturnsRemovedCourses(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	chef := createUser(t, db, "chef", entity.RoleChef)
	first := createCourse(t, db, chef.ID)
	second := createCourse(t, db, chef.ID)
	other := createCourse(t, db, createUser(t, db, "other", entity.RoleChef).ID)

	removed, err := NewUserRepository(db).Delete(ctx, chef.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{first.ID, second.ID}, removed)

	_, err = NewCourseRepository(db).GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, entity.ErrNotFound)
	_, err = NewCourseRepository(db).GetByID(ctx, other.ID)
	assert.NoError(t, err)
}

func TestUserRepository_DeleteCrossUserThread(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	comments := NewCommentRepository(db)

	owner := createUser(t, db, "owner", entity.RoleUser)
	leaving := createUser(t, db, "leaving", entity.RoleUser)
	post := createPost(t, db, owner.ID)

	root := &entity.Comment{PostID: post.ID, UserID: leaving.ID, Content: "root"}
	require.NoError(t, comments.Create(ctx, root))
	reply := &entity.Comment{PostID: post.ID, UserID: owner.ID, ParentCommentID: &root.ID, Content: "answer"}
	require.NoError(t, comments.Create(ctx, reply))

	_, err := NewUserRepository(db).Delete(ctx, leaving.ID)
	require.NoError(t, err)

	assert.Zero(t, count(t, db, &model.CommentModel{}))
	got, err := NewPostRepository(db).GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Comments)
}

func TestEnrollmentRepository_ProgressAndCompletion(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewEnrollmentRepository(db)

	chef := createUser(t, db, "chef", entity.RoleChef)
	course := createCourse(t, db, chef.ID)
	student := createUser(t, db, "student", entity.RoleUser)

	enrollment := &entity.Enrollment{UserID: student.ID, CourseID: course.ID}
	require.NoError(t, repo.Create(ctx, enrollment))
	assert.Equal(t, "Knife Skills", enrollment.CourseName)
	assert.ErrorIs(t, repo.Create(ctx, &entity.Enrollment{UserID: student.ID, CourseID: course.ID}), entity.ErrConflict)
	assert.ErrorIs(t, repo.Create(ctx, &entity.Enrollment{UserID: student.ID, CourseID: course.ID + 9}), entity.ErrNotFound)

	progress, err := entity.ParseProgress("0.76")
	require.NoError(t, err)
	got, completed, err := repo.UpdateProgress(ctx, student.ID, course.ID, progress, time.Now())
	require.NoError(t, err)
	assert.False(t, completed)
	assert.Equal(t, "0.76", got.Progress.String())

	got, completed, err = repo.UpdateProgress(ctx, student.ID, course.ID, entity.ProgressFromFloat(1), time.Now())
	require.NoError(t, err)
	assert.True(t, completed)
	assert.True(t, got.Completed)
	require.NotNil(t, got.CompletedAt)

	_, completed, err = repo.UpdateProgress(ctx, student.ID, course.ID, entity.ProgressFromFloat(1), time.Now())
	require.NoError(t, err)
	assert.False(t, completed)

	got, _, err = repo.UpdateProgress(ctx, student.ID, course.ID, entity.ProgressFromFloat(0.3), time.Now())
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.Equal(t, "0.30", got.Progress.String())

	list, err := repo.ListByUser(ctx, student.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, student.ID, course.ID))
	assert.ErrorIs(t, repo.Delete(ctx, student.ID, course.ID), entity.ErrNotFound)
}

func application(userID uint) *entity.ChefApplication {
	return &entity.ChefApplication{
		UserID: userID,
		ChefProfile: entity.ChefProfile{
			SpecialtyCuisine:  "Italian",
			YearsOfExperience: 6,
			Biography:         "Line cook turned pasta nerd",
		},
	}
}

func TestChefRepository_ApplicationLifecycle(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	chefs := NewChefRepository(db)
	users := NewUserRepository(db)

	applicant := createUser(t, db, "applicant", entity.RoleUser)

	first := application(applicant.ID)
	require.NoError(t, chefs.CreateApplication(ctx, first))
	assert.Equal(t, entity.StatusPending, first.Status)
	assert.Equal(t, "Test applicant", first.ApplicantName)

	assert.ErrorIs(t, chefs.CreateApplication(ctx, application(applicant.ID)), entity.ErrConflict)

	rejected, err := chefs.Reject(ctx, first.ID, "more experience please", time.Now())
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.DateReviewed)

	_, err = chefs.Reject(ctx, first.ID, "again", time.Now())
	assert.ErrorIs(t, err, entity.ErrConflict)

	second := application(applicant.ID)
	require.NoError(t, chefs.CreateApplication(ctx, second))

	app, chef, err := chefs.Approve(ctx, second.ID, "welcome", time.Now())
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, app.Status)
	assert.Equal(t, applicant.ID, chef.UserID)
	assert.Equal(t, "Italian", chef.SpecialtyCuisine)

	promoted, err := users.GetByID(ctx, applicant.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleChef, promoted.Role)

	_, _, err = chefs.Approve(ctx, second.ID, "twice", time.Now())
	assert.ErrorIs(t, err, entity.ErrConflict)
	assert.ErrorIs(t, chefs.CreateApplication(ctx, application(applicant.ID)), entity.ErrConflict)

	history, err := chefs.ListApplicationsByUser(ctx, applicant.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	_, _, err = chefs.Approve(ctx, 999, "", time.Now())
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestChefRepository_ApproveKeepsAdminRole(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	chefs := NewChefRepository(db)

	admin := createUser(t, db, "admin", entity.RoleAdmin)
	app := application(admin.ID)
	require.NoError(t, chefs.CreateApplication(ctx, app))
	_, _, err := chefs.Approve(ctx, app.ID, "", time.Now())
	require.NoError(t, err)

	got, err := NewUserRepository(db).GetByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, got.Role)
}

func TestRecipeRepository_ReviewsDriveChefRating(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	chefs := NewChefRepository(db)
	recipes := NewRecipeRepository(db)
	reviews := NewReviewRepository(db)

	cook := createUser(t, db, "cook", entity.RoleUser)
	app := application(cook.ID)
	require.NoError(t, chefs.CreateApplication(ctx, app))
	_, chef, err := chefs.Approve(ctx, app.ID, "", time.Now())
	require.NoError(t, err)

	recipe := &entity.Recipe{
		ChefID:      cook.ID,
		RecipeName:  "Cacio e Pepe",
		Cuisine:     "Italian",
		Ingredients: "spaghetti, pecorino, pepper",
		Steps:       "Boil pasta\r\nToss with cheese\n",
	}
	require.NoError(t, recipes.Create(ctx, recipe))
	assert.Equal(t, []string{"spaghetti", "pecorino", "pepper"}, recipe.IngredientList())
	assert.Equal(t, []string{"Boil pasta", "Toss with cheese"}, recipe.StepList())

	found, total, err := recipes.List(ctx, entity.RecipeFilter{Cuisine: "italian"}, entity.NewPage(0, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, found, 1)

	taster := createUser(t, db, "taster", entity.RoleUser)
	require.NoError(t, reviews.CreateRecipeReview(ctx, &entity.RecipeReview{RecipeID: recipe.ID, UserID: taster.ID, Rating: 3}))
	assert.ErrorIs(t, reviews.CreateRecipeReview(ctx, &entity.RecipeReview{RecipeID: recipe.ID, UserID: taster.ID, Rating: 5}), entity.ErrConflict)

	rated, err := chefs.GetByID(ctx, chef.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, rated.Rating, 0.001)
	assert.Equal(t, 1, rated.TotalReviews)

	require.NoError(t, recipes.Delete(ctx, recipe.ID))

	rated, err = chefs.GetByID(ctx, chef.ID)
	require.NoError(t, err)
	assert.Zero(t, rated.Rating)
	assert.Zero(t, rated.TotalReviews)

	n, err := reviews.ReconcileChefRatings(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "aggregates already match the review tables")

	require.NoError(t, db.Model(&model.ChefModel{}).Where("user_id = ?", cook.ID).
		Updates(map[string]interface{}{"rating": 4.5, "total_reviews": 7}).Error)

	n, err = reviews.ReconcileChefRatings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rated, err = chefs.GetByID(ctx, chef.ID)
	require.NoError(t, err)
	assert.Zero(t, rated.Rating)
	assert.Zero(t, rated.TotalReviews)
}
