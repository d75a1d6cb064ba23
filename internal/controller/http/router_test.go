package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"culinary-hub/internal/entity"
	"culinary-hub/internal/model"
	"culinary-hub/internal/repo/persistent"
	"culinary-hub/internal/usecase"
	"culinary-hub/pkg/jwt"
	"culinary-hub/pkg/logger"
	"culinary-hub/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type stubUploader struct{}

func (stubUploader) Upload(_ context.Context, folder string, _ io.Reader) (string, error) {
	return "http://cdn.test/" + folder + "/file.webp", nil
}

type apiFixture struct {
	router *gin.Engine
	jwt    *jwt.Service
	users  persistent.UserRepository
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(model.All()...))

	log := logger.NewNop()
	userRepo := persistent.NewUserRepository(db)
	postRepo := persistent.NewPostRepository(db)
	commentRepo := persistent.NewCommentRepository(db)
	courseRepo := persistent.NewCourseRepository(db)
	reviewRepo := persistent.NewReviewRepository(db)
	recipeRepo := persistent.NewRecipeRepository(db)
	chefRepo := persistent.NewChefRepository(db)
	enrollmentRepo := persistent.NewEnrollmentRepository(db)

	uploader := stubUploader{}
	userUseCase := usecase.NewUserUseCase(userRepo, nil, uploader, log)
	handlers := Handlers{
		User:       NewUserHandler(userUseCase, log),
		Post:       NewPostHandler(usecase.NewPostUseCase(postRepo, commentRepo, uploader, log), usecase.NewCommentUseCase(postRepo, commentRepo, log), log),
		Course:     NewCourseHandler(usecase.NewCourseUseCase(courseRepo, reviewRepo, nil, uploader, log), log),
		Review:     NewReviewHandler(usecase.NewReviewUseCase(reviewRepo, courseRepo, recipeRepo, nil, log), log),
		Recipe:     NewRecipeHandler(usecase.NewRecipeUseCase(recipeRepo, uploader, log), log),
		Chef:       NewChefHandler(usecase.NewChefUseCase(chefRepo, userRepo, reviewRepo, uploader, nil, log), log),
		Enrollment: NewEnrollmentHandler(usecase.NewEnrollmentUseCase(enrollmentRepo, userRepo, nil, log), log),
	}

	jwtService := jwt.NewService("test-secret-key")
	router := setupTestRouter()
	RegisterRoutes(router.Group("/api"), handlers, middleware.AuthMiddleware(jwtService, userUseCase))

	return &apiFixture{router: router, jwt: jwtService, users: userRepo}
}

func (f *apiFixture) call(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, _ := http.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	return w, decoded
}

func (f *apiFixture) register(t *testing.T, username string) uint {
	t.Helper()
	w, body := f.call(t, "POST", "/api/users", "", map[string]string{
		"fullName": "Cook " + username,
		"username": username,
		"email":    username + "@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return uint(body["id"].(float64))
}

func (f *apiFixture) token(t *testing.T, id uint, role entity.Role) string {
	t.Helper()
	token, err := f.jwt.GenerateToken(id, string(role))
	require.NoError(t, err)
	return token
}

func TestAPI_RegistrationIsPublic(t *testing.T) {
	f := newAPIFixture(t)

	id := f.register(t, "alice")
	assert.NotZero(t, id)

	w, body := f.call(t, "POST", "/api/users", "", map[string]string{
		"fullName": "Other",
		"username": "alice",
		"email":    "other@example.com",
		"password": "correct-horse",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NotEmpty(t, body["message"])

	w, _ = f.call(t, "GET", "/api/posts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPI_DeletedAccountTokenRejected(t *testing.T) {
	f := newAPIFixture(t)

	id := f.register(t, "leaving")
	token := f.token(t, id, entity.RoleUser)

	w, _ := f.call(t, "POST", "/api/posts", token, map[string]string{"title": "Before", "content": "still here"})
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = f.call(t, "DELETE", "/api/users/"+uintText(id), token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w, body := f.call(t, "POST", "/api/posts", token, map[string]string{"title": "After", "content": "ghost"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, body["message"])

	w, _ = f.call(t, "GET", "/api/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterRoutes_LeavesLimiterSliceAlone(t *testing.T) {
	limiters := make([]gin.HandlerFunc, 1, 4)
	limiters[0] = func(c *gin.Context) { c.Next() }

	router := setupTestRouter()
	RegisterRoutes(router.Group("/api"), Handlers{}, middleware.AuthMiddleware(jwt.NewService("test-secret-key"), nil), limiters...)

	assert.Nil(t, limiters[:2][1])
}

func TestAPI_PostLifecycle(t *testing.T) {
	f := newAPIFixture(t)
	userID := f.register(t, "bob")
	token := f.token(t, userID, entity.RoleUser)

	w, post := f.call(t, "POST", "/api/posts", token, map[string]string{"title": "Sourdough", "content": "Day one"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	postPath := "/api/posts/" + jsonID(post)

	w, _ = f.call(t, "POST", postPath+"/like", token, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	w, _ = f.call(t, "POST", postPath+"/like", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = f.call(t, "POST", postPath+"/view", token, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	w, _ = f.call(t, "POST", postPath+"/view", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, root := f.call(t, "POST", postPath+"/comments", token, map[string]string{"content": "Looks great"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w, _ = f.call(t, "POST", postPath+"/comments", token, map[string]interface{}{"content": "Thanks", "parentCommentId": root["id"]})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, _ = f.call(t, "DELETE", postPath+"/comments/"+jsonID(root), token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, detail := f.call(t, "GET", postPath, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), detail["rating"])
	assert.Equal(t, float64(1), detail["views"])
	assert.Equal(t, float64(2), detail["comments"])
	assert.Equal(t, true, detail["likedByViewer"])
	tree := detail["commentTree"].([]interface{})
	require.Len(t, tree, 1)
	assert.Len(t, tree[0].(map[string]interface{})["replies"], 1)

	strangerID := f.register(t, "eve")
	w, _ = f.call(t, "DELETE", postPath, f.token(t, strangerID, entity.RoleUser), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = f.call(t, "DELETE", postPath, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w, _ = f.call(t, "GET", postPath, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPI_ChefApprovalAndCourse(t *testing.T) {
	f := newAPIFixture(t)
	adminID := f.register(t, "admin")
	require.NoError(t, f.users.UpdateRole(context.Background(), adminID, entity.RoleAdmin))
	adminToken := f.token(t, adminID, entity.RoleAdmin)

	cookID := f.register(t, "carol")
	userToken := f.token(t, cookID, entity.RoleUser)

	w, _ := f.call(t, "POST", "/api/courses", userToken, map[string]string{"courseName": "Knife skills"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, app := f.call(t, "POST", "/api/ChefApplication", userToken, map[string]interface{}{
		"specialtyCuisine":  "Italian",
		"yearsOfExperience": 6,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Pending", app["status"])

	w, _ = f.call(t, "POST", "/api/ChefApplication", userToken, map[string]interface{}{"specialtyCuisine": "Thai"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = f.call(t, "GET", "/api/ChefApproval", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, list := f.call(t, "GET", "/api/ChefApproval?status=Pending", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), list["total"])

	approvePath := "/api/ChefApproval/" + jsonID(app) + "/approve"
	w, approved := f.call(t, "POST", approvePath, adminToken, map[string]string{"adminRemarks": "Welcome"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Approved", approved["status"])

	w, _ = f.call(t, "POST", approvePath, adminToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, chef := f.call(t, "GET", "/api/chefs/user/"+uintText(cookID), userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Italian", chef["specialtyCuisine"])

	chefToken := f.token(t, cookID, entity.RoleChef)
	w, course := f.call(t, "POST", "/api/courses", chefToken, map[string]string{"courseName": "Knife skills"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	coursePath := "/api/courses/" + jsonID(course)

	w, _ = f.call(t, "POST", coursePath+"/quiz", chefToken, map[string]interface{}{
		"question": "Which knife?", "optionA": "Chef", "optionB": "Bread", "optionC": "Paring", "optionD": "Cleaver",
		"correctAnswer": "E",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = f.call(t, "POST", coursePath+"/sections", chefToken, map[string]interface{}{
		"sectionTitle": "Grip", "contentType": "text", "content": "Pinch the blade", "sectionOrder": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, _ = f.call(t, "POST", "/api/reviews", userToken, map[string]interface{}{"courseId": course["id"], "rating": 4})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w, _ = f.call(t, "POST", "/api/reviews", userToken, map[string]interface{}{"courseId": course["id"], "rating": 5})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, detail := f.call(t, "GET", coursePath, userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, detail["sections"], 1)
	assert.Len(t, detail["reviews"], 1)
}

func TestAPI_EnrollmentProgress(t *testing.T) {
	f := newAPIFixture(t)
	adminID := f.register(t, "admin")
	adminToken := f.token(t, adminID, entity.RoleAdmin)

	w, course := f.call(t, "POST", "/api/courses", adminToken, map[string]string{"courseName": "Pastry"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	courseID := jsonID(course)

	studentID := f.register(t, "dan")
	token := f.token(t, studentID, entity.RoleUser)

	w, _ = f.call(t, "POST", "/api/Enrollment", token, map[string]interface{}{"courseId": course["id"]})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w, _ = f.call(t, "POST", "/api/Enrollment", token, map[string]interface{}{"courseId": course["id"]})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = f.call(t, "PUT", "/api/Enrollment/"+courseID+"/progress", token, map[string]interface{}{"progress": 1.2})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, enrollment := f.call(t, "PUT", "/api/Enrollment/"+courseID+"/progress", token, map[string]interface{}{"progress": "1.00"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, enrollment["completed"])
	assert.NotNil(t, enrollment["completedAt"])

	req, _ := http.NewRequest("GET", "/api/Enrollment/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, "Pastry", mine[0]["courseName"])

	w, _ = f.call(t, "DELETE", "/api/Enrollment/"+courseID, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w, _ = f.call(t, "GET", "/api/Enrollment/course/"+courseID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPI_RecipesAndAdmin(t *testing.T) {
	f := newAPIFixture(t)
	adminID := f.register(t, "admin")
	adminToken := f.token(t, adminID, entity.RoleAdmin)
	userID := f.register(t, "frank")
	userToken := f.token(t, userID, entity.RoleUser)

	w, recipe := f.call(t, "POST", "/api/recipes", adminToken, map[string]interface{}{
		"recipeName":  "Carbonara",
		"cuisine":     "Italian",
		"ingredients": "spaghetti, eggs , pecorino,,guanciale",
		"steps":       []string{"Boil pasta", " ", "Mix eggs and cheese"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, []interface{}{"spaghetti", "eggs", "pecorino", "guanciale"}, recipe["ingredients"])
	assert.Equal(t, []interface{}{"Boil pasta", "Mix eggs and cheese"}, recipe["steps"])

	w, body := f.call(t, "POST", "/api/recipes", adminToken, map[string]interface{}{
		"recipeName":  "Broth",
		"ingredients": []string{"water", "Salt, to taste"},
		"steps":       "Simmer",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["message"], "ingredient 2")

	w, list := f.call(t, "GET", "/api/recipes?cuisine=italian", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), list["total"])

	w, _ = f.call(t, "POST", "/api/recipereviews", userToken, map[string]interface{}{"recipeId": recipe["id"], "rating": 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = f.call(t, "GET", "/api/ManageUser", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, updated := f.call(t, "PUT", "/api/ManageUser/"+uintText(userID)+"/role", adminToken, map[string]string{"role": "Chef"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Chef", updated["role"])

	w, _ = f.call(t, "DELETE", "/api/ManageRecipe/"+jsonID(recipe), adminToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w, _ = f.call(t, "GET", "/api/recipes/"+jsonID(recipe), userToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func jsonID(body map[string]interface{}) string {
	return uintText(uint(body["id"].(float64)))
}

func uintText(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
