package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"culinary-hub/internal/entity"
	"culinary-hub/internal/model"
	"culinary-hub/internal/repo/persistent"
	"culinary-hub/pkg/cache"
	"culinary-hub/pkg/imageproc"
	"culinary-hub/pkg/logger"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type repos struct {
	users       persistent.UserRepository
	posts       persistent.PostRepository
	comments    persistent.CommentRepository
	courses     persistent.CourseRepository
	reviews     persistent.ReviewRepository
	recipes     persistent.RecipeRepository
	chefs       persistent.ChefRepository
	enrollments persistent.EnrollmentRepository
}

func newRepos(t *testing.T) repos {
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

	return repos{
		users:       persistent.NewUserRepository(db),
		posts:       persistent.NewPostRepository(db),
		comments:    persistent.NewCommentRepository(db),
		courses:     persistent.NewCourseRepository(db),
		reviews:     persistent.NewReviewRepository(db),
		recipes:     persistent.NewRecipeRepository(db),
		chefs:       persistent.NewChefRepository(db),
		enrollments: persistent.NewEnrollmentRepository(db),
	}
}

func seedUser(t *testing.T, r repos, username string, role entity.Role) entity.Actor {
	t.Helper()
	user := &entity.User{
		FullName:     "Test " + username,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		Role:         role,
	}
	require.NoError(t, r.users.Create(context.Background(), user))
	return entity.Actor{UserID: user.ID, Role: role}
}

type fakeUploader struct {
	folders []string
}

func (f *fakeUploader) Upload(_ context.Context, folder string, r io.Reader) (string, error) {
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	f.folders = append(f.folders, folder)
	return "https://cdn.example.com/" + folder + "/image.webp", nil
}

type published struct {
	routingKey string
	event      interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, event interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{routingKey: routingKey, event: event})
	return nil
}

// memoryStore is a cache.Store backed by a map.
type memoryStore struct {
	values map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string][]byte{}}
}

func (m *memoryStore) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := m.values[key]
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryStore) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = raw
	return nil
}

func (m *memoryStore) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

type memoryStorage struct {
	key         string
	contentType string
	size        int64
}

func (m *memoryStorage) Upload(_ context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.key, m.contentType, m.size = key, contentType, int64(len(data))
	if size != m.size {
		return "", io.ErrShortWrite
	}
	return "https://bucket.example.com/" + key, nil
}

func (m *memoryStorage) Delete(context.Context, string) error {
	return nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testLogger() *logger.Logger {
	return logger.NewNop()
}

func TestImageUploader(t *testing.T) {
	store := &memoryStorage{}
	uploader := NewImageUploader(store, imageproc.DefaultOptions())

	url, err := uploader.Upload(context.Background(), FolderAvatars, bytes.NewReader(pngBytes(t, 40, 20)))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(store.key, "avatars/"))
	require.True(t, strings.HasSuffix(store.key, ".webp"))
	require.Equal(t, imageproc.ContentType, store.contentType)
	require.Equal(t, "https://bucket.example.com/"+store.key, url)

	_, err = uploader.Upload(context.Background(), FolderAvatars, strings.NewReader("not an image"))
	require.ErrorIs(t, err, entity.ErrValidation)
}
