package usecase

import (
	"context"
	"testing"

	"culinary-hub/internal/entity"
	"culinary-hub/pkg/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollmentUseCase_CompletionPublishesOnce(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	publisher := &recordingPublisher{}
	courses := NewCourseUseCase(r.courses, r.reviews, nil, &fakeUploader{}, testLogger())
	uc := NewEnrollmentUseCase(r.enrollments, r.users, publisher, testLogger())

	chef := seedUser(t, r, "chef", entity.RoleChef)
	student := seedUser(t, r, "student", entity.RoleUser)
	course, err := courses.Create(ctx, chef, CourseInput{CourseName: "Dumplings"})
	require.NoError(t, err)

	_, err = uc.UpdateProgress(ctx, student, course.ID, entity.ProgressFromFloat(0.5))
	assert.ErrorIs(t, err, entity.ErrNotFound)

	enrollment, err := uc.Enroll(ctx, student, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dumplings", enrollment.CourseName)
	assert.Equal(t, entity.ProgressNone, enrollment.Progress)

	_, err = uc.Enroll(ctx, student, course.ID)
	assert.ErrorIs(t, err, entity.ErrConflict)

	_, err = uc.UpdateProgress(ctx, student, course.ID, entity.Progress(101))
	assert.ErrorIs(t, err, entity.ErrValidation)

	half, err := uc.UpdateProgress(ctx, student, course.ID, entity.ProgressFromFloat(0.5))
	require.NoError(t, err)
	assert.False(t, half.Completed)
	assert.Empty(t, publisher.events)

	done, err := uc.UpdateProgress(ctx, student, course.ID, entity.ProgressComplete)
	require.NoError(t, err)
	assert.True(t, done.Completed)

	_, err = uc.UpdateProgress(ctx, student, course.ID, entity.ProgressComplete)
	require.NoError(t, err)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, queue.RoutingEnrollmentCompleted, publisher.events[0].routingKey)
	event := publisher.events[0].event.(queue.EnrollmentCompletedEvent)
	assert.Equal(t, "Dumplings", event.CourseName)
	assert.Equal(t, "student@example.com", event.Email)

	mine, err := uc.Mine(ctx, student)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, uc.Unenroll(ctx, student, course.ID))
	_, err = uc.Get(ctx, student, course.ID)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
