package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"culinary-hub/pkg/logger"
	"culinary-hub/pkg/mailer"
	"culinary-hub/pkg/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	sent []mailer.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type recordingPusher struct {
	pushed map[uint][]Notification
	err    error
}

func (p *recordingPusher) Push(_ context.Context, userID uint, n Notification) error {
	if p.err != nil {
		return p.err
	}
	if p.pushed == nil {
		p.pushed = map[uint][]Notification{}
	}
	p.pushed[userID] = append(p.pushed[userID], n)
	return nil
}

func delivery(t *testing.T, key string, event interface{}) queue.Delivery {
	t.Helper()
	body, err := json.Marshal(event)
	require.NoError(t, err)
	return queue.Delivery{RoutingKey: key, Body: body}
}

func TestHandle_ApplicationApproved(t *testing.T) {
	m := &recordingMailer{}
	h := NewHandler(m, nil, logger.NewNop())

	err := h.Handle(context.Background(), delivery(t, queue.RoutingChefApplicationReviewed, queue.ChefApplicationReviewedEvent{
		ApplicationID: 3,
		FullName:      "Giulia Rossi",
		Email:         "giulia@example.com",
		Status:        "Approved",
		AdminRemarks:  "Great portfolio",
	}))

	require.NoError(t, err)
	require.Len(t, m.sent, 1)
	assert.Equal(t, "giulia@example.com", m.sent[0].ToAddress)
	assert.Equal(t, "Your chef application was approved", m.sent[0].Subject)
	assert.Contains(t, m.sent[0].PlainText, "Great portfolio")
}

func TestHandle_ApplicationRejected(t *testing.T) {
	m := &recordingMailer{}
	h := NewHandler(m, nil, logger.NewNop())

	err := h.Handle(context.Background(), delivery(t, queue.RoutingChefApplicationReviewed, queue.ChefApplicationReviewedEvent{
		Email:  "bob@example.com",
		Status: "Rejected",
	}))

	require.NoError(t, err)
	require.Len(t, m.sent, 1)
	assert.Contains(t, m.sent[0].PlainText, "not approved")
}

func TestHandle_EnrollmentCompleted(t *testing.T) {
	m := &recordingMailer{}
	h := NewHandler(m, nil, logger.NewNop())

	err := h.Handle(context.Background(), delivery(t, queue.RoutingEnrollmentCompleted, queue.EnrollmentCompletedEvent{
		FullName:    "Alice",
		Email:       "alice@example.com",
		CourseName:  "Fresh Pasta",
		CompletedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}))

	require.NoError(t, err)
	require.Len(t, m.sent, 1)
	assert.Equal(t, "You completed Fresh Pasta", m.sent[0].Subject)
	assert.Contains(t, m.sent[0].PlainText, "1 May 2024")
}

func TestHandle_DropsUnknownAndBrokenEvents(t *testing.T) {
	m := &recordingMailer{}
	h := NewHandler(m, nil, logger.NewNop())

	assert.NoError(t, h.Handle(context.Background(), queue.Delivery{RoutingKey: "post.created", Body: []byte(`{}`)}))
	assert.NoError(t, h.Handle(context.Background(), queue.Delivery{RoutingKey: queue.RoutingEnrollmentCompleted, Body: []byte(`[1,2]`)}))
	assert.NoError(t, h.Handle(context.Background(), delivery(t, queue.RoutingEnrollmentCompleted, queue.EnrollmentCompletedEvent{CourseName: "No email"})))
	assert.Empty(t, m.sent)
}

func TestHandle_SendFailureIsReturned(t *testing.T) {
	m := &recordingMailer{err: errors.New("smtp down")}
	h := NewHandler(m, nil, logger.NewNop())

	err := h.Handle(context.Background(), delivery(t, queue.RoutingEnrollmentCompleted, queue.EnrollmentCompletedEvent{Email: "a@example.com"}))
	assert.ErrorContains(t, err, "smtp down")
}

func TestHandle_PushesToUser(t *testing.T) {
	m := &recordingMailer{}
	p := &recordingPusher{}
	h := NewHandler(m, p, logger.NewNop())

	err := h.Handle(context.Background(), delivery(t, queue.RoutingEnrollmentCompleted, queue.EnrollmentCompletedEvent{
		UserID:     9,
		CourseID:   4,
		CourseName: "Knife Skills",
	}))

	require.NoError(t, err)
	assert.Empty(t, m.sent, "no address, no email")
	require.Len(t, p.pushed[9], 1)
	n := p.pushed[9][0]
	assert.Equal(t, queue.RoutingEnrollmentCompleted, n.Type)
	assert.Equal(t, "You completed Knife Skills", n.Title)
	assert.False(t, n.SentAt.IsZero())
}

func TestHandle_PushFailureStillSendsEmail(t *testing.T) {
	m := &recordingMailer{}
	h := NewHandler(m, &recordingPusher{err: errors.New("redis down")}, logger.NewNop())

	err := h.Handle(context.Background(), delivery(t, queue.RoutingChefApplicationReviewed, queue.ChefApplicationReviewedEvent{
		UserID: 2,
		Email:  "bob@example.com",
		Status: "Approved",
	}))

	require.NoError(t, err)
	assert.Len(t, m.sent, 1)
}

func TestChannel(t *testing.T) {
	assert.Equal(t, "notifications:42", Channel(42))
}
