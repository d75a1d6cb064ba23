// Package notify turns queued domain events into emails and live pushes to
// connected clients.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"culinary-hub/pkg/logger"
	"culinary-hub/pkg/mailer"
	"culinary-hub/pkg/queue"
)

type Handler struct {
	mailer mailer.Mailer
	pusher Pusher
	logger *logger.Logger
}

// NewHandler builds the consumer callback. A nil pusher disables live pushes.
func NewHandler(m mailer.Mailer, pusher Pusher, log *logger.Logger) *Handler {
	return &Handler{mailer: m, pusher: pusher, logger: log}
}

// Handle is a queue consumer callback. Returning an error requeues the
// delivery, so only send failures are reported; undecodable or unknown
// events are logged and dropped.
func (h *Handler) Handle(ctx context.Context, d queue.Delivery) error {
	var (
		userID uint
		msg    mailer.Message
		data   interface{}
		err    error
	)

	switch d.RoutingKey {
	case queue.RoutingChefApplicationReviewed:
		var event queue.ChefApplicationReviewedEvent
		if err = json.Unmarshal(d.Body, &event); err == nil {
			userID, msg, data = event.UserID, applicationReviewedMessage(event), event
		}
	case queue.RoutingEnrollmentCompleted:
		var event queue.EnrollmentCompletedEvent
		if err = json.Unmarshal(d.Body, &event); err == nil {
			userID, msg, data = event.UserID, enrollmentCompletedMessage(event), event
		}
	default:
		h.logger.Warn("Ignoring event with unknown routing key %q", d.RoutingKey)
		return nil
	}

	if err != nil {
		h.logger.Error("Dropping undecodable %s event: %v", d.RoutingKey, err)
		return nil
	}

	// pushes are best effort; a failure must not resend the email
	if h.pusher != nil && userID != 0 {
		n := Notification{
			Type:    d.RoutingKey,
			Title:   msg.Subject,
			Message: msg.PlainText,
			Data:    data,
			SentAt:  time.Now().UTC(),
		}
		if err := h.pusher.Push(ctx, userID, n); err != nil {
			h.logger.Warn("Failed to push %s to user %d: %v", d.RoutingKey, userID, err)
		}
	}

	if msg.ToAddress == "" {
		h.logger.Warn("Dropping %s email without recipient address", d.RoutingKey)
		return nil
	}

	if err := h.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send %s email to %s: %w", d.RoutingKey, msg.ToAddress, err)
	}
	h.logger.Info("Sent %s email to %s", d.RoutingKey, msg.ToAddress)
	return nil
}

func applicationReviewedMessage(e queue.ChefApplicationReviewedEvent) mailer.Message {
	var subject, body string
	switch e.Status {
	case "Approved":
		subject = "Your chef application was approved"
		body = fmt.Sprintf("Hi %s,\n\nCongratulations! Your chef application has been approved. You can now publish courses and recipes.", e.FullName)
	default:
		subject = "Your chef application was reviewed"
		body = fmt.Sprintf("Hi %s,\n\nYour chef application was not approved this time.", e.FullName)
	}
	if e.AdminRemarks != "" {
		body += "\n\nReviewer remarks: " + e.AdminRemarks
	}

	return mailer.Message{
		ToName:    e.FullName,
		ToAddress: e.Email,
		Subject:   subject,
		PlainText: body,
	}
}

func enrollmentCompletedMessage(e queue.EnrollmentCompletedEvent) mailer.Message {
	return mailer.Message{
		ToName:    e.FullName,
		ToAddress: e.Email,
		Subject:   fmt.Sprintf("You completed %s", e.CourseName),
		PlainText: fmt.Sprintf("Hi %s,\n\nWell done on finishing %q on %s. Leave a review to help other cooks.",
			e.FullName, e.CourseName, e.CompletedAt.Format("2 January 2006")),
	}
}
