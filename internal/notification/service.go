package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sharath018/potluck-rsvp-backend/utils"
)

// Channel delivers one message. *utils.Mailer satisfies it.
type Channel interface {
	Send(to, subject, body string) error
}

type Service interface {
	// NotifySubmission tells the organizer about a new RSVP and records the attempt.
	NotifySubmission(ctx context.Context, ev SubmissionEvent) error
	// Publish has the signature of utils.PublishEvent so it can stand in for
	// Kafka when no broker is configured.
	Publish(ctx context.Context, key string, payload interface{}) error
	RecentLogs(ctx context.Context, limit int) ([]NotificationLog, error)
}

const (
	defaultLogLimit = 50
	maxLogLimit     = 200
)

type service struct {
	repo      Repository
	email     Channel
	recipient string
	loc       *time.Location
}

func NewService(repo Repository, email Channel, recipient string, loc *time.Location) Service {
	return &service{repo: repo, email: email, recipient: recipient, loc: loc}
}

func (s *service) NotifySubmission(ctx context.Context, ev SubmissionEvent) error {
	entry := &NotificationLog{
		GuestID:   ev.GuestID.String(),
		Channel:   ChannelEmail,
		Recipient: s.recipient,
		Subject:   ev.Subject(),
		Body:      ev.Body(s.loc),
	}

	var sendErr error
	switch {
	case s.recipient == "" || s.email == nil:
		entry.Status = StatusSkipped
	default:
		sendErr = s.email.Send(s.recipient, entry.Subject, entry.Body)
		if sendErr != nil {
			entry.Status = StatusFailed
			msg := sendErr.Error()
			entry.Error = &msg
		} else {
			entry.Status = StatusSent
		}
	}

	if err := s.repo.CreateLog(ctx, entry); err != nil {
		utils.Log.Warn("failed to store notification log", zap.String("guest_id", entry.GuestID), zap.Error(err))
	}
	if sendErr != nil {
		return fmt.Errorf("notify organizer: %w", sendErr)
	}
	return nil
}

func (s *service) Publish(ctx context.Context, _ string, payload interface{}) error {
	switch ev := payload.(type) {
	case SubmissionEvent:
		return s.NotifySubmission(ctx, ev)
	case *SubmissionEvent:
		return s.NotifySubmission(ctx, *ev)
	default:
		return errors.New("notification: unsupported payload")
	}
}

func (s *service) RecentLogs(ctx context.Context, limit int) ([]NotificationLog, error) {
	switch {
	case limit <= 0:
		limit = defaultLogLimit
	case limit > maxLogLimit:
		limit = maxLogLimit
	}
	return s.repo.ListRecent(ctx, limit)
}
