package notification

import (
	"time"
)

const (
	ChannelEmail = "email"

	StatusSent    = "sent"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// NotificationLog is one message sent (or attempted) to the organizer.
type NotificationLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GuestID   string    `gorm:"size:36;index" json:"guest_id"`
	Channel   string    `gorm:"size:20;not null" json:"channel"`
	Recipient string    `gorm:"size:255" json:"recipient"`
	Subject   string    `gorm:"size:255" json:"subject"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Status    string    `gorm:"size:20;not null" json:"status"`
	Error     *string   `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (NotificationLog) TableName() string {
	return "notification_logs"
}
