package services

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	uuid "github.com/satori/go.uuid"
	"gorm.io/gorm"

	"farmlink/models"
)

// EmailSender is what the notifier needs from the mail layer.
type EmailSender interface {
	Send(to, subject, body string) error
}

// Notifier persists in-app notifications and mails the user for the
// categories that matter (order, payment). Email is best effort: a failed
// send is logged and swallowed, never surfaced to the caller.
type Notifier struct {
	DB    *gorm.DB
	Email EmailSender
}

func NewNotifier(db *gorm.DB, email EmailSender) *Notifier {
	return &Notifier{DB: db, Email: email}
}

func (n *Notifier) Notify(user *models.User, message, notifType string, relatedID *uuid.UUID) {
	notification := models.Notification{
		UserID:    user.ID,
		Message:   message,
		Type:      notifType,
		RelatedID: relatedID,
	}
	if err := n.DB.Create(&notification).Error; err != nil {
		log.Error().Err(err).Str("user", user.ID.String()).Msg("Failed to persist notification")
	}

	if notifType != models.NotificationOrder && notifType != models.NotificationPayment {
		return
	}

	subject := fmt.Sprintf("FarmLink Notification: %s", capitalize(notifType))
	if err := n.Email.Send(user.Email, subject, message); err != nil {
		log.Warn().Err(err).Str("to", user.Email).Msg("Notification email failed")
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
