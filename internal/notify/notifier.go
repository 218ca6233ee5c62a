// Package notify delivers owner-facing messages after lifecycle
// transitions. Delivery is best-effort: callers inspect the Result but
// never roll back a committed state change over a failed send.
package notify

import (
	"errors"

	logrus "github.com/sirupsen/logrus"
)

// ErrNoRecipient means the user has no phone number on record.
var ErrNoRecipient = errors.New("no recipient phone number")

// Result reports what happened to a single notification attempt.
type Result struct {
	Delivered bool
	Err       error
}

// Notifier sends a message to a phone number or email address.
type Notifier interface {
	Notify(recipient, message string) Result
}

// SMSLogger is a stub gateway that logs messages instead of sending
// them. Swap for a real gateway (e.g. Twilio) in production.
type SMSLogger struct{}

func (SMSLogger) Notify(recipient, message string) Result {
	if recipient == "" {
		return Result{Err: ErrNoRecipient}
	}
	logrus.WithFields(logrus.Fields{
		"to":      recipient,
		"message": message,
	}).Info("SMS dispatched")
	return Result{Delivered: true}
}
