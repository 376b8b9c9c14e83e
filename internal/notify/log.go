package notify

import (
	"context"
	"log"
)

// LogNotifier writes notifications to the process log
type LogNotifier struct{}

// NewLogNotifier creates a log-backed notifier
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Notify logs the message
func (n *LogNotifier) Notify(_ context.Context, msg *Message) error {
	if msg == nil {
		return nil
	}

	to := msg.ParticipantID
	if to == "" {
		to = "table"
	}
	log.Printf("[NOTIFY] %s -> %s: %s", msg.Level, to, msg.Text)
	return nil
}
