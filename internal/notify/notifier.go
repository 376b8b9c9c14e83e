package notify

//go:generate mockgen -destination=mock/mock_notifier.go -package=mocknotify -source=notifier.go

import (
	"context"
	"errors"
	"fmt"
)

// Level is the severity of a notification
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Message is plain text addressed to one participant. An empty
// ParticipantID addresses the whole table.
type Message struct {
	ParticipantID string
	Level         Level
	Text          string
}

// Notifier delivers messages to participants
type Notifier interface {
	Notify(ctx context.Context, msg *Message) error
}

// Infof builds an info message
func Infof(participantID, format string, args ...any) *Message {
	return &Message{ParticipantID: participantID, Level: LevelInfo, Text: fmt.Sprintf(format, args...)}
}

// Warningf builds a warning message
func Warningf(participantID, format string, args ...any) *Message {
	return &Message{ParticipantID: participantID, Level: LevelWarning, Text: fmt.Sprintf(format, args...)}
}

// Errorf builds an error message
func Errorf(participantID, format string, args ...any) *Message {
	return &Message{ParticipantID: participantID, Level: LevelError, Text: fmt.Sprintf(format, args...)}
}

type multi []Notifier

// Multi fans a message out to every notifier and joins their errors
func Multi(notifiers ...Notifier) Notifier {
	return multi(notifiers)
}

func (m multi) Notify(ctx context.Context, msg *Message) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
