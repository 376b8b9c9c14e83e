package notify

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// MessageSender is the part of a discordgo session used for notifications
type MessageSender interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordNotifierConfig holds configuration for the Discord notifier
type DiscordNotifierConfig struct {
	Session   MessageSender
	ChannelID string
}

// DiscordNotifier posts notifications to a Discord channel, mentioning the
// participant they are addressed to
type DiscordNotifier struct {
	session   MessageSender
	channelID string
}

// NewDiscordNotifier creates a Discord-backed notifier
func NewDiscordNotifier(cfg *DiscordNotifierConfig) *DiscordNotifier {
	if cfg == nil || cfg.Session == nil {
		panic("discord session is required")
	}
	if cfg.ChannelID == "" {
		panic("discord channel ID is required")
	}

	return &DiscordNotifier{
		session:   cfg.Session,
		channelID: cfg.ChannelID,
	}
}

// Notify sends the message to the channel
func (n *DiscordNotifier) Notify(ctx context.Context, msg *Message) error {
	if msg == nil {
		return nil
	}

	_, err := n.session.ChannelMessageSend(n.channelID, Format(msg), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to send discord notification: %w", err)
	}
	return nil
}

// Format renders a message as a single chat line
func Format(msg *Message) string {
	prefix := ""
	switch msg.Level {
	case LevelWarning:
		prefix = "⚠️ "
	case LevelError:
		prefix = "❌ "
	}

	if msg.ParticipantID == "" {
		return prefix + msg.Text
	}
	return fmt.Sprintf("%s<@%s> %s", prefix, msg.ParticipantID, msg.Text)
}
