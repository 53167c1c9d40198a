// internal/infra/discord/client.go
package discord

import (
	"fmt"

	"project_report_bot/internal/domain/notify"

	"github.com/bwmarrin/discordgo"
)

// SessionAdapter implements the notify.Client interface using the
// bwmarrin/discordgo library.
type SessionAdapter struct {
	session *discordgo.Session
}

func NewSessionAdapter(s *discordgo.Session) *SessionAdapter {
	return &SessionAdapter{session: s}
}

// SendDirectMessage opens (or reuses) the DM channel with the user and
// delivers the message there.
func (a *SessionAdapter) SendDirectMessage(userID string, msg notify.Message) error {
	ch, err := a.session.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("failed to open DM channel with user %s: %w", userID, err)
	}
	if _, err := a.session.ChannelMessageSendComplex(ch.ID, buildMessageSend(msg)); err != nil {
		return fmt.Errorf("failed to send DM to user %s: %w", userID, err)
	}
	return nil
}

// SendChannelMessage posts the message to a guild channel.
func (a *SessionAdapter) SendChannelMessage(channelID string, msg notify.Message) error {
	if _, err := a.session.ChannelMessageSendComplex(channelID, buildMessageSend(msg)); err != nil {
		return fmt.Errorf("failed to send message to channel %s: %w", channelID, err)
	}
	return nil
}

func buildMessageSend(msg notify.Message) *discordgo.MessageSend {
	send := &discordgo.MessageSend{Content: msg.Content}
	if msg.SuppressMentions {
		send.AllowedMentions = &discordgo.MessageAllowedMentions{Parse: []discordgo.AllowedMentionType{}}
	}
	if msg.DismissCustomID != "" {
		send.Components = []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "DISMISS",
						Style:    discordgo.SecondaryButton,
						CustomID: msg.DismissCustomID,
					},
				},
			},
		}
	}
	return send
}
