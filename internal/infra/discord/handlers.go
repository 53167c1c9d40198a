// internal/infra/discord/handlers.go
package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

const dismissPrefix = "rem:dismiss:"

// RegisterInteractionHandlers wires the component interactions the bot's
// outbound messages can produce. Currently that is only the DISMISS button
// on reminder DMs: pressing it collapses the reminder in place.
func RegisterInteractionHandlers(s *discordgo.Session, logger *logrus.Entry) {
	s.AddHandler(func(sess *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionMessageComponent {
			return
		}
		customID := i.MessageComponentData().CustomID
		if !strings.HasPrefix(customID, dismissPrefix) {
			return
		}

		err := sess.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Content:    "Reminder dismissed.",
				Components: []discordgo.MessageComponent{},
			},
		})
		if err != nil {
			logger.Debugf("Failed to acknowledge dismiss for %s: %v", customID, err)
		}
	})
}
