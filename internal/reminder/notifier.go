package reminder

import (
	"github.com/bwmarrin/discordgo"

	"guild-event-manager/internal/metrics"
)

// ChannelSender is the slice of the Discord session the notifier needs.
type ChannelSender interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type DiscordNotifier struct {
	session ChannelSender
}

func NewDiscordNotifier(session ChannelSender) *DiscordNotifier {
	return &DiscordNotifier{session: session}
}

func (n *DiscordNotifier) Announce(channelID, message string) error {
	_, err := n.session.ChannelMessageSend(channelID, message)
	if err != nil {
		metrics.AnnouncementsSent.WithLabelValues("error").Inc()
		return err
	}
	metrics.AnnouncementsSent.WithLabelValues("success").Inc()
	return nil
}
