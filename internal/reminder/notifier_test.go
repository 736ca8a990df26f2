package reminder

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
)

type mockChannelSender struct {
	ChannelMessageSendFunc func(channelID, content string) (*discordgo.Message, error)

	channelID string
	content   string
}

func (m *mockChannelSender) ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.channelID = channelID
	m.content = content
	if m.ChannelMessageSendFunc != nil {
		return m.ChannelMessageSendFunc(channelID, content)
	}
	return &discordgo.Message{}, nil
}

func TestDiscordNotifier_Announce(t *testing.T) {
	sender := &mockChannelSender{}
	n := NewDiscordNotifier(sender)

	if err := n.Announce("555", "starting soon"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.channelID != "555" || sender.content != "starting soon" {
		t.Errorf("message not forwarded, got (%s, %s)", sender.channelID, sender.content)
	}
}

func TestDiscordNotifier_AnnounceError(t *testing.T) {
	sender := &mockChannelSender{
		ChannelMessageSendFunc: func(channelID, content string) (*discordgo.Message, error) {
			return nil, errors.New("missing access")
		},
	}
	n := NewDiscordNotifier(sender)

	if err := n.Announce("555", "starting soon"); err == nil {
		t.Error("expected send error to propagate")
	}
}
