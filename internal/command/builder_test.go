package command

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func EventList(ctx *Context) {}

func TestNew_DerivesKebabCaseName(t *testing.T) {
	cmd, err := New(EventList)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Name != "event-list" {
		t.Errorf("name: expected event-list, got %s", cmd.Name)
	}
	if cmd.Description != DefaultDescription {
		t.Errorf("description: expected default, got %s", cmd.Description)
	}
	if cmd.Type != discordgo.ChatApplicationCommand {
		t.Errorf("type: got %d", cmd.Type)
	}
	if len(cmd.Options) != 0 {
		t.Errorf("expected no options, got %d", len(cmd.Options))
	}
}

type handlerSet struct{}

func (handlerSet) EventCreate(ctx *Context, name string) {}

func TestNew_MethodValueName(t *testing.T) {
	cmd, err := New(handlerSet{}.EventCreate, Field{Name: "name"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Name != "event-create" {
		t.Errorf("name: expected event-create, got %s", cmd.Name)
	}
}

func TestNew_ParameterTypeMapping(t *testing.T) {
	cb := func(ctx *Context, s string, n int64, f float64, b bool,
		m *discordgo.Member, ch *discordgo.Channel, role *discordgo.Role, who Mentionable) {
	}

	cmd, err := New(cb,
		Field{Name: "s"}, Field{Name: "n"}, Field{Name: "f"}, Field{Name: "b"},
		Field{Name: "m"}, Field{Name: "ch"}, Field{Name: "role"}, Field{Name: "who"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []discordgo.ApplicationCommandOptionType{
		discordgo.ApplicationCommandOptionString,
		discordgo.ApplicationCommandOptionInteger,
		discordgo.ApplicationCommandOptionNumber,
		discordgo.ApplicationCommandOptionBoolean,
		discordgo.ApplicationCommandOptionUser,
		discordgo.ApplicationCommandOptionChannel,
		discordgo.ApplicationCommandOptionRole,
		discordgo.ApplicationCommandOptionMentionable,
	}
	if len(cmd.Options) != len(want) {
		t.Fatalf("expected %d options, got %d", len(want), len(cmd.Options))
	}
	for i, opt := range cmd.Options {
		if opt.Type != want[i] {
			t.Errorf("option %d (%s): expected type %d, got %d", i, opt.Name, want[i], opt.Type)
		}
	}
}

func TestNew_BoolNeverBecomesInteger(t *testing.T) {
	cb := func(ctx *Context, count int64, loud bool) {}

	cmd, err := New(cb, Field{Name: "count"}, Field{Name: "loud"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cmd.Options[0].Type != discordgo.ApplicationCommandOptionInteger {
		t.Errorf("count: expected INTEGER, got %d", cmd.Options[0].Type)
	}
	if cmd.Options[1].Type != discordgo.ApplicationCommandOptionBoolean {
		t.Errorf("loud: expected BOOLEAN, got %d", cmd.Options[1].Type)
	}
}

func TestNew_SkipsUnrecognizedTypes(t *testing.T) {
	type custom struct{ x int }
	cb := func(ctx *Context, name string, extra custom, limit int64) {}

	cmd, err := New(cb, Field{Name: "name"}, Field{}, Field{Name: "limit"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cmd.Options) != 2 {
		t.Fatalf("expected skipped parameter to produce no option, got %d options", len(cmd.Options))
	}
	if cmd.Options[0].Name != "name" || cmd.Options[1].Name != "limit" {
		t.Errorf("expected [name limit], got [%s %s]", cmd.Options[0].Name, cmd.Options[1].Name)
	}
	if len(cmd.bindings) != 3 {
		t.Fatalf("expected 3 bindings, got %d", len(cmd.bindings))
	}
	if !cmd.bindings[1].skipped {
		t.Error("second parameter should be marked skipped")
	}
}

func TestNew_FieldAttributes(t *testing.T) {
	min, max := 1.0, 100.0
	cb := func(ctx *Context, limit int64, channel *discordgo.Channel) {}

	cmd, err := New(cb,
		Field{
			Name:        "limit",
			Description: "How many",
			Required:    true,
			Default:     int64(10),
			MinValue:    &min,
			MaxValue:    &max,
			Choices:     []Choice{{Name: "few", Value: 5}},
		},
		Field{
			Name:         "channel",
			ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
			MinValue:     &min, // not a numeric option, must be dropped
		},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	limit := cmd.Options[0]
	if limit.Description != "How many" || !limit.Required {
		t.Errorf("limit attributes not carried: %+v", limit)
	}
	if limit.Default != int64(10) {
		t.Errorf("limit default: got %v", limit.Default)
	}
	if limit.MinValue == nil || *limit.MinValue != 1 || limit.MaxValue == nil || *limit.MaxValue != 100 {
		t.Errorf("limit bounds not carried: %+v", limit)
	}
	if len(limit.Choices) != 1 || limit.Choices[0].Name != "few" {
		t.Errorf("limit choices not carried: %+v", limit.Choices)
	}

	channel := cmd.Options[1]
	if len(channel.ChannelTypes) != 1 || channel.ChannelTypes[0] != discordgo.ChannelTypeGuildText {
		t.Errorf("channel types not carried: %+v", channel.ChannelTypes)
	}
	if channel.MinValue != nil {
		t.Error("channel option must not carry numeric bounds")
	}
	if channel.Description != DefaultDescription {
		t.Errorf("channel description: expected default, got %s", channel.Description)
	}
}

func TestNew_Errors(t *testing.T) {
	t.Run("not a func", func(t *testing.T) {
		if _, err := New("nope"); err == nil {
			t.Error("expected error for non-func callback")
		}
	})

	t.Run("missing context parameter", func(t *testing.T) {
		if _, err := New(func(name string) {}); err == nil {
			t.Error("expected error for callback without *Context")
		}
	})

	t.Run("too many fields", func(t *testing.T) {
		if _, err := New(func(ctx *Context) {}, Field{Name: "extra"}); err == nil {
			t.Error("expected error for surplus fields")
		}
	})

	t.Run("recognized parameter without a name", func(t *testing.T) {
		if _, err := New(func(ctx *Context, name string) {}); err == nil {
			t.Error("expected error for unnamed string parameter")
		}
	})
}
