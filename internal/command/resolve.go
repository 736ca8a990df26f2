package command

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// Resolver looks up live guild entities by ID. *discordgo.State
// satisfies it; lookups hit the session's cache, never the network.
type Resolver interface {
	Member(guildID, userID string) (*discordgo.Member, error)
	Channel(channelID string) (*discordgo.Channel, error)
	Role(guildID, roleID string) (*discordgo.Role, error)
}

// ResolveOptions maps a received interaction's raw option values onto
// the command's declared options. Options absent from the payload take
// their declared Default. Malformed numeric values fail with a
// conversion error that propagates to the caller; nothing is retried
// or swallowed here.
func ResolveOptions(guildID string, declared []Option, received []*discordgo.ApplicationCommandInteractionDataOption, r Resolver) (map[string]any, error) {
	raw := make(map[string]any, len(received))
	for _, opt := range received {
		raw[opt.Name] = opt.Value
	}

	resolved := make(map[string]any, len(declared))
	for _, opt := range declared {
		value, ok := raw[opt.Name]
		if !ok {
			resolved[opt.Name] = opt.Default
			continue
		}

		coerced, err := resolveValue(guildID, opt, value, r)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", opt.Name, err)
		}
		resolved[opt.Name] = coerced
	}
	return resolved, nil
}

func resolveValue(guildID string, opt Option, value any, r Resolver) (any, error) {
	switch opt.Type {
	case discordgo.ApplicationCommandOptionString:
		if s, ok := value.(string); ok {
			return s, nil
		}
		return fmt.Sprint(value), nil

	case discordgo.ApplicationCommandOptionNumber:
		return toFloat(value)

	case discordgo.ApplicationCommandOptionBoolean:
		return toBool(value)

	case discordgo.ApplicationCommandOptionInteger:
		return toInt(value)

	case discordgo.ApplicationCommandOptionUser:
		id, err := snowflake(value)
		if err != nil {
			return nil, err
		}
		return r.Member(guildID, id)

	case discordgo.ApplicationCommandOptionChannel:
		id, err := snowflake(value)
		if err != nil {
			return nil, err
		}
		return r.Channel(id)

	case discordgo.ApplicationCommandOptionRole:
		id, err := snowflake(value)
		if err != nil {
			return nil, err
		}
		return r.Role(guildID, id)

	case discordgo.ApplicationCommandOptionMentionable:
		// Known limitation: mentionable values are not resolved.
		return nil, nil
	}

	// Unrecognized option types pass the raw value through unchanged.
	return value, nil
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		return 0, fmt.Errorf("cannot convert %T to number", value)
	}
}

func toInt(value any) (int64, error) {
	switch v := value.(type) {
	case float64:
		return int64(v), nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("cannot convert %T to integer", value)
	}
}

func toBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(v)
	default:
		return false, fmt.Errorf("cannot convert %T to boolean", value)
	}
}

// snowflake validates that an entity reference is a numeric ID as
// transmitted by Discord and returns it in string form.
func snowflake(value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("entity reference must be a string ID, got %T", value)
	}
	if _, err := strconv.ParseUint(s, 10, 64); err != nil {
		return "", fmt.Errorf("malformed entity ID %q: %w", s, err)
	}
	return s, nil
}
