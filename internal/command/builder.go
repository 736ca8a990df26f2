package command

import (
	"fmt"
	"log/slog"
	"reflect"
	"runtime"
	"strings"
	"unicode"

	"github.com/bwmarrin/discordgo"
)

// DefaultDescription is used for commands and options declared without one.
const DefaultDescription = "No description yet"

// Field configures one callback parameter when building a command. The
// fields slice passed to New aligns positionally with the callback's
// parameters after the leading *Context, including parameters that end
// up skipped.
type Field struct {
	// Name is the option name. Go reflection cannot recover parameter
	// names, so it must be supplied for every recognized parameter.
	Name         string
	Description  string
	Required     bool
	Choices      []Choice
	Default      any
	MinValue     *float64
	MaxValue     *float64
	Autocomplete bool
	ChannelTypes []discordgo.ChannelType
}

var (
	contextType     = reflect.TypeOf((*Context)(nil))
	memberType      = reflect.TypeOf((*discordgo.Member)(nil))
	channelType     = reflect.TypeOf((*discordgo.Channel)(nil))
	roleType        = reflect.TypeOf((*discordgo.Role)(nil))
	mentionableType = reflect.TypeOf((*Mentionable)(nil)).Elem()
)

// New builds a Command from a callback of the form
//
//	func(ctx *Context, <typed parameters...>)
//
// without invoking it. The command name defaults to the callback's
// function name in kebab case; the description defaults to
// DefaultDescription. Both can be overwritten on the returned Command
// before registration.
//
// Parameters map to option types by their Go type: bool -> BOOLEAN,
// string -> STRING, integers -> INTEGER, floats -> NUMBER,
// *discordgo.Member -> USER, *discordgo.Channel -> CHANNEL,
// *discordgo.Role -> ROLE, Mentionable -> MENTIONABLE. A parameter of
// any other type produces no option and receives its zero value at
// dispatch; it still consumes its Field slot.
func New(callback any, fields ...Field) (*Command, error) {
	fv := reflect.ValueOf(callback)
	if fv.Kind() != reflect.Func {
		return nil, fmt.Errorf("callback must be a func, got %T", callback)
	}
	ft := fv.Type()
	if ft.NumIn() == 0 || ft.In(0) != contextType {
		return nil, fmt.Errorf("callback must take *command.Context as its first parameter")
	}
	if n := ft.NumIn() - 1; len(fields) > n {
		return nil, fmt.Errorf("%d fields supplied for %d callback parameters", len(fields), n)
	}

	cmd := &Command{
		Type:        discordgo.ChatApplicationCommand,
		Name:        callbackName(fv),
		Description: DefaultDescription,
		Callback:    callback,
	}

	for i := 1; i < ft.NumIn(); i++ {
		var field Field
		if i-1 < len(fields) {
			field = fields[i-1]
		}

		opt, ok, err := buildOption(ft.In(i), field)
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", i-1, err)
		}
		if !ok {
			// Deliberate degradation: unrecognized parameter types are
			// dropped from the schema rather than rejected.
			slog.Debug("Skipping command parameter of unsupported type",
				"command", cmd.Name, "type", ft.In(i).String())
			cmd.bindings = append(cmd.bindings, paramBinding{skipped: true})
			continue
		}
		cmd.bindings = append(cmd.bindings, paramBinding{optionName: opt.Name})
		cmd.Options = append(cmd.Options, opt)
	}

	return cmd, nil
}

func buildOption(pt reflect.Type, field Field) (Option, bool, error) {
	var optType discordgo.ApplicationCommandOptionType
	scalar := false  // may carry choices
	numeric := false // may carry min/max bounds

	// Boolean is matched before the integer kinds on purpose, so a
	// bool parameter can never come out as INTEGER.
	switch {
	case pt.Kind() == reflect.Bool:
		optType = discordgo.ApplicationCommandOptionBoolean
	case pt.Kind() == reflect.String:
		optType = discordgo.ApplicationCommandOptionString
		scalar = true
	case isIntegerKind(pt.Kind()):
		optType = discordgo.ApplicationCommandOptionInteger
		scalar, numeric = true, true
	case pt.Kind() == reflect.Float32 || pt.Kind() == reflect.Float64:
		optType = discordgo.ApplicationCommandOptionNumber
		scalar, numeric = true, true
	case pt == memberType:
		optType = discordgo.ApplicationCommandOptionUser
	case pt == channelType:
		optType = discordgo.ApplicationCommandOptionChannel
	case pt == roleType:
		optType = discordgo.ApplicationCommandOptionRole
	case pt == mentionableType:
		optType = discordgo.ApplicationCommandOptionMentionable
	default:
		return Option{}, false, nil
	}

	if field.Name == "" {
		return Option{}, false, fmt.Errorf("field name is required for %s parameter", pt.String())
	}

	description := field.Description
	if description == "" {
		description = DefaultDescription
	}

	opt := Option{
		Type:         optType,
		Name:         field.Name,
		Description:  description,
		Required:     field.Required,
		Autocomplete: field.Autocomplete,
		Default:      field.Default,
	}
	if scalar {
		opt.Choices = field.Choices
	}
	if numeric {
		opt.MinValue = field.MinValue
		opt.MaxValue = field.MaxValue
	}
	if optType == discordgo.ApplicationCommandOptionChannel {
		opt.ChannelTypes = field.ChannelTypes
	}
	return opt, true, nil
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

// callbackName derives a kebab-case command name from the callback's
// function name, e.g. (*BotHandler).EventList -> "event-list".
func callbackName(fv reflect.Value) string {
	full := runtime.FuncForPC(fv.Pointer()).Name()
	name := full[strings.LastIndex(full, ".")+1:]
	name = strings.TrimSuffix(name, "-fm") // method value suffix

	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
