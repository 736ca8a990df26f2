package command

import (
	"log/slog"
	"reflect"

	"github.com/bwmarrin/discordgo"
)

// Registry holds the process's commands in registration order and
// routes incoming interactions to their callbacks. It replaces any
// notion of package-level command state; the application owns exactly
// one and ties its lifetime to startup.
type Registry struct {
	byName  map[string]*Command
	ordered []*Command
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Command)}
}

// Register adds a command. The first registration of a name wins.
func (r *Registry) Register(cmd *Command) {
	if _, ok := r.byName[cmd.Name]; ok {
		return
	}
	r.byName[cmd.Name] = cmd
	r.ordered = append(r.ordered, cmd)
}

// Lookup returns the command registered under name, or nil.
func (r *Registry) Lookup(name string) *Command {
	return r.byName[name]
}

// Commands returns the registered commands in registration order.
func (r *Registry) Commands() []*Command {
	return r.ordered
}

// Handle routes an application command interaction to its callback,
// resolving received option values through rv first.
func (r *Registry) Handle(s Session, i *discordgo.InteractionCreate, rv Resolver) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	cmd := r.byName[data.Name]
	if cmd == nil {
		return
	}

	ctx := &Context{Session: s, Interaction: i, Ephemeral: cmd.Ephemeral}

	if cmd.Check != nil && !cmd.Check(ctx) {
		return
	}

	values, err := ResolveOptions(i.GuildID, cmd.Options, data.Options, rv)
	if err != nil {
		slog.Error("Failed to resolve command options", "command", cmd.Name, "error", err)
		if err := ctx.RespondEphemeral("Invalid option value."); err != nil {
			slog.Error("Failed to respond to interaction", "command", cmd.Name, "error", err)
		}
		return
	}

	invoke(cmd, ctx, values)
}

// HandleFunc adapts Handle to discordgo.Session.AddHandler.
func (r *Registry) HandleFunc(rv Resolver) func(*discordgo.Session, *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		r.Handle(s, i, rv)
	}
}

// invoke calls the command callback with the resolved values laid out
// positionally. Parameters that were skipped at build time, unset
// optionals without a default, and unresolved mentionables all receive
// their zero value.
func invoke(cmd *Command, ctx *Context, values map[string]any) {
	fv := reflect.ValueOf(cmd.Callback)
	ft := fv.Type()

	args := make([]reflect.Value, ft.NumIn())
	args[0] = reflect.ValueOf(ctx)

	for i := 1; i < ft.NumIn(); i++ {
		pt := ft.In(i)
		args[i] = reflect.Zero(pt)

		if i-1 >= len(cmd.bindings) {
			continue
		}
		binding := cmd.bindings[i-1]
		if binding.skipped {
			continue
		}

		value := values[binding.optionName]
		if value == nil {
			continue
		}

		rv := reflect.ValueOf(value)
		if rv.Type() != pt {
			if !rv.Type().ConvertibleTo(pt) {
				slog.Error("Resolved option value does not fit callback parameter",
					"command", cmd.Name, "option", binding.optionName,
					"have", rv.Type().String(), "want", pt.String())
				continue
			}
			rv = rv.Convert(pt)
		}
		args[i] = rv
	}

	fv.Call(args)
}
