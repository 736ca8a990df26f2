package events

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// Dispatcher issues one Discord REST request and returns the raw JSON
// response. *discordgo.Session satisfies it; transport concerns such as
// rate limiting live behind it. Non-2xx responses surface as
// *discordgo.RESTError and pass through this package unchanged.
type Dispatcher interface {
	Request(method, url string, data any, options ...discordgo.RequestOption) ([]byte, error)
}

// Client is the CRUD facade over the guild scheduled events resource.
// Each method issues exactly one request; nothing is retried or cached.
type Client struct {
	d Dispatcher
}

func NewClient(d Dispatcher) *Client {
	return &Client{d: d}
}

// List returns the guild's scheduled events in the order the API
// returns them. When withUserCount is set, each event carries the
// number of subscribed users.
func (c *Client) List(ctx context.Context, guildID string, withUserCount bool) ([]ScheduledEvent, error) {
	endpoint := discordgo.EndpointGuildScheduledEvents(guildID) +
		"?with_user_count=" + strconv.FormatBool(withUserCount)

	resp, err := c.d.Request("GET", endpoint, nil, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return decodeEvents(resp)
}

// Create creates a scheduled event in the guild and returns the
// server's view of it.
func (c *Client) Create(ctx context.Context, guildID string, params CreateParams) (*ScheduledEvent, error) {
	resp, err := c.d.Request("POST", discordgo.EndpointGuildScheduledEvents(guildID),
		params.payload(), discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return decodeEvent(resp)
}

// Fetch returns a single scheduled event. A missing event surfaces as
// the transport's not-found error.
func (c *Client) Fetch(ctx context.Context, guildID, eventID string) (*ScheduledEvent, error) {
	resp, err := c.d.Request("GET", discordgo.EndpointGuildScheduledEvent(guildID, eventID),
		nil, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return decodeEvent(resp)
}

// Edit applies a partial update and returns the updated event. With
// zero supplied fields the request body is an empty object, which
// leaves the server state untouched.
func (c *Client) Edit(ctx context.Context, guildID, eventID string, params EditParams) (*ScheduledEvent, error) {
	resp, err := c.d.Request("PATCH", discordgo.EndpointGuildScheduledEvent(guildID, eventID),
		params.payload(), discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return decodeEvent(resp)
}

// Delete removes a scheduled event. The API responds with no content.
func (c *Client) Delete(ctx context.Context, guildID, eventID string) error {
	_, err := c.d.Request("DELETE", discordgo.EndpointGuildScheduledEvent(guildID, eventID),
		nil, discordgo.WithContext(ctx))
	return err
}

// EventUser is one subscriber of a scheduled event. Member is populated
// only when the users were fetched with member data.
type EventUser struct {
	User   *discordgo.User
	Member *discordgo.Member
}

type eventUserPayload struct {
	User   *discordgo.User `json:"user"`
	Member json.RawMessage `json:"member"`
}

// FetchUsers returns one page of users subscribed to the event. A zero
// limit falls back to the API default of 100.
func (c *Client) FetchUsers(ctx context.Context, guildID, eventID string, params UsersParams) ([]EventUser, error) {
	limit := params.Limit
	if limit == 0 {
		limit = 100
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("with_member", strconv.FormatBool(params.WithMember))
	if params.Before != "" {
		query.Set("before", params.Before)
	}
	if params.After != "" {
		query.Set("after", params.After)
	}
	endpoint := discordgo.EndpointGuildScheduledEventUsers(guildID, eventID) + "?" + query.Encode()

	resp, err := c.d.Request("GET", endpoint, nil, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	var payloads []eventUserPayload
	if err := json.Unmarshal(resp, &payloads); err != nil {
		return nil, fmt.Errorf("failed to decode scheduled event users: %w", err)
	}

	users := make([]EventUser, 0, len(payloads))
	for _, payload := range payloads {
		if payload.User == nil {
			return nil, fmt.Errorf("scheduled event user payload missing required field %q", "user")
		}
		entry := EventUser{User: payload.User}
		// Member data is decoded only on request, even when present.
		if params.WithMember && len(payload.Member) > 0 && string(payload.Member) != "null" {
			var member discordgo.Member
			if err := json.Unmarshal(payload.Member, &member); err != nil {
				return nil, fmt.Errorf("failed to decode scheduled event member: %w", err)
			}
			member.User = payload.User
			member.GuildID = guildID
			entry.Member = &member
		}
		users = append(users, entry)
	}
	return users, nil
}
