package events

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
)

type fakeDispatcher struct {
	response []byte
	err      error

	method string
	url    string
	data   any
	calls  int
}

func (d *fakeDispatcher) Request(method, url string, data any, options ...discordgo.RequestOption) ([]byte, error) {
	d.method = method
	d.url = url
	d.data = data
	d.calls++
	return d.response, d.err
}

const wireEvent = `{
	"id": "1001", "guild_id": "42", "name": "Meetup",
	"scheduled_start_time": "2026-09-01T18:00:00Z",
	"privacy_level": 2, "status": 1, "entity_type": 3,
	"entity_metadata": {"location": "Park"}
}`

func TestClient_List(t *testing.T) {
	d := &fakeDispatcher{response: []byte(`[` + wireEvent + `]`)}
	client := NewClient(d)

	evs, err := client.List(context.Background(), "42", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.method != "GET" {
		t.Errorf("method: expected GET, got %s", d.method)
	}
	if !strings.Contains(d.url, "/guilds/42/scheduled-events") {
		t.Errorf("url: expected scheduled-events route, got %s", d.url)
	}
	if !strings.Contains(d.url, "with_user_count=true") {
		t.Errorf("url: expected with_user_count=true, got %s", d.url)
	}
	if d.data != nil {
		t.Errorf("GET must not carry a body, got %v", d.data)
	}
	if len(evs) != 1 || evs[0].ID != "1001" {
		t.Errorf("expected one event 1001, got %+v", evs)
	}
	if d.calls != 1 {
		t.Errorf("expected exactly one request, got %d", d.calls)
	}
}

func TestClient_Create_ExternalEvent(t *testing.T) {
	d := &fakeDispatcher{response: []byte(wireEvent)}
	client := NewClient(d)

	end := time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC)
	ev, err := client.Create(context.Background(), "42", CreateParams{
		Name:           "Meetup",
		PrivacyLevel:   PrivacyLevelGuildOnly,
		StartTime:      time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC),
		EndTime:        &end,
		EntityType:     EntityTypeExternal,
		EntityMetadata: &EntityMetadata{Location: "Park"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.method != "POST" {
		t.Errorf("method: expected POST, got %s", d.method)
	}

	body, ok := d.data.(map[string]any)
	if !ok {
		t.Fatalf("expected map body, got %T", d.data)
	}
	meta, ok := body["entity_metadata"].(*EntityMetadata)
	if !ok || meta.Location != "Park" {
		t.Errorf("entity_metadata: expected location Park, got %v", body["entity_metadata"])
	}
	if _, present := body["channel_id"]; present {
		t.Error("channel_id must not be sent for external events")
	}

	if ev.Name != "Meetup" || ev.EntityMetadata.Location != "Park" {
		t.Errorf("decoded event mismatch: %+v", ev)
	}
}

func TestClient_Fetch_NotFoundPassesThrough(t *testing.T) {
	restErr := &discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusNotFound, Status: "404 Not Found"},
	}
	d := &fakeDispatcher{err: restErr}
	client := NewClient(d)

	_, err := client.Fetch(context.Background(), "42", "1001")
	if err == nil {
		t.Fatal("expected error")
	}

	var got *discordgo.RESTError
	if !errors.As(err, &got) || got != restErr {
		t.Errorf("transport error must pass through unchanged, got %v", err)
	}
	if !strings.Contains(d.url, "/guilds/42/scheduled-events/1001") {
		t.Errorf("url: got %s", d.url)
	}
}

func TestClient_Edit_EmptyParamsSendsEmptyBody(t *testing.T) {
	d := &fakeDispatcher{response: []byte(wireEvent)}
	client := NewClient(d)

	if _, err := client.Edit(context.Background(), "42", "1001", EditParams{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.method != "PATCH" {
		t.Errorf("method: expected PATCH, got %s", d.method)
	}
	body, ok := d.data.(map[string]any)
	if !ok {
		t.Fatalf("expected map body, got %T", d.data)
	}
	if len(body) != 0 {
		t.Errorf("expected empty update body, got %v", body)
	}
}

func TestClient_Delete(t *testing.T) {
	d := &fakeDispatcher{}
	client := NewClient(d)

	if err := client.Delete(context.Background(), "42", "1001"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.method != "DELETE" {
		t.Errorf("method: expected DELETE, got %s", d.method)
	}
	if !strings.Contains(d.url, "/guilds/42/scheduled-events/1001") {
		t.Errorf("url: got %s", d.url)
	}
	if d.data != nil {
		t.Errorf("DELETE must not carry a body, got %v", d.data)
	}
}

const wireEventUsers = `[
	{"user": {"id": "7", "username": "alice"}, "member": {"nick": "Al", "roles": ["1"]}},
	{"user": {"id": "8", "username": "bob"}}
]`

func TestClient_FetchUsers_WithoutMember(t *testing.T) {
	d := &fakeDispatcher{response: []byte(wireEventUsers)}
	client := NewClient(d)

	users, err := client.FetchUsers(context.Background(), "42", "1001", UsersParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(d.url, "limit=100") {
		t.Errorf("url: expected default limit 100, got %s", d.url)
	}
	if !strings.Contains(d.url, "with_member=false") {
		t.Errorf("url: expected with_member=false, got %s", d.url)
	}

	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	for _, u := range users {
		// Member data in the payload must be ignored when not requested.
		if u.Member != nil {
			t.Errorf("member must not be constructed without with_member, got %+v", u.Member)
		}
	}
	if users[0].User.Username != "alice" || users[1].User.Username != "bob" {
		t.Errorf("expected payload order preserved, got %+v", users)
	}
}

func TestClient_FetchUsers_WithMember(t *testing.T) {
	d := &fakeDispatcher{response: []byte(wireEventUsers)}
	client := NewClient(d)

	users, err := client.FetchUsers(context.Background(), "42", "1001", UsersParams{
		Limit:      25,
		WithMember: true,
		After:      "5",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(d.url, "limit=25") {
		t.Errorf("url: expected limit=25, got %s", d.url)
	}
	if !strings.Contains(d.url, "with_member=true") {
		t.Errorf("url: expected with_member=true, got %s", d.url)
	}
	if !strings.Contains(d.url, "after=5") {
		t.Errorf("url: expected after cursor, got %s", d.url)
	}
	if strings.Contains(d.url, "before=") {
		t.Errorf("url: before cursor must be absent, got %s", d.url)
	}

	if users[0].Member == nil {
		t.Fatal("expected member for first user")
	}
	if users[0].Member.Nick != "Al" {
		t.Errorf("member nick: got %s", users[0].Member.Nick)
	}
	if users[0].Member.User == nil || users[0].Member.User.ID != "7" {
		t.Errorf("member must carry its user, got %+v", users[0].Member.User)
	}
	if users[0].Member.GuildID != "42" {
		t.Errorf("member guild: got %s", users[0].Member.GuildID)
	}
	if users[1].Member != nil {
		t.Errorf("second user has no member payload, got %+v", users[1].Member)
	}
}
