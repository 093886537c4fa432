package event

import (
	"strings"

	"github.com/google/uuid"
)

// namespace scopes event IDs so they never collide with other v5 UUIDs
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/pfrederiksen/city-events"))

// ID returns a deterministic identifier derived from the title and time text.
// The same listing yields the same ID across requests, which keeps calendar
// imports idempotent.
func (e Event) ID() string {
	key := strings.ToLower(strings.TrimSpace(e.Title)) + "|" + strings.TrimSpace(e.When)
	return uuid.NewSHA1(namespace, []byte(key)).String()
}
