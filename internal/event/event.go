package event

import (
	"time"

	"github.com/google/uuid"
)

// uidNamespace scopes event IDs to the venue so they never collide with
// UUIDs generated by other calendars.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://sliekerfilm.nl/"))

// Event represents one scheduled showing of a film
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	URL         string    `json:"url"`
	Description string    `json:"description,omitempty"`
	SoldOut     bool      `json:"sold_out,omitempty"`
	Runtime     int       `json:"runtime_minutes,omitempty"` // 0 when unknown
}

// GenerateID creates a deterministic ID for a showing from its detail URL and start time
func GenerateID(url string, start time.Time) string {
	return uuid.NewSHA1(uidNamespace, []byte(url+"|"+start.UTC().Format(time.RFC3339))).String()
}

// NewEvent creates a new Event. End is start plus the runtime in minutes; a
// non-positive runtime leaves End equal to Start.
func NewEvent(title string, start time.Time, runtime int, url, description string, soldOut bool) *Event {
	if runtime < 0 {
		runtime = 0
	}
	return &Event{
		ID:          GenerateID(url, start),
		Title:       title,
		Start:       start,
		End:         start.Add(time.Duration(runtime) * time.Minute),
		URL:         url,
		Description: description,
		SoldOut:     soldOut,
		Runtime:     runtime,
	}
}

// Duration returns the length of the showing
func (e *Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}
