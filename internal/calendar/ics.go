package calendar

import (
	"fmt"
	"strings"
	"sync"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/spf13/afero"

	"github.com/pfrederiksen/slieker-ics/internal/event"
)

const (
	DefaultOutput = "out.ics"
	ProductID     = "-//Slieker Film//slieker-ics//NL"
	VenueName     = "Slieker Film, Leeuwarden"
	uidDomain     = "sliekerfilm.nl"
	soldOutNote   = "Uitverkocht"
)

// Emitter accumulates events and serialises them as one calendar.
// Add may be called from multiple goroutines.
type Emitter struct {
	mu     sync.Mutex
	name   string
	loc    *time.Location
	now    func() time.Time
	events []*event.Event
}

// New creates an Emitter for a calendar called name in the venue time zone loc
func New(name string, loc *time.Location) *Emitter {
	if loc == nil {
		loc = time.Local
	}
	return &Emitter{
		name: name,
		loc:  loc,
		now:  time.Now,
	}
}

// Add appends one event
func (e *Emitter) Add(evt *event.Event) {
	if evt == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, evt)
}

// Len returns the number of events added so far
func (e *Emitter) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.events)
}

// Events returns a copy of the added events ordered by start time
func (e *Emitter) Events() []*event.Event {
	e.mu.Lock()
	events := make([]*event.Event, len(e.events))
	copy(events, e.events)
	e.mu.Unlock()

	event.SortByStart(events)
	return events
}

// Calendar builds the iCalendar representation of all events
func (e *Emitter) Calendar() *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ProductID)
	if e.name != "" {
		cal.SetXWRCalName(e.name)
	}
	cal.SetXWRTimezone(e.loc.String())

	stamp := e.now().UTC()
	for _, evt := range e.Events() {
		vevent := cal.AddEvent(fmt.Sprintf("%s@%s", evt.ID, uidDomain))
		vevent.SetDtStampTime(stamp)
		vevent.SetStartAt(evt.Start.In(e.loc))
		vevent.SetEndAt(evt.End.In(e.loc))
		vevent.SetSummary(evt.Title)
		vevent.SetURL(evt.URL)
		vevent.SetLocation(VenueName)
		if desc := description(evt); desc != "" {
			vevent.SetDescription(desc)
		}
	}

	return cal
}

// Serialize returns the calendar in iCalendar wire format
func (e *Emitter) Serialize() string {
	return e.Calendar().Serialize()
}

// WriteFile writes the serialised calendar to path on fs
func (e *Emitter) WriteFile(fs afero.Fs, path string) error {
	if path == "" {
		path = DefaultOutput
	}
	if err := afero.WriteFile(fs, path, []byte(e.Serialize()), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// description combines the sold-out flag and the tag description
func description(evt *event.Event) string {
	parts := make([]string, 0, 2)
	if evt.SoldOut {
		parts = append(parts, soldOutNote)
	}
	if evt.Description != "" {
		parts = append(parts, evt.Description)
	}
	return strings.Join(parts, "\n")
}
