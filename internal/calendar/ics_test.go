package calendar

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/spf13/afero"

	"github.com/pfrederiksen/slieker-ics/internal/event"
)

func amsterdam(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Amsterdam")
	if err != nil {
		t.Fatalf("LoadLocation() error: %v", err)
	}
	return loc
}

func sampleEvents(loc *time.Location) []*event.Event {
	base := time.Date(2026, time.March, 15, 20, 30, 0, 0, loc)
	return []*event.Event{
		event.NewEvent("Perfect Days", base, 124, "https://sliekerfilm.nl/film/perfect-days/", "Last chance", false),
		event.NewEvent("Anatomie d'une chute", base.Add(-24*time.Hour), 151, "https://sliekerfilm.nl/film/anatomie/", "", true),
		event.NewEvent("Past Lives", base.Add(48*time.Hour), 0, "https://sliekerfilm.nl/film/past-lives/", "", false),
	}
}

func TestSerialize(t *testing.T) {
	loc := amsterdam(t)
	em := New("Slieker", loc)
	for _, evt := range sampleEvents(loc) {
		em.Add(evt)
	}

	out := em.Serialize()

	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + ProductID,
		"METHOD:PUBLISH",
		"X-WR-CALNAME:Slieker",
		"X-WR-TIMEZONE:Europe/Amsterdam",
		"BEGIN:VEVENT",
		"SUMMARY:Perfect Days",
		"DTSTAMP:",
		"DTSTART:20260315T193000Z", // 20:30 CET
		"DTEND:20260315T213400Z",   // +124 min
		"END:VEVENT",
		"END:VCALENDAR",
	}
	for _, field := range requiredFields {
		if !strings.Contains(out, field) {
			t.Errorf("calendar missing %q", field)
		}
	}

	if got := strings.Count(out, "BEGIN:VEVENT"); got != 3 {
		t.Errorf("BEGIN:VEVENT count = %d, want 3", got)
	}
	if !strings.Contains(out, "\r\n") {
		t.Error("calendar should use \\r\\n line endings")
	}
}

func TestSerialize_RoundTrip(t *testing.T) {
	loc := amsterdam(t)
	events := sampleEvents(loc)
	em := New("Slieker", loc)
	for _, evt := range events {
		em.Add(evt)
	}

	cal, err := ics.ParseCalendar(strings.NewReader(em.Serialize()))
	if err != nil {
		t.Fatalf("ParseCalendar() error: %v", err)
	}

	parsed := cal.Events()
	if len(parsed) != len(events) {
		t.Fatalf("parsed %d events, want %d", len(parsed), len(events))
	}

	byUID := make(map[string]*ics.VEvent, len(parsed))
	for _, ve := range parsed {
		uid := ve.GetProperty(ics.ComponentPropertyUniqueId).Value
		if _, dup := byUID[uid]; dup {
			t.Errorf("duplicate UID %s", uid)
		}
		byUID[uid] = ve
	}

	for _, evt := range events {
		ve, ok := byUID[fmt.Sprintf("%s@%s", evt.ID, uidDomain)]
		if !ok {
			t.Errorf("event %q missing from calendar", evt.Title)
			continue
		}

		start, err := ve.GetStartAt()
		if err != nil || !start.Equal(evt.Start) {
			t.Errorf("%s start = %v (%v), want %v", evt.Title, start, err, evt.Start)
		}
		end, err := ve.GetEndAt()
		if err != nil || !end.Equal(evt.End) {
			t.Errorf("%s end = %v (%v), want %v", evt.Title, end, err, evt.End)
		}
		if got := ve.GetProperty(ics.ComponentPropertySummary).Value; got != evt.Title {
			t.Errorf("summary = %q, want %q", got, evt.Title)
		}
		if got := ve.GetProperty(ics.ComponentPropertyUrl).Value; got != evt.URL {
			t.Errorf("url = %q, want %q", got, evt.URL)
		}
	}
}

func TestSerialize_Description(t *testing.T) {
	loc := amsterdam(t)
	em := New("Slieker", loc)
	for _, evt := range sampleEvents(loc) {
		em.Add(evt)
	}

	cal, err := ics.ParseCalendar(strings.NewReader(em.Serialize()))
	if err != nil {
		t.Fatalf("ParseCalendar() error: %v", err)
	}

	descriptions := make(map[string]string)
	for _, ve := range cal.Events() {
		summary := ve.GetProperty(ics.ComponentPropertySummary).Value
		if p := ve.GetProperty(ics.ComponentPropertyDescription); p != nil {
			descriptions[summary] = p.Value
		}
	}

	if got := descriptions["Perfect Days"]; !strings.Contains(got, "Last chance") {
		t.Errorf("Perfect Days description = %q, want Last chance", got)
	}
	if got := descriptions["Anatomie d'une chute"]; !strings.Contains(got, soldOutNote) {
		t.Errorf("sold-out description = %q, want %q", got, soldOutNote)
	}
	if _, ok := descriptions["Past Lives"]; ok {
		t.Error("event without tag or sold-out flag should have no description")
	}
}

func TestEvents_SortedByStart(t *testing.T) {
	loc := amsterdam(t)
	em := New("Slieker", loc)
	for _, evt := range sampleEvents(loc) {
		em.Add(evt)
	}

	events := em.Events()
	for i := 1; i < len(events); i++ {
		if events[i].Start.Before(events[i-1].Start) {
			t.Errorf("events not sorted: %v before %v", events[i-1].Start, events[i].Start)
		}
	}
	if events[0].Title != "Anatomie d'une chute" {
		t.Errorf("first event = %q, want the earliest showing", events[0].Title)
	}
}

func TestAdd_Concurrent(t *testing.T) {
	em := New("Slieker", time.UTC)
	base := time.Date(2026, time.March, 15, 20, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			em.Add(event.NewEvent(fmt.Sprintf("Film %d", i), base.Add(time.Duration(i)*time.Hour), 90, fmt.Sprintf("https://sliekerfilm.nl/film/%d/", i), "", false))
		}(i)
	}
	wg.Wait()

	if em.Len() != 50 {
		t.Errorf("Len() = %d, want 50", em.Len())
	}
	em.Add(nil)
	if em.Len() != 50 {
		t.Error("Add(nil) should be ignored")
	}
}

func TestSerialize_Empty(t *testing.T) {
	out := New("", time.UTC).Serialize()

	if !strings.Contains(out, "BEGIN:VCALENDAR") || !strings.Contains(out, "END:VCALENDAR") {
		t.Error("empty calendar should still be a valid VCALENDAR")
	}
	if strings.Contains(out, "BEGIN:VEVENT") {
		t.Error("empty calendar should have no events")
	}
	if strings.Contains(out, "X-WR-CALNAME:") {
		t.Error("should not include X-WR-CALNAME when name is empty")
	}
}

func TestWriteFile(t *testing.T) {
	loc := amsterdam(t)
	em := New("Slieker", loc)
	for _, evt := range sampleEvents(loc) {
		em.Add(evt)
	}

	fs := afero.NewMemMapFs()
	if err := em.WriteFile(fs, "programma.ics"); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	data, err := afero.ReadFile(fs, "programma.ics")
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if strings.Count(string(data), "BEGIN:VEVENT") != 3 {
		t.Errorf("written file does not hold 3 events")
	}
}

func TestWriteFile_DefaultPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := New("Slieker", time.UTC).WriteFile(fs, ""); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	if ok, _ := afero.Exists(fs, DefaultOutput); !ok {
		t.Errorf("expected %s to be written", DefaultOutput)
	}
}

func TestWriteFile_Failure(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	err := New("Slieker", time.UTC).WriteFile(fs, "out.ics")
	if err == nil {
		t.Fatal("WriteFile() on read-only fs expected error, got nil")
	}
	if !strings.Contains(err.Error(), "out.ics") {
		t.Errorf("error %v should name the destination", err)
	}
}
