package scraper

import (
	"context"
	"errors"
	"testing"
)

func TestParseRuntime(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"Drama – Thriller – 102 min.", 102},
		{"Documentaire – 95 min", 95},
		{"Drama - 88 min", 88},
		{"Komedie — 101 min.", 101},
		{"Animatie–74min", 74},
		{"  Drama  –  120 min.  ", 120},
		{"Drama – 2023 – 97 min – Frankrijk", 97},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseRuntime(tt.text)
			if err != nil {
				t.Fatalf("ParseRuntime(%q) error: %v", tt.text, err)
			}
			if got != tt.want {
				t.Errorf("ParseRuntime(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseRuntime_FormatErrors(t *testing.T) {
	tests := []string{
		"Drama – 102",
		"Drama – 102 minuten",
		"102 min",
		"",
		"Drama – lang",
		"Drama – Thriller",
	}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			_, err := ParseRuntime(text)
			var formatErr *RuntimeFormatError
			if !errors.As(err, &formatErr) {
				t.Errorf("ParseRuntime(%q) error = %v, want *RuntimeFormatError", text, err)
			}
		})
	}
}

func TestResolveRuntime(t *testing.T) {
	r := newFakeRenderer()
	r.pages["https://sliekerfilm.nl/film/a/"] = `<div class="movie__length">Drama – Thriller – 102 min.</div>`
	r.pages["https://sliekerfilm.nl/film/b/"] = `<div class="movie__title">No length here</div>`
	r.pages["https://sliekerfilm.nl/film/c/"] = `<div class="movie__length">Drama – lang</div>`
	r.errs["https://sliekerfilm.nl/film/d/"] = errors.New("connection refused")

	s := New(r)
	ctx := context.Background()

	minutes, err := s.ResolveRuntime(ctx, "https://sliekerfilm.nl/film/a/")
	if err != nil || minutes != 102 {
		t.Errorf("ResolveRuntime(a) = %d, %v; want 102, nil", minutes, err)
	}

	var notFound *RuntimeNotFoundError
	if _, err := s.ResolveRuntime(ctx, "https://sliekerfilm.nl/film/b/"); !errors.As(err, &notFound) {
		t.Errorf("ResolveRuntime(b) error = %v, want *RuntimeNotFoundError", err)
	}

	var formatErr *RuntimeFormatError
	if _, err := s.ResolveRuntime(ctx, "https://sliekerfilm.nl/film/c/"); !errors.As(err, &formatErr) {
		t.Errorf("ResolveRuntime(c) error = %v, want *RuntimeFormatError", err)
	}

	if _, err := s.ResolveRuntime(ctx, "https://sliekerfilm.nl/film/d/"); err == nil {
		t.Error("ResolveRuntime(d) expected render error, got nil")
	}

	// Every failure becomes an unknown runtime
	for _, u := range []string{"b", "c", "d"} {
		if got := s.runtimeOrZero(ctx, "https://sliekerfilm.nl/film/"+u+"/"); got != 0 {
			t.Errorf("runtimeOrZero(%s) = %d, want 0", u, got)
		}
	}
	if got := s.metrics.Counter("runtime.unresolved"); got != 3 {
		t.Errorf("runtime.unresolved = %d, want 3", got)
	}
}
