package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"

	"github.com/pfrederiksen/slieker-ics/internal/calendar"
	"github.com/pfrederiksen/slieker-ics/internal/event"
)

func main() {
	loc, err := time.LoadLocation("Europe/Amsterdam")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading timezone: %v\n", err)
		os.Exit(1)
	}

	// Sample showings: one regular, one sold out, one without a known runtime
	start := time.Now().In(loc).Truncate(time.Hour).Add(24 * time.Hour)
	cal := calendar.New("Slieker (sample)", loc)
	cal.Add(event.NewEvent("Perfect Days", start, 124, "https://sliekerfilm.nl/film/perfect-days/", "Last chance", false))
	cal.Add(event.NewEvent("Anatomie d'une chute", start.Add(24*time.Hour), 151, "https://sliekerfilm.nl/film/anatomie-dune-chute/", "", true))
	cal.Add(event.NewEvent("Past Lives", start.Add(48*time.Hour), 0, "https://sliekerfilm.nl/film/past-lives/", "One-time showing", false))

	filename := "test-slieker.ics"
	if err := cal.WriteFile(afero.NewOsFs(), filename); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated calendar file: %s\n\n", filename)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app (double-click)")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(cal.Serialize())
}
