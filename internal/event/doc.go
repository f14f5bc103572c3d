// Package event provides the showing record emitted for each screening on the
// Slieker Film program page, together with the Dutch date parser that turns
// listing text into venue-local timestamps.
//
// Listing dates carry no year ("za 12 oktober"), so ParseDate infers it from
// the current date: a day earlier in the year than today belongs to next year.
package event
