// Package cli implements the slieker-ics command.
//
// The command renders the Slieker Film program page, resolves each film's
// runtime, writes the showings to an iCalendar file (out.ics unless a path
// is given) and prints a summary. It exits non-zero when the program page
// cannot be scraped or the calendar cannot be written.
package cli
