// Package calendar collects scraped showings and writes them as an iCalendar
// document, one VEVENT per showing.
package calendar
