// Package scraper extracts showings from the Slieker Film program page.
//
// Every film card on the page yields at most one event: cards without a
// title, link or concrete showtime are skipped. Runtime comes from each
// film's detail page and is resolved concurrently; when it cannot be found
// the event is still emitted with its end equal to its start.
package scraper
