package scraper

// CSS selectors for the program and detail pages
const (
	// Program page
	CardSelector    = ".card--film"
	HeadingSelector = ".card__heading"
	ProseSelector   = ".card__prose"
	OverlaySelector = ".card__overlay"
	StatusSelector  = ".card__status"
	TagSelector     = ".card__tag"

	// Detail page
	LengthSelector = ".movie__length"
)

// Localised markers on the program page
const (
	showtimeSeparator = " • "

	SoldOutMarker    = "Uitverkocht"
	LastChanceMarker = "Laatste kans"
	OneTimeMarker    = "Eenmalige vertoning"
)
