// Package render turns a URL into a parsed HTML document.
//
// Two renderers are provided: HTTP fetches the raw markup with net/http, and
// Chrome loads the page in a shared headless browser with scripts and images
// disabled. Both return a goquery document whose Url is set, so relative
// links found in it can be resolved.
package render
