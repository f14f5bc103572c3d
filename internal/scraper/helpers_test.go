package scraper

import (
	"net/http/httptest"

	"github.com/pfrederiksen/slieker-ics/internal/render"
)

func newHTTPRenderer(server *httptest.Server) render.Renderer {
	return render.NewHTTP(server.Client(), "slieker-ics/test")
}
