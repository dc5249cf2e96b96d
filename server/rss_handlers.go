package server

import (
	"net/http"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/quotetok/pkg/feed"
)

// rssSavedHandler serves saved quotes as RSS, optionally filtered with ?category=
func (s *Server) rssSavedHandler(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	generator := feed.NewGenerator(s.config.GetBaseURL())
	rss, err := generator.GenerateRSS(s.feed.Saved(), category)
	if err != nil {
		lgr.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		lgr.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}

// opmlHandler exports the feed-based corpus sources
func (s *Server) opmlHandler(w http.ResponseWriter, r *http.Request) {
	generator := feed.NewGenerator(s.config.GetBaseURL())
	opml, err := generator.GenerateOPML(s.config.GetCorpusSources())
	if err != nil {
		lgr.Printf("[ERROR] failed to generate OPML: %v", err)
		http.Error(w, "Failed to generate OPML", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/x-opml; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="quotetok-sources.opml"`)
	if _, err := w.Write([]byte(opml)); err != nil {
		lgr.Printf("[ERROR] failed to write OPML response: %v", err)
	}
}
