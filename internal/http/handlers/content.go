package handlers

import (
	"net/http"

	"github.com/wolfman30/rollerup-site/internal/content"
)

// ContentHandler serves the static page catalogue.
type ContentHandler struct {
	catalogue content.Catalogue
}

func NewContentHandler(catalogue content.Catalogue) *ContentHandler {
	return &ContentHandler{catalogue: catalogue}
}

// GetContent handles GET /api/content.
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=300")
	writeJSON(w, http.StatusOK, h.catalogue)
}
