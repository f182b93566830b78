// Package site serves the embedded signup page.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// IndexPath is where the root path redirects to.
const IndexPath = "/static/index.html"

// ErrServe is returned when the embedded page cannot be served.
var ErrServe = errors.New("static site serve failed")

// Register attaches the root redirect and the static file routes to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	root := NewRootHandler()
	mux.HandleFunc("GET /{$}", root.HandleRoot)
	mux.HandleFunc("GET "+IndexPath, root.HandleIndex)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(FS())))
}

// RootHandler sends browsers to the signup page.
type RootHandler struct{}

// NewRootHandler creates a new root handler.
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// HandleRoot handles GET / with a temporary redirect to the index page.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, IndexPath, http.StatusTemporaryRedirect)
}

// HandleIndex serves the index page directly. http.FileServer would redirect
// any path ending in index.html back to the directory.
func (h *RootHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, fmt.Errorf("%w: %w", ErrServe, err).Error(), http.StatusInternalServerError)
		return
	}
	http.ServeContent(w, r, "index.html", time.Time{}, bytes.NewReader(data))
}
