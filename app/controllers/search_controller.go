package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"instakilo/app/services"
)

// SearchController serves the typeahead and posts-by-key read paths of the
// two reverse indexes.
type SearchController struct {
	hashtags  *services.ReverseIndexService
	locations *services.ReverseIndexService
}

func NewSearchController(hashtags, locations *services.ReverseIndexService) *SearchController {
	return &SearchController{hashtags: hashtags, locations: locations}
}

// HashTags handles GET /hashtags?q=: matching tag suggestions.
func (sc *SearchController) HashTags(w http.ResponseWriter, r *http.Request) {
	suggestions, err := sc.hashtags.Search(r.URL.Query().Get("q"))
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]any{"success": true, "hashTags": suggestions})
}

// Locations handles GET /locations?q=: matching place suggestions.
func (sc *SearchController) Locations(w http.ResponseWriter, r *http.Request) {
	suggestions, err := sc.locations.Search(r.URL.Query().Get("q"))
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]any{"success": true, "locations": suggestions})
}

// HashTagPosts handles GET /hashtags/{tag}: the post references under one
// tag. References may point at posts that no longer resolve; callers must
// tolerate that.
func (sc *SearchController) HashTagPosts(w http.ResponseWriter, r *http.Request) {
	entry, err := sc.hashtags.Entry(mux.Vars(r)["tag"])
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]any{"success": true, "posts": entry.Posts})
}

// LocationPosts handles GET /locations/{placeId}.
func (sc *SearchController) LocationPosts(w http.ResponseWriter, r *http.Request) {
	entry, err := sc.locations.Entry(mux.Vars(r)["placeId"])
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"posts":   entry.Posts,
		"place":   entry.Place,
	})
}
