package api

import (
	"net/http"

	"github.com/alexanderramin/daybook/internal/service"
)

func (s *Server) handleGenerateEntry(w http.ResponseWriter, r *http.Request) {
	var req generateEntryRequest
	if !s.decode(w, r, &req) {
		return
	}
	date, err := parseEntryDate(req.EntryDate)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	entry, err := s.svc.Entries.GenerateEntry(r.Context(), userID(r), service.GenerateEntryInput{
		Moments:        req.moments(),
		Kind:           req.Kind,
		StyleReference: req.StyleReference,
		EntryDate:      date,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toEntryResponse(entry))
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.svc.Entries.ListEntries(r.Context(), userID(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	out := make([]entryResponse, len(entries))
	for i, e := range entries {
		out[i] = toEntryResponse(e)
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"entries": out})
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.svc.Entries.GetEntry(r.Context(), r.PathValue("id"), userID(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Entries.DeleteEntry(r.Context(), r.PathValue("id"), userID(r)); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	recs, err := s.svc.Recommendations.GetRecommendations(r.Context(), r.PathValue("id"), userID(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toRecommendationsResponse(recs))
}

func (s *Server) handleReact(w http.ResponseWriter, r *http.Request) {
	var req reactionRequest
	if !s.decode(w, r, &req) {
		return
	}
	rx, err := s.svc.Reactions.React(r.Context(), r.PathValue("id"), userID(r), service.ReactionInput{
		RecommendationType: req.RecommendationType,
		RecommendationID:   req.RecommendationID,
		Emoji:              req.Emoji,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toReactionResponse(*rx))
}

func (s *Server) handleListReactions(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Reactions.List(r.Context(), r.PathValue("id"), userID(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	out := make([]reactionResponse, len(list))
	for i, rx := range list {
		out[i] = toReactionResponse(rx)
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"reactions": out})
}
