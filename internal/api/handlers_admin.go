package api

import "net/http"

func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := s.svc.Catalog.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	out := make([]songResponse, len(songs))
	for i, song := range songs {
		out[i] = toSongResponse(song)
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"songs": out})
}

func (s *Server) handleCreateSong(w http.ResponseWriter, r *http.Request) {
	var req songRequest
	if !s.decode(w, r, &req) {
		return
	}
	song := req.toDomain("")
	if err := s.svc.Catalog.Create(r.Context(), song); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toSongResponse(song))
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	song, err := s.svc.Catalog.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toSongResponse(song))
}

func (s *Server) handleUpdateSong(w http.ResponseWriter, r *http.Request) {
	var req songRequest
	if !s.decode(w, r, &req) {
		return
	}
	id := r.PathValue("id")
	if err := s.svc.Catalog.Update(r.Context(), req.toDomain(id)); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	song, err := s.svc.Catalog.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toSongResponse(song))
}

func (s *Server) handleDeleteSong(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Catalog.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListQuotes(w http.ResponseWriter, r *http.Request) {
	quotes, err := s.svc.Quotes.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	out := make([]quoteResponse, len(quotes))
	for i, q := range quotes {
		out[i] = toQuoteResponse(q)
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"quotes": out})
}

func (s *Server) handleCreateQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if !s.decode(w, r, &req) {
		return
	}
	q := req.toDomain("")
	if err := s.svc.Quotes.Create(r.Context(), q); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toQuoteResponse(q))
}

func (s *Server) handleGetQuote(w http.ResponseWriter, r *http.Request) {
	q, err := s.svc.Quotes.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toQuoteResponse(q))
}

func (s *Server) handleUpdateQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if !s.decode(w, r, &req) {
		return
	}
	id := r.PathValue("id")
	if err := s.svc.Quotes.Update(r.Context(), req.toDomain(id)); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	q, err := s.svc.Quotes.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toQuoteResponse(q))
}

func (s *Server) handleDeleteQuote(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Quotes.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
