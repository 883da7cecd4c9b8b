package httpapi

import (
	"net/http"
	"time"
)

func (s *Server) dashboardSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.dashboard.Summarize(r.Context(), userFrom(r).ID, time.Now())
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}
