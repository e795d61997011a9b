package http

import (
	"net/http"

	"github.com/tuanvumaihuynh/chicken-vending/internal/apperr"
)

func (s *Service) Health(w http.ResponseWriter, r *http.Request) error {
	return s.writeJSON(w, r, http.StatusOK, statusResponse{Status: "ok"})
}

// Ready reports whether the database can be reached.
func (s *Service) Ready(w http.ResponseWriter, r *http.Request) error {
	if ok, err := s.healthChecker.IsHealthy(r.Context()); !ok || err != nil {
		return apperr.DatabaseUnavailableErr.WrapParent(err)
	}

	return s.writeJSON(w, r, http.StatusOK, statusResponse{Status: "ok"})
}
