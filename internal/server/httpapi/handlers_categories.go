package httpapi

import (
	"net/http"
	"strconv"

	"gastor/internal/server/models"
	"gastor/internal/server/services"

	"github.com/gorilla/mux"
)

type categoryRequest struct {
	Name string `json:"name" validate:"required"`
	Kind string `json:"kind" validate:"required,oneof=income expense"`
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	result, err := s.ledger.ListCategories(r.Context(), userFrom(r).ID, pageFrom(r))
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	if result == nil {
		result = []*models.Category{}
	}

	respondWithJSON(w, http.StatusOK, result)
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	category, err := s.ledger.CreateCategory(r.Context(), userFrom(r).ID,
		services.CategoryInput{Name: req.Name, Kind: models.Kind(req.Kind)})
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, category)
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	category, err := s.ledger.UpdateCategory(r.Context(), pathID(r), userFrom(r).ID,
		services.CategoryInput{Name: req.Name, Kind: models.Kind(req.Kind)})
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, category)
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteCategory(r.Context(), pathID(r), userFrom(r).ID); err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathID reads the numeric {id} path variable. Routes constrain it to
// digits, so parse failures cannot reach handlers.
func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

// pageFrom reads offset/limit query parameters; invalid or missing values
// fall back to the service defaults.
func pageFrom(r *http.Request) services.Page {
	offset, _ := strconv.Atoi(r.FormValue("offset"))
	limit, _ := strconv.Atoi(r.FormValue("limit"))
	return services.Page{Offset: offset, Limit: limit}
}
