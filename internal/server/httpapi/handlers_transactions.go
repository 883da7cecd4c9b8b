package httpapi

import (
	"net/http"
	"time"

	"gastor/internal/server/models"
	"gastor/internal/server/services"
)

type transactionRequest struct {
	Amount      float64    `json:"amount"`
	Kind        string     `json:"kind" validate:"required,oneof=income expense"`
	CategoryID  int64      `json:"category_id" validate:"required,gt=0"`
	Description string     `json:"description"`
	Timestamp   *time.Time `json:"timestamp"`
}

func (req *transactionRequest) toInput() services.TransactionInput {
	in := services.TransactionInput{
		Amount:      req.Amount,
		Kind:        models.Kind(req.Kind),
		CategoryID:  req.CategoryID,
		Description: req.Description,
	}
	if req.Timestamp != nil {
		in.Timestamp = req.Timestamp.UTC()
	}
	return in
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	result, err := s.ledger.ListTransactions(r.Context(), userFrom(r).ID, pageFrom(r))
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	if result == nil {
		result = []*models.Transaction{}
	}

	respondWithJSON(w, http.StatusOK, result)
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	tr, err := s.ledger.CreateTransaction(r.Context(), userFrom(r).ID, req.toInput())
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, tr)
}

func (s *Server) updateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	tr, err := s.ledger.UpdateTransaction(r.Context(), pathID(r), userFrom(r).ID, req.toInput())
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, tr)
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteTransaction(r.Context(), pathID(r), userFrom(r).ID); err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
