package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack-backend/internal/domain"
	"github.com/fintrack/fintrack-backend/internal/usecase/transfer"
)

type transferRequest struct {
	FromAccountID string `json:"from_account_id"`
	ToAccountID   string `json:"to_account_id"`
	Amount        string `json:"amount"`
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("invalid request body"))
		return
	}

	from, err := uuid.Parse(req.FromAccountID)
	if err != nil {
		writeError(w, domain.NewValidationError("invalid from_account_id format"))
		return
	}
	to, err := uuid.Parse(req.ToAccountID)
	if err != nil {
		writeError(w, domain.NewValidationError("invalid to_account_id format"))
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, domain.NewValidationError("invalid amount format"))
		return
	}

	err = s.TransferService.Transfer(r.Context(), transfer.TransferInput{
		OwnerID:       ownerFrom(r.Context()),
		FromAccountID: from,
		ToAccountID:   to,
		Amount:        amount,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
