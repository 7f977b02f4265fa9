package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack-backend/internal/domain"
	"github.com/fintrack/fintrack-backend/internal/usecase/account"
)

// accountPayload is the wire shape of an account. Balances travel as
// strings to avoid float rounding on the wire.
type accountPayload struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Balance string `json:"balance"`
}

func toAccountPayload(a *domain.Account) accountPayload {
	return accountPayload{
		ID:      a.ID.String(),
		Name:    a.Name,
		Type:    string(a.Type),
		Balance: a.Balance.String(),
	}
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.AccountService.List(r.Context(), ownerFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	payload := make([]accountPayload, 0, len(accounts))
	for _, a := range accounts {
		payload = append(payload, toAccountPayload(a))
	}
	writeJSON(w, http.StatusOK, payload)
}

type createAccountRequest struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	InitialBalance string `json:"initial_balance"`
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("invalid request body"))
		return
	}

	balance := decimal.Zero
	if req.InitialBalance != "" {
		parsed, err := decimal.NewFromString(req.InitialBalance)
		if err != nil {
			writeError(w, domain.NewValidationError("invalid initial_balance format"))
			return
		}
		balance = parsed
	}

	created, err := s.AccountService.Create(r.Context(), account.CreateAccountInput{
		OwnerID:        ownerFrom(r.Context()),
		Name:           req.Name,
		Type:           domain.AccountType(req.Type),
		InitialBalance: balance,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAccountPayload(created))
}

type updateAccountRequest struct {
	Name    *string `json:"name"`
	Type    *string `json:"type"`
	Balance *string `json:"balance"`
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, domain.NewValidationError("invalid account id"))
		return
	}

	var req updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("invalid request body"))
		return
	}

	update := domain.AccountUpdate{Name: req.Name}
	if req.Type != nil {
		accountType := domain.AccountType(*req.Type)
		update.Type = &accountType
	}
	if req.Balance != nil {
		balance, err := decimal.NewFromString(*req.Balance)
		if err != nil {
			writeError(w, domain.NewValidationError("invalid balance format"))
			return
		}
		update.Balance = &balance
	}

	updated, err := s.AccountService.Update(r.Context(), ownerFrom(r.Context()), id, update)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountPayload(updated))
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, domain.NewValidationError("invalid account id"))
		return
	}

	if err := s.AccountService.Delete(r.Context(), ownerFrom(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
