package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack-backend/internal/domain"
	"github.com/fintrack/fintrack-backend/internal/usecase/ledger"
)

type recordPayload struct {
	ID          string `json:"id"`
	AccountID   string `json:"account_id,omitempty"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	CreatedAt   string `json:"created_at"`
}

func toRecordPayload(r *domain.Record) recordPayload {
	payload := recordPayload{
		ID:          r.ID.String(),
		Description: r.Description,
		Category:    r.Category,
		Type:        string(r.Type),
		Amount:      r.Amount.String(),
		Date:        r.Date.Format("2006-01-02"),
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
	if r.AccountID != nil {
		payload.AccountID = r.AccountID.String()
	}
	return payload
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.LedgerService.ListRecords(r.Context(), ownerFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	payload := make([]recordPayload, 0, len(records))
	for _, record := range records {
		payload = append(payload, toRecordPayload(record))
	}
	writeJSON(w, http.StatusOK, payload)
}

type createRecordRequest struct {
	AccountID   string `json:"account_id"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Date        string `json:"date"` // YYYY-MM-DD; defaults to today
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	var req createRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("invalid request body"))
		return
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		writeError(w, domain.NewValidationError("invalid account_id format"))
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, domain.NewValidationError("invalid amount format"))
		return
	}

	date := time.Now().UTC()
	if req.Date != "" {
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeError(w, domain.NewValidationError("invalid date format, want YYYY-MM-DD"))
			return
		}
	}

	record, err := s.LedgerService.ApplyTransaction(r.Context(), ledger.ApplyTransactionInput{
		OwnerID:     ownerFrom(r.Context()),
		AccountID:   accountID,
		Amount:      amount,
		Type:        domain.RecordType(req.Type),
		Description: req.Description,
		Category:    req.Category,
		Date:        date,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toRecordPayload(record))
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, domain.NewValidationError("invalid record id"))
		return
	}

	if err := s.LedgerService.DeleteRecord(r.Context(), ownerFrom(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
