package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/fintrack/fintrack-backend/internal/domain"
)

type summaryPayload struct {
	TotalIncome  string `json:"total_income"`
	TotalExpense string `json:"total_expense"`
	NetFlow      string `json:"net_flow"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	result, err := s.SummaryService.Summarize(r.Context(), ownerFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summaryPayload{
		TotalIncome:  result.TotalIncome.String(),
		TotalExpense: result.TotalExpense.String(),
		NetFlow:      result.NetFlow.String(),
	})
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := s.InsightService.Insights(r.Context(), ownerFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, insights)
}

type suggestCategoryRequest struct {
	Description string `json:"description"`
	Type        string `json:"type"`
}

type suggestCategoryResponse struct {
	Category string `json:"category"`
}

// handleSuggestCategory exposes the advisory categorizer directly so the
// client can prefill a category while the user is still typing. The
// suggestion is advisory only; the stored category is whatever the record
// write carries.
func (s *Server) handleSuggestCategory(w http.ResponseWriter, r *http.Request) {
	var req suggestCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("invalid request body"))
		return
	}

	recordType := domain.RecordType(req.Type)
	if recordType != domain.RecordTypeIncome && recordType != domain.RecordTypeExpense {
		writeError(w, domain.NewValidationError("type must be INCOME or EXPENSE"))
		return
	}

	category := "Other"
	if s.LedgerService.Suggester != nil {
		if suggested, err := s.LedgerService.Suggester.Suggest(r.Context(), req.Description, recordType); err == nil && suggested != "" {
			category = suggested
		}
	}

	writeJSON(w, http.StatusOK, suggestCategoryResponse{Category: category})
}
