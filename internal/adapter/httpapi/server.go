package httpapi

import (
	"net/http"
	"time"

	applog "github.com/fintrack/fintrack-backend/internal/log"
	"github.com/fintrack/fintrack-backend/internal/usecase/account"
	"github.com/fintrack/fintrack-backend/internal/usecase/insight"
	"github.com/fintrack/fintrack-backend/internal/usecase/ledger"
	"github.com/fintrack/fintrack-backend/internal/usecase/summary"
	"github.com/fintrack/fintrack-backend/internal/usecase/transfer"
)

// Server exposes the ledger operations as a JSON API
type Server struct {
	AccountService  *account.Service
	LedgerService   *ledger.Service
	TransferService *transfer.Service
	SummaryService  *summary.Service
	InsightService  *insight.Service

	resolver Resolver
	logger   *applog.Logger
}

// NewServer creates a new API server instance
func NewServer(
	accountService *account.Service,
	ledgerService *ledger.Service,
	transferService *transfer.Service,
	summaryService *summary.Service,
	insightService *insight.Service,
	resolver Resolver,
	logger *applog.Logger,
) *Server {
	return &Server{
		AccountService:  accountService,
		LedgerService:   ledgerService,
		TransferService: transferService,
		SummaryService:  summaryService,
		InsightService:  insightService,
		resolver:        resolver,
		logger:          logger.WithComponent(applog.ComponentHTTP),
	}
}

// Handler builds the route table with auth and logging applied to every
// API route
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/accounts", s.handleListAccounts)
	mux.HandleFunc("POST /api/accounts", s.handleCreateAccount)
	mux.HandleFunc("PATCH /api/accounts/{id}", s.handleUpdateAccount)
	mux.HandleFunc("DELETE /api/accounts/{id}", s.handleDeleteAccount)

	mux.HandleFunc("GET /api/records", s.handleListRecords)
	mux.HandleFunc("POST /api/records", s.handleCreateRecord)
	mux.HandleFunc("DELETE /api/records/{id}", s.handleDeleteRecord)

	mux.HandleFunc("POST /api/transfers", s.handleTransfer)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/insights", s.handleInsights)
	mux.HandleFunc("POST /api/suggest-category", s.handleSuggestCategory)

	return s.logRequests(s.authenticate(mux))
}

// authenticate resolves the owner identity before any handler runs. A
// request with no resolvable owner is rejected uniformly with 401.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := s.resolver.Resolve(r)
		if err != nil {
			writeError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(withOwner(r.Context(), ownerID)))
	})
}

// logRequests emits one structured entry per request
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request handled",
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rec.status,
			applog.FieldDuration, time.Since(start).Milliseconds(),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
