package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/fintrack-backend/internal/adapter/advisor"
	"github.com/fintrack/fintrack-backend/internal/adapter/repository/memory"
	"github.com/fintrack/fintrack-backend/internal/domain"
	applog "github.com/fintrack/fintrack-backend/internal/log"
	"github.com/fintrack/fintrack-backend/internal/usecase/account"
	"github.com/fintrack/fintrack-backend/internal/usecase/insight"
	"github.com/fintrack/fintrack-backend/internal/usecase/ledger"
	"github.com/fintrack/fintrack-backend/internal/usecase/summary"
	"github.com/fintrack/fintrack-backend/internal/usecase/transfer"
)

const testToken = "test-token"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memory.New()
	logger := applog.New(applog.Config{Handler: slog.NewTextHandler(io.Discard, nil)})

	server := NewServer(
		account.NewService(store.Accounts()),
		ledger.NewService(store, store.Records(), advisor.Noop{}, time.Second, logger),
		transfer.NewService(store, logger),
		summary.NewService(store.Records()),
		insight.NewService(store.Records(), nil),
		NewTokenResolver(map[string]string{testToken: "test-user"}),
		logger,
	)

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createAccount(t *testing.T, ts *httptest.Server, name, balance string) accountPayload {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/accounts", map[string]string{
		"name":            name,
		"type":            "CHECKING",
		"initial_balance": balance,
	}, testToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[accountPayload](t, resp)
}

func TestMissingTokenIsUnauthorized(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/accounts", "/api/records", "/api/summary"} {
		resp := doRequest(t, ts, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		resp.Body.Close()
	}
}

func TestUnknownTokenIsUnauthorized(t *testing.T) {
	ts := newTestServer(t)

	resp := doRequest(t, ts, http.MethodGet, "/api/accounts", nil, "wrong-token")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAccountLifecycle(t *testing.T) {
	ts := newTestServer(t)

	created := createAccount(t, ts, "Main Checking", "1000")
	assert.Equal(t, "1000", created.Balance)

	resp := doRequest(t, ts, http.MethodGet, "/api/accounts", nil, testToken)
	accounts := decodeBody[[]accountPayload](t, resp)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Main Checking", accounts[0].Name)

	// Direct balance overwrite: the documented manual-correction escape hatch.
	resp = doRequest(t, ts, http.MethodPatch, "/api/accounts/"+created.ID, map[string]string{"balance": "500"}, testToken)
	updated := decodeBody[accountPayload](t, resp)
	assert.Equal(t, "500", updated.Balance)

	resp = doRequest(t, ts, http.MethodDelete, "/api/accounts/"+created.ID, nil, testToken)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, ts, http.MethodDelete, "/api/accounts/"+created.ID, nil, testToken)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateAccount_EmptyNameRejected(t *testing.T) {
	ts := newTestServer(t)

	resp := doRequest(t, ts, http.MethodPost, "/api/accounts", map[string]string{
		"name": "",
		"type": "CHECKING",
	}, testToken)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestCreateRecord_AdjustsBalance(t *testing.T) {
	ts := newTestServer(t)
	acc := createAccount(t, ts, "Checking", "1000")

	resp := doRequest(t, ts, http.MethodPost, "/api/records", map[string]string{
		"account_id":  acc.ID,
		"description": "Weekly groceries",
		"category":    "Food",
		"type":        "EXPENSE",
		"amount":      "50",
		"date":        "2025-04-07",
	}, testToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	record := decodeBody[recordPayload](t, resp)
	assert.Equal(t, "2025-04-07", record.Date)
	assert.Equal(t, "Food", record.Category)

	resp = doRequest(t, ts, http.MethodGet, "/api/accounts", nil, testToken)
	accounts := decodeBody[[]accountPayload](t, resp)
	require.Len(t, accounts, 1)
	assert.Equal(t, "950", accounts[0].Balance)
}

func TestCreateRecord_MissingAccountIs404AndPersistsNothing(t *testing.T) {
	ts := newTestServer(t)

	resp := doRequest(t, ts, http.MethodPost, "/api/records", map[string]string{
		"account_id":  "00000000-0000-0000-0000-000000000001",
		"description": "Ghost",
		"type":        "INCOME",
		"amount":      "50",
	}, testToken)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, ts, http.MethodGet, "/api/records", nil, testToken)
	records := decodeBody[[]recordPayload](t, resp)
	assert.Empty(t, records)
}

func TestTransferScenario(t *testing.T) {
	ts := newTestServer(t)
	a := createAccount(t, ts, "A", "1000")
	b := createAccount(t, ts, "B", "0")

	resp := doRequest(t, ts, http.MethodPost, "/api/transfers", map[string]string{
		"from_account_id": a.ID,
		"to_account_id":   b.ID,
		"amount":          "300",
	}, testToken)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, ts, http.MethodGet, "/api/accounts", nil, testToken)
	accounts := decodeBody[[]accountPayload](t, resp)
	balances := map[string]string{}
	for _, acc := range accounts {
		balances[acc.Name] = acc.Balance
	}
	assert.Equal(t, "700", balances["A"])
	assert.Equal(t, "300", balances["B"])

	resp = doRequest(t, ts, http.MethodGet, "/api/records", nil, testToken)
	records := decodeBody[[]recordPayload](t, resp)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, "Transfer", r.Category)
		assert.Equal(t, "300", r.Amount)
	}

	resp = doRequest(t, ts, http.MethodGet, "/api/summary", nil, testToken)
	got := decodeBody[summaryPayload](t, resp)
	assert.Equal(t, "300", got.TotalIncome)
	assert.Equal(t, "300", got.TotalExpense)
	assert.Equal(t, "0", got.NetFlow)
}

func TestTransfer_SameAccountRejected(t *testing.T) {
	ts := newTestServer(t)
	a := createAccount(t, ts, "A", "1000")

	resp := doRequest(t, ts, http.MethodPost, "/api/transfers", map[string]string{
		"from_account_id": a.ID,
		"to_account_id":   a.ID,
		"amount":          "100",
	}, testToken)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decodeBody[map[string]string](t, resp)
	assert.Contains(t, body["error"], "same account")
}

func TestTransfer_MissingDestinationLeavesSourceUntouched(t *testing.T) {
	ts := newTestServer(t)
	a := createAccount(t, ts, "A", "1000")

	resp := doRequest(t, ts, http.MethodPost, "/api/transfers", map[string]string{
		"from_account_id": a.ID,
		"to_account_id":   "00000000-0000-0000-0000-000000000002",
		"amount":          "300",
	}, testToken)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, ts, http.MethodGet, "/api/accounts", nil, testToken)
	accounts := decodeBody[[]accountPayload](t, resp)
	require.Len(t, accounts, 1)
	assert.Equal(t, "1000", accounts[0].Balance, "no partial debit may remain")
}

func TestDeleteRecord_BalanceNotCompensated(t *testing.T) {
	ts := newTestServer(t)
	acc := createAccount(t, ts, "Checking", "0")

	resp := doRequest(t, ts, http.MethodPost, "/api/records", map[string]string{
		"account_id": acc.ID,
		"type":       "INCOME",
		"amount":     "500",
	}, testToken)
	record := decodeBody[recordPayload](t, resp)

	resp = doRequest(t, ts, http.MethodDelete, fmt.Sprintf("/api/records/%s", record.ID), nil, testToken)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, ts, http.MethodGet, "/api/accounts", nil, testToken)
	accounts := decodeBody[[]accountPayload](t, resp)
	require.Len(t, accounts, 1)
	assert.Equal(t, "500", accounts[0].Balance, "deleting a record does not adjust the balance back")
}

func TestSuggestCategory(t *testing.T) {
	ts := newTestServer(t)

	resp := doRequest(t, ts, http.MethodPost, "/api/suggest-category", map[string]string{
		"description": "Dinner at Luigi's",
		"type":        "EXPENSE",
	}, testToken)
	got := decodeBody[suggestCategoryResponse](t, resp)
	assert.Equal(t, "Other", got.Category, "noop suggester falls back to Other")

	resp = doRequest(t, ts, http.MethodPost, "/api/suggest-category", map[string]string{
		"description": "Dinner",
		"type":        "LOAN",
	}, testToken)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestInsights_FallbackWithoutGenerator(t *testing.T) {
	ts := newTestServer(t)

	resp := doRequest(t, ts, http.MethodGet, "/api/insights", nil, testToken)
	insights := decodeBody[[]domain.Insight](t, resp)

	require.Len(t, insights, 1)
	assert.Equal(t, domain.FallbackInsight.Title, insights[0].Title)
}
