// internal/api/handler/ledger.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"starpoint/internal/api/types"
	"starpoint/internal/export"
	"starpoint/internal/service"
	"starpoint/internal/util"
)

// DefaultTimeout bounds every request, exports included.
const DefaultTimeout = 60 * time.Second

// LedgerHandler handles HTTP requests for the points ledger.
type LedgerHandler struct {
	ledger   service.LedgerService
	reports  service.ReportService
	exporter *export.Exporter
	logger   *slog.Logger
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledger service.LedgerService, reports service.ReportService, exporter *export.Exporter, logger *slog.Logger) *LedgerHandler {
	return &LedgerHandler{
		ledger:   ledger,
		reports:  reports,
		exporter: exporter,
		logger:   logger,
	}
}

// Helper function to send JSON responses.
func (h *LedgerHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper function to send error responses.
func (h *LedgerHandler) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = err.Error() // ValidationError carries the field and reason
	default:
		h.logger.Error("Unhandled service error", "error", err)
	}

	h.respondWithJSON(w, statusCode, types.ErrorResponse{Error: message})
}

// userParam returns the decoded {user} path segment. chi matches on
// RawPath when the request carries one (e.g. an escaped "/"), and on the
// already decoded Path otherwise.
func userParam(r *http.Request) (string, error) {
	user := chi.URLParam(r, "user")
	if r.URL.RawPath == "" {
		return user, nil
	}
	decoded, err := url.PathUnescape(user)
	if err != nil {
		return "", util.NewValidationError("user", "malformed path segment")
	}
	return decoded, nil
}

// MovementRequest is the body of POST /deposits and POST /withdrawals.
type MovementRequest struct {
	User   string          `json:"user"`
	Amount decimal.Decimal `json:"amount"`
	// Time is only read for withdrawals: "9 PM", "9:05 PM" or "21:05", placed on today's date.
	Time string `json:"time,omitempty"`
}

func decodeMovement(r *http.Request) (MovementRequest, error) {
	var req MovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, util.NewValidationError("body", "malformed JSON")
	}
	return req, nil
}

// RecordDeposit handles a new deposit stamped with the current time.
// POST /deposits
func (h *LedgerHandler) RecordDeposit(w http.ResponseWriter, r *http.Request) {
	req, err := decodeMovement(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	deposit, err := h.ledger.RecordDeposit(r.Context(), req.User, req.Amount, time.Time{})
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusCreated, deposit)
}

// RecordWithdrawal handles a new withdrawal, optionally at a given time of day.
// POST /withdrawals
func (h *LedgerHandler) RecordWithdrawal(w http.ResponseWriter, r *http.Request) {
	req, err := decodeMovement(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	var at time.Time
	if req.Time != "" {
		at, err = h.ledger.WithdrawalTime(req.Time)
		if err != nil {
			h.respondWithError(w, err)
			return
		}
	}

	withdrawal, err := h.ledger.RecordWithdrawal(r.Context(), req.User, req.Amount, at)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusCreated, withdrawal)
}

// ListUsers handles GET /users
func (h *LedgerHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.ledger.ListUsers(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, types.NewListResponse(users))
}

// GetBalance handles GET /users/{user}/balance
func (h *LedgerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	user, err := userParam(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	balance, err := h.ledger.BalanceOf(r.Context(), user)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, types.BalanceResponse{
		User:        user,
		Balance:     balance,
		BalanceText: balance.StringFixed(2),
		Negative:    balance.IsNegative(),
	})
}

// GetHistory handles GET /users/{user}/history?limit=N
func (h *LedgerHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	user, err := userParam(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			h.respondWithError(w, util.NewValidationError("limit", "must be a positive integer"))
			return
		}
	}

	movements, err := h.ledger.HistoryOf(r.Context(), user, limit)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, types.NewListResponse(movements))
}

// GetSummary handles GET /summary
func (h *LedgerHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reports.Summary(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, types.NewListResponse(summary))
}

// NormalizeUsers handles POST /maintenance/normalize-users
func (h *LedgerHandler) NormalizeUsers(w http.ResponseWriter, r *http.Request) {
	changed, err := h.ledger.NormalizeStoredUsers(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, types.NormalizeResponse{Changed: changed})
}
