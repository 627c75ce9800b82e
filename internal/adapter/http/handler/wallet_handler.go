package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/iho/gowallet/internal/adapter/http/dto"
	"github.com/iho/gowallet/internal/adapter/http/middleware"
	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/infrastructure/metrics"
	"github.com/iho/gowallet/internal/usecase"
)

// WalletHandler handles balance mutations for the authenticated
// account.
type WalletHandler struct {
	walletUC *usecase.WalletUseCase
	metrics  *metrics.Metrics
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletUC *usecase.WalletUseCase, m *metrics.Metrics) *WalletHandler {
	return &WalletHandler{walletUC: walletUC, metrics: m}
}

// TopUp credits the caller's wallet.
func (h *WalletHandler) TopUp(w http.ResponseWriter, r *http.Request) {
	ref, ok := middleware.GetAccountRef(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.TopUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	start := time.Now()

	record, err := h.walletUC.TopUp(r.Context(), req.ToUseCaseInput(ref))
	if err != nil {
		h.recordError(domain.RecordKindTopUp, err)
		writeError(w, mapDomainError(err), "failed to top up", err.Error())
		return
	}

	h.recordSuccess(record, start)
	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(record, record.AccountID))
}

// Pay debits the caller's wallet.
func (h *WalletHandler) Pay(w http.ResponseWriter, r *http.Request) {
	ref, ok := middleware.GetAccountRef(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	start := time.Now()

	record, err := h.walletUC.Pay(r.Context(), req.ToUseCaseInput(ref))
	if err != nil {
		h.recordError(domain.RecordKindPayment, err)
		writeError(w, mapDomainError(err), "failed to pay", err.Error())
		return
	}

	h.recordSuccess(record, start)
	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(record, record.AccountID))
}

// Transfer moves money from the caller's wallet to another account.
func (h *WalletHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	ref, ok := middleware.GetAccountRef(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	start := time.Now()

	record, err := h.walletUC.Transfer(r.Context(), req.ToUseCaseInput(ref))
	if err != nil {
		h.recordError(domain.RecordKindTransfer, err)
		writeError(w, mapDomainError(err), "failed to transfer", err.Error())
		return
	}

	h.recordSuccess(record, start)
	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(record, record.AccountID))
}

// Balance returns the caller's current balance.
func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	ref, ok := middleware.GetAccountRef(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	balance, err := h.walletUC.GetBalance(r.Context(), ref)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		Reference: ref,
		Balance:   balance,
	})
}

func (h *WalletHandler) recordSuccess(record *domain.LedgerRecord, start time.Time) {
	if h.metrics == nil {
		return
	}

	kind := string(record.Kind)

	switch record.Kind {
	case domain.RecordKindTopUp:
		h.metrics.TopUpsCreated.Inc()
	case domain.RecordKindPayment:
		h.metrics.PaymentsCreated.Inc()
	case domain.RecordKindTransfer:
		h.metrics.TransfersCreated.Inc()
	}

	h.metrics.MutationDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	h.metrics.MutationAmount.WithLabelValues(kind).Observe(record.Amount.InexactFloat64())
}

func (h *WalletHandler) recordError(kind domain.RecordKind, err error) {
	if h.metrics == nil {
		return
	}

	h.metrics.MutationErrors.WithLabelValues(string(kind), errorType(err)).Inc()
}

func errorType(err error) string {
	switch mapDomainError(err) {
	case http.StatusNotFound:
		return "not_found"
	case http.StatusUnprocessableEntity:
		return "insufficient_balance"
	case http.StatusConflict:
		return "contention"
	case http.StatusBadRequest:
		return "invalid_input"
	default:
		return "internal"
	}
}
