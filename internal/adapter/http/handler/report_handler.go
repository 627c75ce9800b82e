package handler

import (
	"net/http"

	"github.com/iho/gowallet/internal/adapter/http/dto"
	"github.com/iho/gowallet/internal/adapter/http/middleware"
	"github.com/iho/gowallet/internal/usecase"
)

// ReportHandler handles the transaction report and the ledger audit.
type ReportHandler struct {
	reportUC  *usecase.ReportUseCase
	auditUC   *usecase.AuditUseCase
	accountUC *usecase.AccountUseCase
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC *usecase.ReportUseCase, auditUC *usecase.AuditUseCase, accountUC *usecase.AccountUseCase) *ReportHandler {
	return &ReportHandler{
		reportUC:  reportUC,
		auditUC:   auditUC,
		accountUC: accountUC,
	}
}

// Transactions returns the merged transaction history of the caller,
// newest first. Incoming transfers appear as credits with the caller's
// own balance snapshots.
func (h *ReportHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	ref, ok := middleware.GetAccountRef(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	account, err := h.accountUC.GetByReference(r.Context(), ref)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to resolve account", err.Error())
		return
	}

	records, err := h.reportUC.ListTransactions(r.Context(), ref)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(records, account.ID))
}

// Audit recomputes the caller's balance from the ledger and reports
// whether it matches.
func (h *ReportHandler) Audit(w http.ResponseWriter, r *http.Request) {
	ref, ok := middleware.GetAccountRef(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	result, err := h.auditUC.CheckAccount(r.Context(), ref)
	if err != nil && result == nil {
		writeError(w, mapDomainError(err), "failed to audit account", err.Error())
		return
	}

	// An inconsistent ledger is still a valid report.
	writeJSON(w, http.StatusOK, dto.AuditFromResult(result))
}
