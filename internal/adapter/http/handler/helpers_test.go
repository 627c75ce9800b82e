package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iho/gowallet/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrAccountNotFound, http.StatusNotFound},
		{domain.ErrTargetNotFound, http.StatusNotFound},
		{domain.ErrInsufficientBalance, http.StatusUnprocessableEntity},
		{domain.ErrPhoneNumberTaken, http.StatusConflict},
		{domain.ErrContentionTimeout, http.StatusConflict},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrExpiredToken, http.StatusUnauthorized},
		{domain.ErrInvalidAmount, http.StatusBadRequest},
		{domain.ErrSelfTransfer, http.StatusBadRequest},
		{domain.ErrPINTooWeak, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := mapDomainError(tt.err); got != tt.want {
			t.Fatalf("mapDomainError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestMapDomainErrorWrapped(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), domain.ErrInsufficientBalance)
	if got := mapDomainError(wrapped); got != http.StatusUnprocessableEntity {
		t.Fatalf("expected wrapped error to map to 422, got %d", got)
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, http.StatusBadRequest, "bad input", "details")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected json content type, got %s", ct)
	}
	if !strings.Contains(rec.Body.String(), "bad input") {
		t.Fatalf("expected error message in body, got %s", rec.Body.String())
	}
}
