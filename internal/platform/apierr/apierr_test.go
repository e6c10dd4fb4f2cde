package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	apperrors "github.com/tesserahq/contacts-backend/internal/pkg/errors"
)

func TestFromErrorSentinels(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("contact: %w", apperrors.ErrNotFound), http.StatusNotFound, "not_found"},
		{fmt.Errorf("status: %w", apperrors.ErrInvalidArgument), http.StatusBadRequest, "validation_error"},
		{fmt.Errorf("email: %w", apperrors.ErrConflict), http.StatusConflict, "conflict"},
		{apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{apperrors.ErrForbidden, http.StatusForbidden, "forbidden"},
		{errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		got := FromError(tc.err)
		if got.Status != tc.status || got.Code != tc.code {
			t.Fatalf("FromError(%v): got (%d, %q), want (%d, %q)", tc.err, got.Status, got.Code, tc.status, tc.code)
		}
	}
}

func TestFromErrorNil(t *testing.T) {
	if got := FromError(nil); got != nil {
		t.Fatalf("FromError(nil): expected nil, got %+v", got)
	}
}

func TestFromErrorPassesThroughAPIError(t *testing.T) {
	orig := New(http.StatusBadRequest, "custom_code", errors.New("bad"))
	wrapped := fmt.Errorf("handler: %w", orig)
	got := FromError(wrapped)
	if got.Code != "custom_code" || got.Status != http.StatusBadRequest {
		t.Fatalf("expected pass-through, got %+v", got)
	}
}
