package httpadapter

import (
	"errors"
	"net/http"
	"testing"

	"github.com/nileshk/legal-analyzer/internal/core/domain"
)

func TestMapErrorToHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", domain.WrapError(domain.ErrInvalidInput, "op", errors.New("bad")), http.StatusBadRequest},
		{"document not found", domain.WrapError(domain.ErrDocumentNotFound, "op", errors.New("missing")), http.StatusNotFound},
		{"analysis not found", domain.WrapError(domain.ErrAnalysisNotFound, "op", errors.New("missing")), http.StatusNotFound},
		{"temporary", domain.WrapError(domain.ErrTemporary, "op", errors.New("queue down")), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mapErrorToHTTPStatus(tc.err); got != tc.want {
				t.Fatalf("mapErrorToHTTPStatus() = %d, want %d", got, tc.want)
			}
		})
	}
}
