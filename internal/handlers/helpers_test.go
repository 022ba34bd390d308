package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"poputkaBack/internal/models"
)

func TestHandleServiceErrorStatuses(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", models.Validationf("amount must not be negative"), http.StatusBadRequest},
		{"invalid credentials", models.ErrInvalidCredentials, http.StatusUnauthorized},
		{"request not owned", models.ErrRequestNotOwned, http.StatusForbidden},
		{"request trip mismatch", models.ErrRequestTripMismatch, http.StatusForbidden},
		{"trip not found", models.ErrTripNotFound, http.StatusNotFound},
		{"trip full", models.ErrTripFull, http.StatusConflict},
		{"not yet departed", models.ErrTripNotDeparted, http.StatusBadRequest},
		{"unexpected", errors.New("driver: bad connection"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/trips/3/payments", nil)

			handleServiceError(rr, req, tc.err)
			if rr.Code != tc.want {
				t.Errorf("status = %d; want %d", rr.Code, tc.want)
			}
		})
	}
}
