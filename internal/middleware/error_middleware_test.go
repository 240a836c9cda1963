package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/edunir/tripshare/internal/domain/roster"
	"github.com/edunir/tripshare/internal/pkg/apperrors"
)

func statusFor(t *testing.T, err error) int {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	HandleAPIError(c, err)
	return w.Code
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"trip not found", apperrors.ErrTripNotFound, http.StatusNotFound},
		{"user not found", apperrors.ErrUserNotFound, http.StatusNotFound},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{"disabled account", apperrors.ErrAccountDisabled, http.StatusForbidden},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden},
		{"invalid dates", apperrors.ErrInvalidDates, http.StatusBadRequest},
		{"rating out of range", apperrors.ErrRatingOutOfRange, http.StatusBadRequest},
		{"email taken", apperrors.ErrEmailAlreadyExists, http.StatusConflict},
		{"already requested", apperrors.ErrAlreadyRequested, http.StatusConflict},
		{"already rated", apperrors.ErrAlreadyRated, http.StatusConflict},
		{"own trip", apperrors.ErrOwnTrip, http.StatusConflict},
		{"trip not open", apperrors.ErrTripNotOpen, http.StatusConflict},
		{"trip full", apperrors.ErrTripFull, http.StatusConflict},
		{"trip over", apperrors.ErrTripOver, http.StatusConflict},
		{"trip not past", roster.ErrTripNotPast, http.StatusConflict},
		{"illegal transition", roster.ErrIllegalTransition, http.StatusConflict},
		{"self rating", roster.ErrSelfRating, http.StatusForbidden},
		{"rater not accepted", roster.ErrRaterNotAccepted, http.StatusForbidden},
		{"unknown option", apperrors.ErrOptionNotFound, http.StatusBadRequest},
		{"survey closed", apperrors.ErrSurveyClosed, http.StatusConflict},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(t, tt.err))
		})
	}
}

// Wrapped errors must map the same as bare sentinels.
func TestHandleAPIErrorUnwraps(t *testing.T) {
	err := fmt.Errorf("requesting to join: %w", apperrors.ErrTripFull)
	assert.Equal(t, http.StatusConflict, statusFor(t, err))
}
