package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromStatus(t *testing.T) {
	cases := []struct {
		status int
		kind   Kind
	}{
		{http.StatusBadRequest, Invalid},
		{http.StatusUnprocessableEntity, Invalid},
		{http.StatusUnauthorized, Unauthorized},
		{http.StatusForbidden, Forbidden},
		{http.StatusNotFound, NotFound},
		{http.StatusConflict, Conflict},
		{http.StatusServiceUnavailable, Unavailable},
		{http.StatusInternalServerError, Internal},
		{http.StatusTeapot, Internal},
	}
	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			err := FromStatus(tc.status, "")
			assert.Equal(t, tc.kind, err.Kind)
			assert.Equal(t, tc.status, err.Status)
			assert.Equal(t, http.StatusText(tc.status), err.PublicMsg)
		})
	}
}

func TestCategoryOf(t *testing.T) {
	assert.Equal(t, CategoryTransport, CategoryOf(UnavailableErr(errors.New("dial tcp: refused"))))
	assert.Equal(t, CategoryHTTP, CategoryOf(FromStatus(http.StatusConflict, "invalid transition")))
	assert.Equal(t, CategoryBusiness, CategoryOf(RejectedErr(http.StatusOK, "nope")))
	assert.Equal(t, CategoryTransport, CategoryOf(errors.New("plain")))
}

func TestWrapKeepsAppError(t *testing.T) {
	orig := ConflictErr("taken")
	wrapped := fmt.Errorf("update: %w", orig)

	assert.Same(t, orig, Wrap(wrapped))
	assert.Equal(t, Internal, Wrap(errors.New("boom")).Kind)
	assert.Nil(t, Wrap(nil))
}

func TestHTTPStatusAndPublicMessage(t *testing.T) {
	assert.Equal(t, http.StatusConflict, HTTPStatus(ConflictErr("x")))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(UnavailableErr(errors.New("x"))))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("x")))

	assert.Equal(t, "x", PublicMessage(ConflictErr("x")))
	assert.Equal(t, defaultPublicMsg, PublicMessage(errors.New("secret detail")))
}
