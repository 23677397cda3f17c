package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariants_DefaultsAndPinnedCodes(t *testing.T) {
	cases := []struct {
		name    string
		err     *Error
		kind    Kind
		code    string
		status  int
		message string
	}{
		{"unauthorized default", Unauthorized(""), KindUnauthorized, CodeUnauthorized, http.StatusUnauthorized, "Unauthorized"},
		{"forbidden default", Forbidden(""), KindForbidden, CodeForbidden, http.StatusForbidden, "Forbidden"},
		{"not found default", NotFound(""), KindNotFound, CodeNotFound, http.StatusNotFound, "Not found"},
		{"not found custom", NotFound("Resource not found"), KindNotFound, CodeNotFound, http.StatusNotFound, "Resource not found"},
		{"validation", Validation("Invalid input"), KindValidation, CodeValidation, http.StatusBadRequest, "Invalid input"},
		{"conflict", Conflict("Already bonded"), KindConflict, CodeConflict, http.StatusConflict, "Already bonded"},
		{"unprocessable", Unprocessable("Bond too small"), KindUnprocessable, CodeUnprocessable, http.StatusUnprocessableEntity, "Bond too small"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kind, tc.err.Kind)
			assert.Equal(t, tc.code, tc.err.Code)
			assert.Equal(t, tc.status, tc.err.Status)
			assert.Equal(t, tc.message, tc.err.Error())
			assert.False(t, tc.err.HasDetails())
		})
	}
}

func TestVariants_RequiredMessageHasNoSilentDefault(t *testing.T) {
	assert.Equal(t, "", Validation("").Message)
	assert.Equal(t, "", Conflict("").Message)
	assert.Equal(t, "", Unprocessable("").Message)
}

func TestVariants_DetailsPassThrough(t *testing.T) {
	details := map[string]string{"field": "email"}
	err := Validation("Invalid input", details)

	require.True(t, err.HasDetails())
	assert.Equal(t, details, err.Details)
}

func TestNew_DefaultsAndOptions(t *testing.T) {
	err := New("Server misconfiguration")
	assert.Equal(t, KindApp, err.Kind)
	assert.Equal(t, CodeInternal, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)

	cause := errors.New("dial tcp: refused")
	err = New("Too many requests",
		WithCode("RATE_LIMITED"),
		WithStatus(http.StatusTooManyRequests),
		WithDetails(map[string]int{"retryAfter": 1}),
		WithCause(cause),
	)
	assert.Equal(t, "RATE_LIMITED", err.Code)
	assert.Equal(t, http.StatusTooManyRequests, err.Status)
	assert.True(t, err.HasDetails())
	assert.ErrorIs(t, err, cause)

	// empty code and out-of-range status are ignored
	err = New("x", WithCode(""), WithStatus(42))
	assert.Equal(t, CodeInternal, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
}

func TestAsAndIs(t *testing.T) {
	_, ok := As(errors.New("plain"))
	assert.False(t, ok)
	assert.False(t, Is(nil))

	wrapped := fmt.Errorf("lookup trust: %w", NotFound(""))
	ae, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, ae.Code)
	assert.True(t, Is(wrapped))
}

func TestStackTrace_StartsAtCallSite(t *testing.T) {
	for _, err := range []*Error{NotFound(""), New("boom")} {
		st := err.StackTrace()
		require.NotEmpty(t, st)
		assert.Contains(t, fmt.Sprintf("%+v", st), "TestStackTrace_StartsAtCallSite")
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "app", KindApp.String())
	assert.Equal(t, "app", Kind(200).String())
}

func TestNilReceiver(t *testing.T) {
	var e *Error
	assert.NotPanics(t, func() {
		assert.Equal(t, "<nil *apperr.Error>", e.Error())
		assert.NoError(t, e.Unwrap())
		assert.Nil(t, e.StackTrace())
		assert.False(t, e.HasDetails())
	})

	_, ok := As(error(e))
	assert.False(t, ok, "typed nil is not an application error")
}
