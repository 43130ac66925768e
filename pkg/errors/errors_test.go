package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{NewInvalidInputError("bad url"), http.StatusBadRequest},
		{NewUpstreamFetchError("https://example.com", fmt.Errorf("status 404")), http.StatusBadRequest},
		{NewExtractionError(fmt.Errorf("no json")), http.StatusInternalServerError},
		{NewRecipeNotFoundError("abc"), http.StatusNotFound},
		{NewPantryItemNotFoundError("abc"), http.StatusNotFound},
		{NewTooManyRequestsError(), http.StatusTooManyRequests},
		{NewDatabaseError("save recipe", fmt.Errorf("disk full")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode())
		})
	}
}

func TestWrapKeepsAppErrors(t *testing.T) {
	original := NewInvalidInputError("bad url")
	wrapped := fmt.Errorf("import: %w", original)

	assert.Same(t, original, Wrap(wrapped, "ignored"))
	assert.True(t, Is(wrapped, CodeInvalidInput))
	assert.Equal(t, CodeInvalidInput, GetCode(wrapped))
	assert.Equal(t, http.StatusBadRequest, StatusOf(wrapped))
}

func TestWrapPlainError(t *testing.T) {
	cause := stderrors.New("boom")

	err := Wrap(cause, "failed")

	assert.Equal(t, CodeInternal, err.Code)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestToErrorResponse(t *testing.T) {
	assert.Equal(t, "Failed to fetch recipe page: status 404",
		ToErrorResponse(NewUpstreamFetchError("https://example.com", fmt.Errorf("status 404"))).Error)
	assert.Equal(t, "Failed to extract recipe from page",
		ToErrorResponse(NewExtractionError(fmt.Errorf("model said no"))).Error)
	assert.Equal(t, "An unexpected error occurred", ToErrorResponse(stderrors.New("secret")).Error)
}
