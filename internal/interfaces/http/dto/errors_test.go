package dto

import (
	"net/http"
	"testing"

	"github.com/erp/pdv/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{shared.CodeValidation, http.StatusBadRequest},
		{shared.CodeInvalidInput, http.StatusBadRequest},
		{shared.CodeNotFound, http.StatusNotFound},
		{shared.CodeAlreadyExists, http.StatusConflict},
		{shared.CodeConstraintViolation, http.StatusConflict},
		{shared.CodeProductInUse, http.StatusConflict},
		{shared.CodeConcurrencyConflict, http.StatusConflict},
		{shared.CodeInvalidState, http.StatusUnprocessableEntity},
		{shared.CodeTransient, http.StatusServiceUnavailable},
		{shared.CodeUnauthorized, http.StatusUnauthorized},
		{shared.CodeForbidden, http.StatusForbidden},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewSuccessResponseWithWarnings(t *testing.T) {
	resp := NewSuccessResponseWithWarnings("ok", nil)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Meta)

	w := shared.NewWarning(shared.StepStockUpdate, "stock for %s not updated", "Caderno")
	resp = NewSuccessResponseWithWarnings("ok", []shared.Warning{w})
	if assert.NotNil(t, resp.Meta) {
		assert.Equal(t, []shared.Warning{w}, resp.Meta.Warnings)
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]int{1}, 41, 2, 20)
	assert.Equal(t, 3, resp.Meta.TotalPages)
	assert.Equal(t, int64(41), resp.Meta.Total)
}
