package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	cause := errors.New("unique constraint failed")
	err := InternalError("Failed to create order", cause)

	assert.Equal(t, "Failed to create order: unique constraint failed", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindInternal, err.Kind)

	wrapped := fmt.Errorf("handler: %w", NotFoundError("ORDER_NOT_FOUND", "Order 7 not found"))
	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(wrapped, KindValidation))
	assert.Equal(t, "ORDER_NOT_FOUND", AsAppError(wrapped).Code)
	assert.Equal(t, "Order 7 not found", AsAppError(wrapped).Error())
}

func TestAsAppError_Unknown(t *testing.T) {
	appErr := AsAppError(errors.New("boom"))
	assert.Equal(t, KindInternal, appErr.Kind)
	assert.Equal(t, "DATABASE_ERROR", appErr.Code)
}
