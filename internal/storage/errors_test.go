package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap("save file", nil))

	cause := errors.New("disk I/O error")
	err := Wrap("save file", cause)

	assert.True(t, IsStorageError(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "storage save file: disk I/O error", err.Error())
}

func TestWrap_DoesNotDoubleWrap(t *testing.T) {
	inner := Wrap("insert transaction", errors.New("constraint failed"))
	outer := Wrap("save file", fmt.Errorf("retry: %w", inner))

	var storageErr *Error
	assert.True(t, errors.As(outer, &storageErr))
	assert.Equal(t, "insert transaction", storageErr.Op)
}

func TestIsStorageError(t *testing.T) {
	assert.False(t, IsStorageError(errors.New("plain")))
	assert.False(t, IsStorageError(nil))
}
