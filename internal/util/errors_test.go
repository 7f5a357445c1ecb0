// internal/util/errors_test.go
package util

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomy(t *testing.T) {
	cause := errors.New("disk I/O error")

	storageErr := fmt.Errorf("deposit: %w", &StorageError{Op: "insert deposit", Err: cause})
	assert.True(t, IsError(storageErr, ErrStorage))
	assert.True(t, IsError(storageErr, cause))
	assert.False(t, IsError(storageErr, ErrInvalidInput))

	backupErr := &BackupError{Err: cause}
	assert.True(t, IsError(backupErr, ErrBackup))
	assert.True(t, IsError(backupErr, cause))

	validationErr := NewValidationError("user", "must not be empty")
	assert.True(t, IsError(validationErr, ErrInvalidInput))
	assert.Equal(t, "invalid user: must not be empty", validationErr.Error())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", ParseLevel("debug").String())
	assert.Equal(t, "WARN", ParseLevel("warn").String())
	assert.Equal(t, "INFO", ParseLevel("nonsense").String())
}
