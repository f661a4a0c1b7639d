package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("load: %w", Wrap(CodePersistenceFailure, "store down", errors.New("dial tcp")))
	assert.True(t, errors.Is(err, New(CodePersistenceFailure, "")))
	assert.False(t, errors.Is(err, New(CodeDataUnavailable, "")))
	assert.Equal(t, CodePersistenceFailure, CodeOf(err))
	assert.Equal(t, "store down: dial tcp", errors.Unwrap(err).Error())
}

func TestBlockingOnlyForDataUnavailable(t *testing.T) {
	assert.True(t, Blocking(New(CodeDataUnavailable, "empty catalog")))
	assert.False(t, Blocking(New(CodeEvaluationFailure, "panic")))
	assert.False(t, Blocking(errors.New("plain")))
	assert.False(t, Blocking(nil))
}
