package idgen

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	id := New(RequestPrefix)
	require.True(t, strings.HasPrefix(id, RequestPrefix))

	_, err := uuid.Parse(strings.TrimPrefix(id, RequestPrefix))
	assert.NoError(t, err)
	assert.NotEqual(t, id, New(RequestPrefix))
}
