package runctx

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRun(t *testing.T) {
	ctx := WithRun(context.Background(), "https://shop.example/dp/1")

	r := FromContext(ctx)
	_, err := uuid.Parse(r.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example/dp/1", r.URL)
	assert.False(t, r.StartTime.IsZero())

	other := FromContext(WithRun(context.Background(), ""))
	assert.NotEqual(t, r.ID, other.ID)
}

func TestFromContext_Missing(t *testing.T) {
	r := FromContext(context.Background())
	assert.Equal(t, "unknown", r.ID)
}
