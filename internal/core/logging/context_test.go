package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetLanguage(ctx))
	assert.Empty(t, GetStringID(ctx))

	ctx = WithLanguage(ctx, "fr")
	ctx = WithStringID(ctx, "STR001")

	assert.Equal(t, "fr", GetLanguage(ctx))
	assert.Equal(t, "STR001", GetStringID(ctx))
}

func TestContextValues_Overwrite(t *testing.T) {
	ctx := WithStringID(context.Background(), "STR001")
	ctx = WithStringID(ctx, "STR002")
	assert.Equal(t, "STR002", GetStringID(ctx))
}
