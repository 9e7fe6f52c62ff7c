package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionalString(t *testing.T) {
	assert.Nil(t, OptionalString(""))
	assert.Nil(t, OptionalString("  \t "))

	v := OptionalString("  https://example.com/a.png ")
	if assert.NotNil(t, v) {
		assert.Equal(t, "https://example.com/a.png", *v)
	}
}

func TestDeref(t *testing.T) {
	assert.Equal(t, "", Deref[string](nil))
	s := "reason"
	assert.Equal(t, "reason", Deref(&s))
}
