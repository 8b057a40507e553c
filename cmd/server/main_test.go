package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvDefault(t *testing.T) {
	t.Setenv("ZP_TEST_STR", "value")
	assert.Equal(t, "value", envDefault("ZP_TEST_STR", "fallback"))
	assert.Equal(t, "fallback", envDefault("ZP_TEST_STR_UNSET", "fallback"))
}

func TestEnvIntDefault(t *testing.T) {
	t.Setenv("ZP_TEST_INT", "7")
	assert.Equal(t, 7, envIntDefault("ZP_TEST_INT", 3))

	t.Setenv("ZP_TEST_INT", "junk")
	assert.Equal(t, 3, envIntDefault("ZP_TEST_INT", 3))

	// Counts must stay positive.
	t.Setenv("ZP_TEST_INT", "0")
	assert.Equal(t, 3, envIntDefault("ZP_TEST_INT", 3))
}

func TestEnvInt64DefaultAcceptsZeroSeed(t *testing.T) {
	t.Setenv("ZP_TEST_SEED", "0")
	assert.Equal(t, int64(0), envInt64Default("ZP_TEST_SEED", 42))

	t.Setenv("ZP_TEST_SEED", "-5")
	assert.Equal(t, int64(-5), envInt64Default("ZP_TEST_SEED", 42))

	t.Setenv("ZP_TEST_SEED", "junk")
	assert.Equal(t, int64(42), envInt64Default("ZP_TEST_SEED", 42))

	assert.Equal(t, int64(42), envInt64Default("ZP_TEST_SEED_UNSET", 42))
}
