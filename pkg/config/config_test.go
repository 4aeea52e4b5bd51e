package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, CSV(" a:9092, ,b:9092 "))
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("FURNICO_INT", "42")
	t.Setenv("FURNICO_BAD_INT", "x")
	t.Setenv("FURNICO_DUR", "90s")
	t.Setenv("FURNICO_BOOL", "true")

	assert.Equal(t, 42, EnvIntDefault("FURNICO_INT", 1))
	assert.Equal(t, 1, EnvIntDefault("FURNICO_BAD_INT", 1))
	assert.Equal(t, 90*time.Second, EnvDurationDefault("FURNICO_DUR", time.Minute))
	assert.Equal(t, time.Minute, EnvDurationDefault("FURNICO_MISSING", time.Minute))
	assert.True(t, EnvBoolDefault("FURNICO_BOOL", false))
	assert.Equal(t, "def", EnvDefault("FURNICO_MISSING", "def"))
}
