package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	cfg := map[string]string{
		"PORT":    "9090",
		"BAD_INT": "nine",
		"SECURE":  "true",
		"ORIGINS": "https://a.dev, ,https://b.dev",
		"EMPTY":   "",
	}

	require.Equal(t, 9090, GetInt(cfg, "PORT", 8080))
	require.Equal(t, 8080, GetInt(cfg, "BAD_INT", 8080))
	require.Equal(t, 8080, GetInt(nil, "PORT", 8080))

	require.Equal(t, "fallback", GetString(cfg, "EMPTY", "fallback"))
	require.Equal(t, "fallback", GetString(cfg, "MISSING", "fallback"))

	require.True(t, GetBool(cfg, "SECURE", false))
	require.False(t, GetBool(cfg, "PORT", false))

	require.Equal(t, []string{"https://a.dev", "https://b.dev"}, GetList(cfg, "ORIGINS", nil))
	require.Equal(t, []string{"*"}, GetList(cfg, "EMPTY", []string{"*"}))
}

func TestSplit(t *testing.T) {
	key, value := split("A=b=c")
	require.Equal(t, "A", key)
	require.Equal(t, "b=c", value)

	key, value = split("LONE")
	require.Equal(t, "LONE", key)
	require.Empty(t, value)
}
