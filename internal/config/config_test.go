package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCommentsAndTabs(t *testing.T) {
	input := "{\n\t# a top-of-line comment\n\t\"Cmd\": \"Glass\", # trailing comment\n\t\"LogLevel\": \"info\"\n}\n"
	cleaned, err := StripComments(strings.NewReader(input))
	require.NoError(t, err)
	assert.NotContains(t, cleaned, "#")
	assert.NotContains(t, cleaned, "\t")

	cfg, err := ParseString(cleaned)
	require.NoError(t, err)
	assert.Equal(t, "Glass", cfg.Cmd)
	assert.Equal(t, "info", cfg.String("LogLevel", ""))
}

func TestParseRejectsUnrecognizedCmd(t *testing.T) {
	_, err := ParseString(`{"Cmd": "Bogus"}`)
	assert.Error(t, err)
	var cfgErr *Error
	assert.ErrorAs(t, err, &cfgErr)
}

func TestParseRejectsMissingCmd(t *testing.T) {
	_, err := ParseString(`{"LogLevel": "info"}`)
	assert.Error(t, err)
}

func TestParseRejectsEmptyInput(t *testing.T) {
	_, err := ParseString("   ")
	assert.Error(t, err)
}

func TestAccessorDefaults(t *testing.T) {
	cfg, err := ParseString(`{"Cmd": "GlassInput", "QueueMaxSize": -1, "ShutdownWhenNoData": true, "Topics": ["a", "b"]}`)
	require.NoError(t, err)

	assert.Equal(t, -1, cfg.Int("QueueMaxSize", 0))
	assert.Equal(t, 100, cfg.Int("Missing", 100))
	assert.True(t, cfg.Bool("ShutdownWhenNoData", false))
	assert.False(t, cfg.Bool("Missing", false))
	assert.Equal(t, []string{"a", "b"}, cfg.StringSlice("Topics"))
	assert.Equal(t, "glassConverter", cfg.String("DefaultAuthor", "glassConverter"))
	assert.True(t, cfg.HasKey("QueueMaxSize"))
	assert.False(t, cfg.HasKey("Nope"))
}
