// Package config loads and validates the pipeline's JSON
// configuration blocks. Comment/tab stripping mirrors
// original_source/config/src/config.cpp's parseLineFromFile: tabs are
// removed outright, and a '#' marks the rest of its line as a comment
// (lines are concatenated with no separator, matching the original's
// line-by-line accumulation into a single JSON string).
package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Cmd discriminators recognized at the top level of a configuration
// block.
const (
	CmdGlassInput        = "GlassInput"
	CmdGlassOutput       = "GlassOutput"
	CmdGlass             = "Glass"
	CmdGenTravelTimesApp = "gen-travel-times-app"
)

var recognizedCmds = map[string]bool{
	CmdGlassInput:        true,
	CmdGlassOutput:       true,
	CmdGlass:             true,
	CmdGenTravelTimesApp: true,
}

// Config is a parsed, validated configuration block.
type Config struct {
	Cmd    string
	values map[string]any
}

// Error is returned by Parse/ParseString for any configuration
// problem (malformed JSON, missing or unrecognized Cmd), letting a
// caller like cmd/glass-app map configuration failures specifically to
// its documented exit code without string-matching error text.
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

func newError(format string, args ...any) *Error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

// StripComments removes tab characters and, for each line, everything
// from the first '#' onward, then concatenates the surviving
// fragments with no separator between lines.
func StripComments(r io.Reader) (string, error) {
	var b strings.Builder
	scanner := bufio.NewScanner(r)
	// config files may contain lines much longer than bufio's 64KiB
	// default (e.g. embedded station lists); grow the buffer.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 16*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		line = strings.ReplaceAll(line, "\t", "")
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		b.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("config: reading input: %w", err)
	}
	return b.String(), nil
}

// Parse strips comments/tabs from r, parses the result as a JSON
// object, and validates the Cmd discriminator.
func Parse(r io.Reader) (*Config, error) {
	cleaned, err := StripComments(r)
	if err != nil {
		return nil, err
	}
	return ParseString(cleaned)
}

// ParseString parses an already-cleaned JSON configuration string.
func ParseString(cleaned string) (*Config, error) {
	if strings.TrimSpace(cleaned) == "" {
		return nil, newError("config: empty configuration string")
	}

	var values map[string]any
	if err := json.Unmarshal([]byte(cleaned), &values); err != nil {
		return nil, newError("config: invalid JSON: %s", err)
	}

	rawCmd, ok := values["Cmd"]
	if !ok {
		return nil, newError("config: missing required Cmd discriminator")
	}
	cmd, ok := rawCmd.(string)
	if !ok || !recognizedCmds[cmd] {
		return nil, newError("config: unrecognized Cmd discriminator: %v", rawCmd)
	}

	return &Config{Cmd: cmd, values: values}, nil
}

// HasKey reports whether the configuration carries a top-level key.
func (c *Config) HasKey(key string) bool {
	_, ok := c.values[key]
	return ok
}

// String returns the string value at key, or def if absent/wrong type.
func (c *Config) String(key, def string) string {
	if v, ok := c.values[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Int returns the integer value at key, or def if absent/wrong type.
// JSON numbers decode as float64; this truncates toward zero.
func (c *Config) Int(key string, def int) int {
	if v, ok := c.values[key]; ok {
		if f, ok := v.(float64); ok {
			return int(f)
		}
	}
	return def
}

// Bool returns the boolean value at key, or def if absent/wrong type.
func (c *Config) Bool(key string, def bool) bool {
	if v, ok := c.values[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// StringSlice returns the string array value at key, or nil if
// absent/wrong type.
func (c *Config) StringSlice(key string) []string {
	v, ok := c.values[key]
	if !ok {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Raw returns the full decoded configuration map, for callers (e.g.
// the Engine dispatch path) that need to forward the whole block
// opaquely.
func (c *Config) Raw() map[string]any {
	return c.values
}
