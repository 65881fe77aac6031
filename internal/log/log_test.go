package log

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug", zerolog.InfoLevel))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("WARN", zerolog.InfoLevel))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("3", zerolog.InfoLevel))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose", zerolog.InfoLevel))
}

func TestSetOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	Warn("materials.Convert", "hash collision")
	Error("main", "failed", errors.New("boom"))
	assert.Contains(t, buf.String(), `"context":"materials.Convert"`)
	assert.Contains(t, buf.String(), `"error":"boom"`)
}
