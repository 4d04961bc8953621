package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verbose"), "nivel desconocido cae en info")
}

func TestNop_DescartaTodo(t *testing.T) {
	l := Nop()
	assert.Equal(t, zerolog.Disabled, l.Zerolog().GetLevel())

	comp := l.Component("scheduler")
	assert.Equal(t, zerolog.Disabled, comp.GetLevel())
	assert.NotPanics(t, func() { l.Info().Str("k", "v").Msg("nada") })
}
