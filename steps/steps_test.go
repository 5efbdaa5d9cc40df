package steps

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestReporter_StepModeLogsAndPauses(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := New(zap.New(core), true, 500*time.Millisecond)

	var slept []time.Duration
	r.sleep = func(d time.Duration) { slept = append(slept, d) }

	r.Step("Scraping grid...")
	r.Step("Scraping clues...", zap.Int("count", 10))

	require.Equal(t, 2, logs.Len())
	entries := logs.All()
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "Scraping grid...", entries[0].Message)
	assert.Equal(t, int64(10), entries[1].ContextMap()["count"])
	assert.Equal(t, []time.Duration{500 * time.Millisecond, 500 * time.Millisecond}, slept)
	assert.True(t, r.Enabled())
}

func TestReporter_SilentModeDebugOnly(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := New(zap.New(core), false, time.Second)
	r.sleep = func(time.Duration) { t.Fatal("silent mode must not pause") }

	r.Step("Opening the website...")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.DebugLevel, logs.All()[0].Level)
	assert.False(t, r.Enabled())
}

func TestReporter_Nil(t *testing.T) {
	var r *Reporter
	assert.NotPanics(t, func() { r.Step("nothing") })
	assert.False(t, r.Enabled())
}

func TestAskMode(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1\n", true},
		{" 1 \n", true},
		{"0\n", false},
		{"", false},
		{"yes\n", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got, err := AskMode(strings.NewReader(tt.input), &out)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Contains(t, out.String(), "single-stepping mode")
	}
}
