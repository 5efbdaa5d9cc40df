// Package steps reports run stages, pausing between them in single-stepping mode.
package steps

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Reporter logs named stages of a run. In step mode each stage is logged at
// info level followed by a pause; otherwise stages go to debug with no pause.
type Reporter struct {
	log     *zap.Logger
	enabled bool
	delay   time.Duration
	sleep   func(time.Duration)
}

// New returns a reporter. A nil logger is replaced by a no-op logger.
func New(log *zap.Logger, enabled bool, delay time.Duration) *Reporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reporter{log: log, enabled: enabled, delay: delay, sleep: time.Sleep}
}

// Enabled reports whether single-stepping mode is on.
func (r *Reporter) Enabled() bool {
	return r != nil && r.enabled
}

// Step records the start of a stage.
func (r *Reporter) Step(msg string, fields ...zap.Field) {
	if r == nil {
		return
	}
	if !r.enabled {
		r.log.Debug(msg, fields...)
		return
	}
	r.log.Info(msg, fields...)
	if r.delay > 0 {
		r.sleep(r.delay)
	}
}

// AskMode prompts on out and reads the answer from in. "1" selects
// single-stepping mode, anything else (including no answer) normal mode.
func AskMode(in io.Reader, out io.Writer) (bool, error) {
	fmt.Fprint(out, "Enter 1 to run the program in single-stepping mode\nEnter 0 to run in normal mode: ")

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading run mode: %w", err)
	}
	return strings.TrimSpace(answer) == "1", nil
}
