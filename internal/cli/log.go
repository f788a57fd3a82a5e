package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w that drops messages below level.
// Every line carries a wall-clock stamp such as "09:41:07.25".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress remembers when an operation began so its completion can be
// logged with the time it took. One progress belongs to one goroutine;
// call done from the goroutine that created it.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress starts timing now. Pair it with a single call to done once
// the operation has finished.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level followed by the elapsed time, rounded to the
// millisecond, e.g. "rendered 12 scenes (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is unexported so no other package can read or overwrite the
// values stored under it.
type ctxKey int

// loggerKey holds the command's *log.Logger in a context.
const loggerKey ctxKey = 0

// withLogger attaches l to ctx. Commands retrieve it with
// loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger. A context
// without one yields log.Default(), so callers never get nil.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
