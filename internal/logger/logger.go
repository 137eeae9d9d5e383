package logger

// Logger is the minimal printf-style sink shared by every package.
type Logger interface {
	Logf(format string, args ...interface{})
	Log(msg string)
}

// Leveled adds the status levels used for progress and result reporting.
type Leveled interface {
	Logger
	Info(msg string)
	Success(msg string)
	Warn(msg string)
	Error(msg string)
	Skip(msg string)
	Debugf(format string, args ...interface{})
	Break()
}

// Spinner displays progress for a long-running operation.
// Implementations should be safe for single-threaded Start/Stop/Fail usage.
type Spinner interface {
	// Update changes the spinner text while running.
	Update(text string)
	// Stop stops the spinner and prints a success indicator.
	Stop()
	// Fail stops the spinner and prints a failure indicator.
	Fail()
}

// SpinnerStarter is implemented by loggers that can animate progress.
type SpinnerStarter interface {
	StartSpinner(text string) Spinner
}

// StartSpinner starts a spinner on l when it supports one. Other loggers get
// a spinner that does nothing.
func StartSpinner(l Logger, text string) Spinner {
	if s, ok := l.(SpinnerStarter); ok {
		return s.StartSpinner(text)
	}
	return &noOpSpinner{}
}

// noOpSpinner is used when output is non-interactive (e.g., tests, piped output).
// It performs no rendering to keep output stable.
type noOpSpinner struct{}

func (n *noOpSpinner) Update(text string) {}
func (n *noOpSpinner) Stop()              {}
func (n *noOpSpinner) Fail()              {}

// AsLeveled returns l itself when it already supports levels, otherwise a
// wrapper that prefixes each level onto the plain sink.
func AsLeveled(l Logger) Leveled {
	if l == nil {
		return Nop{}
	}
	if lv, ok := l.(Leveled); ok {
		return lv
	}
	return &plainLeveled{Logger: l}
}

type plainLeveled struct {
	Logger
}

func (p *plainLeveled) Info(msg string)    { p.Log("info: " + msg) }
func (p *plainLeveled) Success(msg string) { p.Log("ok: " + msg) }
func (p *plainLeveled) Warn(msg string)    { p.Log("warn: " + msg) }
func (p *plainLeveled) Error(msg string)   { p.Log("error: " + msg) }
func (p *plainLeveled) Skip(msg string)    { p.Log("skip: " + msg) }
func (p *plainLeveled) Break()             { p.Log("") }

func (p *plainLeveled) Debugf(format string, args ...interface{}) {}
