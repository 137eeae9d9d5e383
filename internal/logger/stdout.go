package logger

import (
	"fmt"
)

type StdoutLogger struct{}

func (l *StdoutLogger) Logf(format string, args ...interface{}) { fmt.Printf(format, args...) }
func (l *StdoutLogger) Log(msg string)                          { fmt.Println(msg) }

// Nop discards everything. Tests use it to keep output quiet.
type Nop struct{}

func (Nop) Logf(format string, args ...interface{})   {}
func (Nop) Log(msg string)                            {}
func (Nop) Info(msg string)                           {}
func (Nop) Success(msg string)                        {}
func (Nop) Warn(msg string)                           {}
func (Nop) Error(msg string)                          {}
func (Nop) Skip(msg string)                           {}
func (Nop) Debugf(format string, args ...interface{}) {}
func (Nop) Break()                                    {}
