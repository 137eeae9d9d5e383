package deps

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Mock implements Commander for testing
type Mock struct {
	mu            sync.Mutex
	Commands      map[string]bool   // which commands exist
	Responses     map[string]string // command prefix -> output
	Errors        map[string]error  // command prefix -> error
	RecordedCalls []RecordedCall
}

// RecordedCall captures a command invocation
type RecordedCall struct {
	Name string
	Args []string
	Dir  string
}

// String renders the call the way a shell would show it
func (c RecordedCall) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// NewMock creates a mock commander that knows the given executables
func NewMock(commands ...string) *Mock {
	m := &Mock{
		Commands:  make(map[string]bool),
		Responses: make(map[string]string),
		Errors:    make(map[string]error),
	}
	for _, c := range commands {
		m.Commands[c] = true
	}
	return m
}

// LookPath checks if a command exists in the mock
func (m *Mock) LookPath(name string) (string, error) {
	if m.Commands[name] {
		return "/usr/bin/" + name, nil
	}
	return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
}

// Run records the call and returns the mocked response
func (m *Mock) Run(ctx context.Context, name string, args []string, dir string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := RecordedCall{Name: name, Args: args, Dir: dir}
	m.RecordedCalls = append(m.RecordedCalls, call)

	key := call.String()
	if err, ok := m.Errors[key]; ok {
		return "", err
	}
	if resp, ok := m.Responses[key]; ok {
		return resp, nil
	}

	for pattern, err := range m.Errors {
		if strings.HasPrefix(key, pattern) {
			return "", err
		}
	}
	for pattern, resp := range m.Responses {
		if strings.HasPrefix(key, pattern) {
			return resp, nil
		}
	}

	return "", nil
}
