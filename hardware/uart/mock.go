package uart

import (
	"sync"
	"time"
)

// MockPort is an in-memory Porter for tests.
type MockPort struct {
	mu      sync.Mutex
	input   []byte
	written []byte
	ReadErr error
}

var _ Porter = &MockPort{}

func NewMockPort() *MockPort { return &MockPort{} }

// Feed appends bytes to the pending input.
func (self *MockPort) Feed(s string) {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.input = append(self.input, s...)
}

func (self *MockPort) Pending() (int, error) {
	self.mu.Lock()
	defer self.mu.Unlock()
	return len(self.input), self.ReadErr
}

func (self *MockPort) ReadToken(delim byte, timeout time.Duration) ([]byte, error) {
	self.mu.Lock()
	defer self.mu.Unlock()
	if self.ReadErr != nil {
		return nil, self.ReadErr
	}
	token := make([]byte, 0, 16)
	for len(self.input) > 0 {
		b := self.input[0]
		self.input = self.input[1:]
		if b == delim {
			return token, nil
		}
		token = append(token, b)
	}
	// mock never blocks, empty input acts like timeout
	return token, nil
}

func (self *MockPort) Write(p []byte) (int, error) {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.written = append(self.written, p...)
	return len(p), nil
}

func (self *MockPort) Written() []byte {
	self.mu.Lock()
	defer self.mu.Unlock()
	out := make([]byte, len(self.written))
	copy(out, self.written)
	return out
}

func (self *MockPort) Close() error { return nil }
