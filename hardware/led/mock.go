package led

import "sync"

// MockStrip records driver calls for tests.
type MockStrip struct {
	mu         sync.Mutex
	colors     []Color
	brightness uint8
	refreshes  int
	RefreshErr error
}

var _ Strip = &MockStrip{}

func NewMockStrip(numPixels int) *MockStrip {
	return &MockStrip{
		colors:     make([]Color, numPixels),
		brightness: 255,
	}
}

func (self *MockStrip) NumPixels() int { return len(self.colors) }

func (self *MockStrip) SetPixel(i int, c Color) {
	self.mu.Lock()
	defer self.mu.Unlock()
	if i < 0 || i >= len(self.colors) {
		return
	}
	self.colors[i] = c
}

func (self *MockStrip) Fill(c Color, start, count int) {
	self.mu.Lock()
	defer self.mu.Unlock()
	for i := start; i < start+count; i++ {
		if i < 0 || i >= len(self.colors) {
			continue
		}
		self.colors[i] = c
	}
}

func (self *MockStrip) SetBrightness(level uint8) {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.brightness = level
}

func (self *MockStrip) Refresh() error {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.refreshes++
	return self.RefreshErr
}

func (self *MockStrip) Close() error { return nil }

func (self *MockStrip) Colors() []Color {
	self.mu.Lock()
	defer self.mu.Unlock()
	out := make([]Color, len(self.colors))
	copy(out, self.colors)
	return out
}

func (self *MockStrip) Brightness() uint8 {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.brightness
}

func (self *MockStrip) Refreshes() int {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.refreshes
}
