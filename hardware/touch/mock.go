package touch

import "sync/atomic"

// MockSensor returns a settable reading, concurrency-safe.
type MockSensor struct {
	tag     string
	reading int32
	Err     error
}

var _ Sensor = &MockSensor{}

func NewMockSensor(tag string, reading int32) *MockSensor {
	return &MockSensor{tag: tag, reading: reading}
}

func (self *MockSensor) String() string { return self.tag }

func (self *MockSensor) Measure() (int32, error) {
	if self.Err != nil {
		return 0, self.Err
	}
	return atomic.LoadInt32(&self.reading), nil
}

func (self *MockSensor) SetReading(v int32) { atomic.StoreInt32(&self.reading, v) }

func (self *MockSensor) Close() error { return nil }
