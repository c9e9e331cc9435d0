package touch

import (
	"fmt"

	"github.com/juju/errors"
	gpio "github.com/temoto/gpio-cdev-go"
)

const chargeCountMax = 5000

// GpioSensor measures electrode capacitance by charge time: drive the
// line low to drain it, release to input and count poll iterations until
// the pull-up charges it back high. A finger adds capacitance, the count
// grows. Counts are summed over Oversample rounds.
type GpioSensor struct {
	chip       gpio.Chiper
	line       uint32
	oversample int
	tag        string
}

var _ Sensor = &GpioSensor{}

func NewGpioSensor(chipName string, line uint32, oversample int) (*GpioSensor, error) {
	if oversample <= 0 {
		oversample = 1
	}
	chip, err := gpio.Open(chipName, "touch")
	if err != nil {
		return nil, errors.Annotatef(err, "touch chip=%s", chipName)
	}
	self := &GpioSensor{
		chip:       chip,
		line:       line,
		oversample: oversample,
		tag:        fmt.Sprintf("touch(%s:%d)", chipName, line),
	}
	return self, nil
}

func (self *GpioSensor) String() string { return self.tag }

func (self *GpioSensor) Measure() (int32, error) {
	total := int32(0)
	for i := 0; i < self.oversample; i++ {
		n, err := self.measureOnce()
		if err != nil {
			return 0, errors.Annotate(err, self.tag)
		}
		total += n
	}
	return total, nil
}

func (self *GpioSensor) measureOnce() (int32, error) {
	if err := self.drain(); err != nil {
		return 0, err
	}

	lines, err := self.chip.OpenLines(gpio.GPIOHANDLE_REQUEST_INPUT, "touch", self.line)
	if err != nil {
		return 0, err
	}
	defer lines.Close()
	for count := int32(0); count < chargeCountMax; count++ {
		data, err := lines.Read()
		if err != nil {
			return 0, err
		}
		if data.Values[0] != 0 {
			return count, nil
		}
	}
	// stuck low, electrode probably shorted
	return chargeCountMax, nil
}

func (self *GpioSensor) drain() error {
	lines, err := self.chip.OpenLines(gpio.GPIOHANDLE_REQUEST_OUTPUT, "touch", self.line)
	if err != nil {
		return err
	}
	defer lines.Close()
	lines.SetFunc(self.line)(0)
	return lines.Flush()
}

func (self *GpioSensor) Close() error {
	return self.chip.Close()
}
