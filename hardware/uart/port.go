package uart

import (
	"os"
	"syscall"
	"time"

	"github.com/juju/errors"
)

type Port struct {
	f  *os.File
	t2 termios2
}

var _ Porter = &Port{}

func NewPort() *Port { return &Port{} }

func (self *Port) Open(path string, baud int) (err error) {
	if self.f != nil {
		self.f.Close()
	}
	self.f, err = os.OpenFile(path, syscall.O_RDWR|syscall.O_NOCTTY, 0600)
	if err != nil {
		return errors.Annotatef(err, "uart open path=%s", path)
	}
	if err = ioResetTermios(self.f.Fd(), &self.t2, baud); err != nil {
		self.f.Close()
		self.f = nil
		return errors.Annotatef(err, "uart termios path=%s baud=%d", path, baud)
	}
	return nil
}

func (self *Port) Pending() (int, error) {
	return ioPending(self.f.Fd())
}

func (self *Port) ReadToken(delim byte, timeout time.Duration) ([]byte, error) {
	fd := self.f.Fd()
	token := make([]byte, 0, 16)
	tfinal := time.Now().Add(timeout)
	one := [1]byte{}
	for {
		left := time.Until(tfinal)
		if left <= 0 {
			return token, nil
		}
		if err := ioWaitRead(fd, 1, left); err != nil {
			if _, ok := err.(ErrTimeoutT); ok {
				return token, nil
			}
			return token, err
		}
		n, err := syscall.Read(int(fd), one[:])
		if err != nil {
			return token, err
		}
		if n == 0 {
			continue
		}
		if one[0] == delim {
			return token, nil
		}
		token = append(token, one[0])
	}
}

func (self *Port) Write(p []byte) (int, error) {
	return self.f.Write(p)
}

func (self *Port) Close() error {
	if self.f == nil {
		return nil
	}
	return self.f.Close()
}
