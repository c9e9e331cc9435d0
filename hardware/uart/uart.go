// Package uart is the serial link to the host. The wire protocol is
// bare text tokens, one decimal code per token, newline or timeout
// delimited. No framing, no acknowledgement.
package uart

import (
	"errors"
	"log"
	"os"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	cBOTHER   = 0x1000
	cFIONREAD = 0x541b
	cNCCS     = 19
	cTCSETSF2 = 0x402c542d
)

type ErrTimeoutT string

func (e ErrTimeoutT) Error() string { return string(e) }
func (ErrTimeoutT) Timeout() bool   { return true }

// Porter abstracts the serial link for tests.
type Porter interface {
	// Pending returns the number of buffered input bytes without reading.
	Pending() (int, error)
	// ReadToken collects bytes until delim or timeout, whichever first.
	// The delimiter is consumed and not returned. Timeout with partial
	// data is not an error, callers get what arrived.
	ReadToken(delim byte, timeout time.Duration) ([]byte, error)
	Write(p []byte) (int, error)
	Close() error
}

type cc_t byte
type speed_t uint32
type tcflag_t uint32
type termios2 struct {
	c_iflag  tcflag_t    // input mode flags
	c_oflag  tcflag_t    // output mode flags
	c_cflag  tcflag_t    // control mode flags
	c_lflag  tcflag_t    // local mode flags
	c_line   cc_t        // line discipline
	c_cc     [cNCCS]cc_t // control characters
	c_ispeed speed_t     // input speed
	c_ospeed speed_t     // output speed
}

func ioctl(fd uintptr, op, arg uintptr) (err error) {
	r, _, errno := syscall.Syscall(syscall.SYS_IOCTL, fd, op, arg)
	if errno != 0 {
		err = os.NewSyscallError("SYS_IOCTL", errno)
	} else if r != 0 {
		err = errors.New("unknown error from SYS_IOCTL")
	}
	if err != nil {
		log.Printf("debug: uart.ioctl op=%x arg=%x err=%s", op, arg, err)
	}
	return err
}

func ioPending(fd uintptr) (int, error) {
	var out int
	err := ioctl(fd, uintptr(cFIONREAD), uintptr(unsafe.Pointer(&out)))
	return out, err
}

// ioWaitRead polls FIONREAD until min bytes are buffered or wait elapses.
func ioWaitRead(fd uintptr, min int, wait time.Duration) error {
	tfinal := time.Now().Add(wait)
	for {
		out, err := ioPending(fd)
		if err != nil {
			return err
		}
		if out >= min {
			return nil
		}
		if time.Now().After(tfinal) {
			return ErrTimeoutT("uart read timeout")
		}
		time.Sleep(wait / 16)
	}
}

// raw 8N1, arbitrary baud via BOTHER
func ioResetTermios(fd uintptr, t2 *termios2, baud int) error {
	*t2 = termios2{
		c_iflag:  unix.IGNBRK,
		c_cflag:  cBOTHER | syscall.CLOCAL | syscall.CREAD | syscall.CS8,
		c_ispeed: speed_t(baud),
		c_ospeed: speed_t(baud),
	}
	// flush both queues on apply
	return ioctl(fd, uintptr(cTCSETSF2), uintptr(unsafe.Pointer(t2)))
}
