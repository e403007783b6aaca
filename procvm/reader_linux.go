//go:build linux

// Package procvm implements the memory.Reader boundary over the Linux
// process_vm_readv syscall. It never attaches to or stops the target; a
// pid and ptrace-read permission are all it needs.
package procvm

import (
	"fmt"
	"unsafe"

	"memsig/memory"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"golang.org/x/sys/unix"
)

// Reader reads another process's memory by pid.
type Reader struct {
	pid int
	log *logger.Logger
}

var _ memory.Reader = (*Reader)(nil)

// New creates a Reader for the given pid. No handle is held; each read is
// an independent syscall, so there is nothing to close.
func New(pid int) *Reader {
	return &Reader{
		pid: pid,
		log: logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, fmt.Sprintf("procvm-%d", pid))),
	}
}

// PID returns the target process id.
func (r *Reader) PID() int {
	return r.pid
}

// ReadMemory reads size bytes at addr from the target process. Failures
// are classified onto the memory package sentinels: a fault or permission
// problem is ErrUnreadable, a short transfer returns the valid prefix
// with ErrPartialRead.
func (r *Reader) ReadMemory(addr memory.Address, size memory.Size) ([]byte, error) {
	if size == 0 {
		return nil, fmt.Errorf("zero-length read at %s: %w", addr.ToString(), memory.ErrOutOfRange)
	}

	buf := make([]byte, size)

	localIov := unix.Iovec{
		Base: &buf[0],
		Len:  uint64(size),
	}
	remoteIov := unix.RemoteIovec{
		Base: uintptr(addr),
		Len:  int(size),
	}

	n, _, errno := unix.Syscall6(
		unix.SYS_PROCESS_VM_READV,
		uintptr(r.pid),
		uintptr(unsafe.Pointer(&localIov)),
		uintptr(1),
		uintptr(unsafe.Pointer(&remoteIov)),
		uintptr(1),
		uintptr(0), // flags, reserved
	)

	if errno != 0 {
		r.log.Debugln("process_vm_readv at", addr.ToString(), "failed:", errno.Error())
		switch errno {
		case unix.EFAULT, unix.EIO, unix.EPERM, unix.ESRCH:
			return nil, fmt.Errorf("process_vm_readv pid %d at %s: %s: %w", r.pid, addr.ToString(), errno.Error(), memory.ErrUnreadable)
		default:
			return nil, fmt.Errorf("process_vm_readv pid %d at %s: %s (errno %d)", r.pid, addr.ToString(), errno.Error(), int(errno))
		}
	}

	if uint64(n) != uint64(size) {
		return buf[:n], fmt.Errorf("process_vm_readv pid %d at %s: %d of %s: %w", r.pid, addr.ToString(), n, size.ToString(), memory.ErrPartialRead)
	}

	return buf, nil
}
