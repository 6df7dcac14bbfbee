//go:build linux

package device

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"unsafe"

	"golang.org/x/sys/unix"
)

// ExportFlags are open(2) flags applied to the exported DMABUF descriptor.
// Combinations are passed to the driver as is.
type ExportFlags uint32

const (
	ExportCloseOnExec ExportFlags = unix.O_CLOEXEC
	ExportReadOnly    ExportFlags = unix.O_RDONLY
	ExportWriteOnly   ExportFlags = unix.O_WRONLY
	ExportReadWrite   ExportFlags = unix.O_RDWR
)

// ParseExportFlags accepts names separated by space, comma or pipe:
// cloexec, rdonly, wronly, rdwr.
func ParseExportFlags(s string) (ExportFlags, error) {
	var flags ExportFlags
	for _, name := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '|'
	}) {
		switch strings.ToLower(name) {
		case "cloexec":
			flags |= ExportCloseOnExec
		case "rdonly":
			flags |= ExportReadOnly
		case "wronly":
			flags |= ExportWriteOnly
		case "rdwr":
			flags |= ExportReadWrite
		default:
			return 0, errors.New("v4l2: unknown export flag: " + name)
		}
	}
	return flags, nil
}

// Controller sends a request to the driver. The driver may write its
// response back into arg before Ioctl returns.
type Controller interface {
	Ioctl(req uint, arg unsafe.Pointer) error
}

// ExportError means the driver refused the request. Err holds the original
// errno, so errors.Is(err, unix.EINVAL) works on it.
type ExportError struct {
	Err error
}

func (e *ExportError) Error() string {
	return "v4l2: export buffer: " + e.Err.Error()
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// Export converts plane of buffer index in queue typ into a standalone
// DMABUF descriptor with one VIDIOC_EXPBUF call.
// The returned file belongs to the caller, who must close it.
func Export(c Controller, typ BufType, index, plane uint32, flags ExportFlags) (*os.File, error) {
	eb := newExportBuffer(typ, index, plane, flags)
	if err := c.Ioctl(VIDIOC_EXPBUF, unsafe.Pointer(&eb)); err != nil {
		return nil, &ExportError{Err: err}
	}
	if eb.fd < 0 {
		return nil, &ExportError{Err: unix.EBADF}
	}
	return adoptFD(eb.fd, typ, index, plane), nil
}

func newExportBuffer(typ BufType, index, plane uint32, flags ExportFlags) v4l2_exportbuffer {
	return v4l2_exportbuffer{
		typ:   uint32(typ),
		index: index,
		plane: plane,
		flags: uint32(flags),
	}
}

// adoptFD is the only place a descriptor written by the driver becomes an
// owned *os.File. It must be called once, only after a successful ioctl and
// only with a non-negative fd.
func adoptFD(fd int32, typ BufType, index, plane uint32) *os.File {
	name := "dmabuf:" + typ.String() + ":" + strconv.FormatUint(uint64(index), 10) +
		":" + strconv.FormatUint(uint64(plane), 10)
	return os.NewFile(uintptr(fd), name)
}

func (f ExportFlags) String() string {
	var s string
	switch f & unix.O_ACCMODE {
	case ExportReadOnly:
		s = "rdonly"
	case ExportWriteOnly:
		s = "wronly"
	case ExportReadWrite:
		s = "rdwr"
	default:
		s = "accmode(3)"
	}
	if f&ExportCloseOnExec != 0 {
		s += "|cloexec"
	}
	if rest := f &^ (unix.O_ACCMODE | ExportCloseOnExec); rest != 0 {
		s += "|0x" + strconv.FormatUint(uint64(rest), 16)
	}
	return s
}
