//go:build linux

// Package fdpass moves open descriptors between processes over a unix
// socket as SCM_RIGHTS control messages. Use it with "unixpacket"
// sockets so every Send matches exactly one Recv.
package fdpass

import (
	"errors"
	"net"
	"os"
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// MaxFiles is SCM_MAX_FD, the kernel limit of descriptors in one message.
const MaxFiles = 253

// MaxHeader is the largest header Recv accepts.
const MaxHeader = 64 * 1024

var (
	ErrEmptyHeader    = errors.New("fdpass: empty header")
	ErrTooManyFiles   = errors.New("fdpass: too many files")
	ErrHeaderTooLarge = errors.New("fdpass: header too large")
	ErrTruncated      = errors.New("fdpass: message truncated")
)

// Send writes header and duplicates of files as one message. The files stay
// open and owned by the caller.
func Send(conn *net.UnixConn, header []byte, files ...*os.File) error {
	if len(header) == 0 {
		return ErrEmptyHeader
	}
	if len(header) > MaxHeader {
		return ErrHeaderTooLarge
	}
	if len(files) > MaxFiles {
		return ErrTooManyFiles
	}

	var oob []byte
	if len(files) > 0 {
		fds := make([]int, len(files))
		for i, f := range files {
			fds[i] = int(f.Fd())
		}
		oob = unix.UnixRights(fds...)
	}

	n, oobn, err := conn.WriteMsgUnix(header, oob, nil)
	runtime.KeepAlive(files)
	if err != nil {
		return err
	}
	if n != len(header) || oobn != len(oob) {
		return errors.New("fdpass: short write")
	}
	return nil
}

// Recv reads one message written by Send. Every returned file belongs to
// the caller. On error no descriptor is left open.
func Recv(conn *net.UnixConn) (header []byte, files []*os.File, err error) {
	buf := make([]byte, MaxHeader)
	oob := make([]byte, unix.CmsgSpace(MaxFiles*4))

	n, oobn, flags, _, err := conn.ReadMsgUnix(buf, oob)
	if err != nil {
		return nil, nil, err
	}

	if oobn > 0 {
		if files, err = parseRights(oob[:oobn]); err != nil {
			return nil, nil, err
		}
	}

	if flags&(unix.MSG_TRUNC|unix.MSG_CTRUNC) != 0 {
		closeAll(files)
		return nil, nil, ErrTruncated
	}

	return buf[:n], files, nil
}

func parseRights(oob []byte) ([]*os.File, error) {
	msgs, err := unix.ParseSocketControlMessage(oob)
	if err != nil {
		// the kernel has already installed the descriptors
		closeRights(oob)
		return nil, err
	}

	var files []*os.File
	for i := range msgs {
		fds, err := unix.ParseUnixRights(&msgs[i])
		if err != nil {
			continue // not SCM_RIGHTS
		}
		for _, fd := range fds {
			files = append(files, os.NewFile(uintptr(fd), "fdpass"))
		}
	}
	return files, nil
}

func closeAll(files []*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}

// closeRights walks raw control messages up to the first malformed header
// and closes every SCM_RIGHTS descriptor found.
func closeRights(oob []byte) {
	hdrLen := unix.CmsgLen(0)

	for len(oob) >= hdrLen {
		h := (*unix.Cmsghdr)(unsafe.Pointer(&oob[0]))
		n := int(h.Len)
		if n < hdrLen || n > len(oob) {
			return
		}

		if h.Level == unix.SOL_SOCKET && h.Type == unix.SCM_RIGHTS {
			for data := oob[hdrLen:n]; len(data) >= 4; data = data[4:] {
				_ = unix.Close(int(*(*int32)(unsafe.Pointer(&data[0]))))
			}
		}

		next := unix.CmsgSpace(n - hdrLen)
		if next > len(oob) {
			return
		}
		oob = oob[next:]
	}
}
