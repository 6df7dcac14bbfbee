//go:build linux

package device

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/AlexxIT/expbuf/pkg/ioctl"
	"golang.org/x/sys/unix"
)

type Device struct {
	fd   int
	path string
}

func Open(path string) (*Device, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: path, Err: err}
	}
	return &Device{fd: fd, path: path}, nil
}

func (d *Device) Fd() int {
	return d.fd
}

func (d *Device) Path() string {
	return d.path
}

// Ioctl makes Device a Controller.
func (d *Device) Ioctl(req uint, arg unsafe.Pointer) error {
	return ioctl.Ioctl(d.fd, req, arg)
}

type Capability struct {
	Driver       string
	Card         string
	BusInfo      string
	Version      string
	Capabilities uint32
}

func (c *Capability) MultiPlane() bool {
	return c.Capabilities&(V4L2_CAP_VIDEO_CAPTURE_MPLANE|V4L2_CAP_VIDEO_OUTPUT_MPLANE|V4L2_CAP_VIDEO_M2M_MPLANE) != 0
}

func (c *Capability) Streaming() bool {
	return c.Capabilities&V4L2_CAP_STREAMING != 0
}

func (d *Device) Capability() (*Capability, error) {
	c := v4l2_capability{}
	if err := d.Ioctl(VIDIOC_QUERYCAP, unsafe.Pointer(&c)); err != nil {
		return nil, err
	}

	caps := c.capabilities
	if caps&V4L2_CAP_DEVICE_CAPS != 0 {
		caps = c.device_caps
	}

	return &Capability{
		Driver:       ioctl.Str(c.driver[:]),
		Card:         ioctl.Str(c.card[:]),
		BusInfo:      ioctl.Str(c.bus_info[:]),
		Version:      fmt.Sprintf("%d.%d.%d", byte(c.version>>16), byte(c.version>>8), byte(c.version)),
		Capabilities: caps,
	}, nil
}

// RequestBuffers allocates count buffers of the queue typ. The driver may
// grant a different number, which is returned.
func (d *Device) RequestBuffers(typ BufType, memory, count uint32) (uint32, error) {
	rb := v4l2_requestbuffers{
		count:  count,
		typ:    uint32(typ),
		memory: memory,
	}
	if err := d.Ioctl(VIDIOC_REQBUFS, unsafe.Pointer(&rb)); err != nil {
		return 0, err
	}
	return rb.count, nil
}

func (d *Device) ReleaseBuffers(typ BufType, memory uint32) error {
	_, err := d.RequestBuffers(typ, memory, 0)
	return err
}

func (d *Device) Export(typ BufType, index, plane uint32, flags ExportFlags) (*os.File, error) {
	return Export(d, typ, index, plane, flags)
}

func (d *Device) Close() error {
	return unix.Close(d.fd)
}
