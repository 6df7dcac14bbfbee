//go:build mips || mipsle || mips64 || mips64le || ppc64 || ppc64le

package device

// mips and powerpc direction bits: _IOR = 2 << 29, _IOWR = 6 << 29
const (
	VIDIOC_QUERYCAP = 0x40685600
	VIDIOC_REQBUFS  = 0xc0145608
	VIDIOC_EXPBUF   = 0xc0405610
)
