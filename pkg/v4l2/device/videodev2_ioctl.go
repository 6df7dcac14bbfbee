//go:build !(mips || mipsle || mips64 || mips64le || ppc64 || ppc64le)

package device

// asm-generic direction bits: _IOR = 2 << 30, _IOWR = 3 << 30
const (
	VIDIOC_QUERYCAP = 0x80685600
	VIDIOC_REQBUFS  = 0xc0145608
	VIDIOC_EXPBUF   = 0xc0405610
)
