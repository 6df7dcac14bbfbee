//go:build mips || mipsle || mips64 || mips64le || ppc64 || ppc64le

package ioctl

// arch/{mips,powerpc}/include/uapi/asm/ioctl.h: 13 bit size, 3 bit direction
const (
	none  = 1
	read  = 2
	write = 4

	dirShift = 29
)
