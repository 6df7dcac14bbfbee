//go:build !(mips || mipsle || mips64 || mips64le || ppc64 || ppc64le)

package ioctl

// asm-generic/ioctl.h
const (
	none  = 0
	write = 1
	read  = 2

	dirShift = 30
)
