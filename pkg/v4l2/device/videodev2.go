package device

// https://github.com/torvalds/linux/blob/master/include/uapi/linux/videodev2.h

// Structures below have the same size on 32 and 64 bit platforms.
// Ioctl codes live in videodev2_ioctl*.go, the direction bits depend on arch.

const (
	V4L2_BUF_TYPE_VIDEO_CAPTURE        = 1
	V4L2_BUF_TYPE_VIDEO_OUTPUT         = 2
	V4L2_BUF_TYPE_VIDEO_OVERLAY        = 3
	V4L2_BUF_TYPE_VBI_CAPTURE          = 4
	V4L2_BUF_TYPE_VBI_OUTPUT           = 5
	V4L2_BUF_TYPE_SLICED_VBI_CAPTURE   = 6
	V4L2_BUF_TYPE_SLICED_VBI_OUTPUT    = 7
	V4L2_BUF_TYPE_VIDEO_OUTPUT_OVERLAY = 8
	V4L2_BUF_TYPE_VIDEO_CAPTURE_MPLANE = 9
	V4L2_BUF_TYPE_VIDEO_OUTPUT_MPLANE  = 10
	V4L2_BUF_TYPE_SDR_CAPTURE          = 11
	V4L2_BUF_TYPE_SDR_OUTPUT           = 12
	V4L2_BUF_TYPE_META_CAPTURE         = 13
	V4L2_BUF_TYPE_META_OUTPUT          = 14
)

const (
	V4L2_MEMORY_MMAP    = 1
	V4L2_MEMORY_USERPTR = 2
	V4L2_MEMORY_OVERLAY = 3
	V4L2_MEMORY_DMABUF  = 4
)

const (
	V4L2_CAP_VIDEO_CAPTURE        = 0x00000001
	V4L2_CAP_VIDEO_OUTPUT         = 0x00000002
	V4L2_CAP_VIDEO_CAPTURE_MPLANE = 0x00001000
	V4L2_CAP_VIDEO_OUTPUT_MPLANE  = 0x00002000
	V4L2_CAP_VIDEO_M2M_MPLANE     = 0x00004000
	V4L2_CAP_VIDEO_M2M            = 0x00008000
	V4L2_CAP_STREAMING            = 0x04000000
	V4L2_CAP_DEVICE_CAPS          = 0x80000000
)

const (
	V4L2_BUF_CAP_SUPPORTS_MMAP   = 1 << 0
	V4L2_BUF_CAP_SUPPORTS_DMABUF = 1 << 2
)

type v4l2_capability struct { // size 104
	driver       [16]byte  // offset 0, size 16
	card         [32]byte  // offset 16, size 32
	bus_info     [32]byte  // offset 48, size 32
	version      uint32    // offset 80, size 4
	capabilities uint32    // offset 84, size 4
	device_caps  uint32    // offset 88, size 4
	reserved     [3]uint32 // offset 92, size 12
}

type v4l2_requestbuffers struct { // size 20
	count        uint32   // offset 0, size 4
	typ          uint32   // offset 4, size 4
	memory       uint32   // offset 8, size 4
	capabilities uint32   // offset 12, size 4
	flags        uint8    // offset 16, size 1
	reserved     [3]uint8 // offset 17, size 3
}

type v4l2_exportbuffer struct { // size 64
	typ      uint32     // offset 0, size 4
	index    uint32     // offset 4, size 4
	plane    uint32     // offset 8, size 4
	flags    uint32     // offset 12, size 4
	fd       int32      // offset 16, size 4
	reserved [11]uint32 // offset 20, size 44
}
