package device

import (
	"errors"
	"strconv"
)

// BufType is the V4L2 queue a buffer belongs to.
type BufType uint32

const (
	BufTypeCapture           BufType = V4L2_BUF_TYPE_VIDEO_CAPTURE
	BufTypeOutput            BufType = V4L2_BUF_TYPE_VIDEO_OUTPUT
	BufTypeOverlay           BufType = V4L2_BUF_TYPE_VIDEO_OVERLAY
	BufTypeVBICapture        BufType = V4L2_BUF_TYPE_VBI_CAPTURE
	BufTypeVBIOutput         BufType = V4L2_BUF_TYPE_VBI_OUTPUT
	BufTypeSlicedVBICapture  BufType = V4L2_BUF_TYPE_SLICED_VBI_CAPTURE
	BufTypeSlicedVBIOutput   BufType = V4L2_BUF_TYPE_SLICED_VBI_OUTPUT
	BufTypeOutputOverlay     BufType = V4L2_BUF_TYPE_VIDEO_OUTPUT_OVERLAY
	BufTypeCaptureMultiPlane BufType = V4L2_BUF_TYPE_VIDEO_CAPTURE_MPLANE
	BufTypeOutputMultiPlane  BufType = V4L2_BUF_TYPE_VIDEO_OUTPUT_MPLANE
	BufTypeSDRCapture        BufType = V4L2_BUF_TYPE_SDR_CAPTURE
	BufTypeSDROutput         BufType = V4L2_BUF_TYPE_SDR_OUTPUT
	BufTypeMetaCapture       BufType = V4L2_BUF_TYPE_META_CAPTURE
	BufTypeMetaOutput        BufType = V4L2_BUF_TYPE_META_OUTPUT
)

var bufTypeNames = map[BufType]string{
	BufTypeCapture:           "capture",
	BufTypeOutput:            "output",
	BufTypeOverlay:           "overlay",
	BufTypeVBICapture:        "vbi-capture",
	BufTypeVBIOutput:         "vbi-output",
	BufTypeSlicedVBICapture:  "sliced-vbi-capture",
	BufTypeSlicedVBIOutput:   "sliced-vbi-output",
	BufTypeOutputOverlay:     "output-overlay",
	BufTypeCaptureMultiPlane: "capture-mplane",
	BufTypeOutputMultiPlane:  "output-mplane",
	BufTypeSDRCapture:        "sdr-capture",
	BufTypeSDROutput:         "sdr-output",
	BufTypeMetaCapture:       "meta-capture",
	BufTypeMetaOutput:        "meta-output",
}

func (t BufType) String() string {
	if s, ok := bufTypeNames[t]; ok {
		return s
	}
	return "BufType(" + strconv.FormatUint(uint64(t), 10) + ")"
}

// IsMultiPlane reports whether buffers of this queue may have more than one plane.
func (t BufType) IsMultiPlane() bool {
	return t == BufTypeCaptureMultiPlane || t == BufTypeOutputMultiPlane
}

// ParseBufType accepts a name returned by String or a raw number.
// The number is not checked, the driver decides whether it is legal.
func ParseBufType(s string) (BufType, error) {
	for t, name := range bufTypeNames {
		if name == s {
			return t, nil
		}
	}
	if i, err := strconv.ParseUint(s, 10, 32); err == nil {
		return BufType(i), nil
	}
	return 0, errors.New("v4l2: unknown buffer type: " + s)
}

// ParseMemory accepts mmap, userptr, overlay or dmabuf.
func ParseMemory(s string) (uint32, error) {
	switch s {
	case "", "mmap":
		return V4L2_MEMORY_MMAP, nil
	case "userptr":
		return V4L2_MEMORY_USERPTR, nil
	case "overlay":
		return V4L2_MEMORY_OVERLAY, nil
	case "dmabuf":
		return V4L2_MEMORY_DMABUF, nil
	}
	return 0, errors.New("v4l2: unknown memory type: " + s)
}
