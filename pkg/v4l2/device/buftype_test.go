package device

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBufType(t *testing.T) {
	tests := []struct {
		name string
		typ  BufType
	}{
		{"capture", BufTypeCapture},
		{"output", BufTypeOutput},
		{"capture-mplane", BufTypeCaptureMultiPlane},
		{"output-mplane", BufTypeOutputMultiPlane},
		{"meta-output", BufTypeMetaOutput},
		{"9", BufTypeCaptureMultiPlane},
		{"200", BufType(200)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			typ, err := ParseBufType(tc.name)
			require.Nil(t, err)
			require.Equal(t, tc.typ, typ)
		})
	}

	_, err := ParseBufType("webcam")
	require.NotNil(t, err)
}

func TestBufTypeString(t *testing.T) {
	for typ, name := range bufTypeNames {
		require.Equal(t, name, typ.String())

		parsed, err := ParseBufType(typ.String())
		require.Nil(t, err)
		require.Equal(t, typ, parsed)
	}

	require.Equal(t, "BufType(99)", BufType(99).String())
}

func TestIsMultiPlane(t *testing.T) {
	require.True(t, BufTypeCaptureMultiPlane.IsMultiPlane())
	require.True(t, BufTypeOutputMultiPlane.IsMultiPlane())
	require.False(t, BufTypeCapture.IsMultiPlane())
	require.False(t, BufTypeOutput.IsMultiPlane())
}

func TestParseMemory(t *testing.T) {
	m, err := ParseMemory("")
	require.Nil(t, err)
	require.Equal(t, uint32(V4L2_MEMORY_MMAP), m)

	m, err = ParseMemory("dmabuf")
	require.Nil(t, err)
	require.Equal(t, uint32(V4L2_MEMORY_DMABUF), m)

	_, err = ParseMemory("shm")
	require.NotNil(t, err)
}
