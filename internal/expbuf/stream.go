//go:build linux

package expbuf

import (
	"errors"
	"os"

	"github.com/AlexxIT/expbuf/pkg/v4l2/device"
)

type StreamConfig struct {
	Device string `yaml:"device" json:"device"`
	Type   string `yaml:"type" json:"type"`
	Memory string `yaml:"memory" json:"memory,omitempty"`
	Count  uint32 `yaml:"count" json:"count"`
	Planes uint32 `yaml:"planes" json:"planes,omitempty"`
	Flags  string `yaml:"flags" json:"flags,omitempty"`
}

// Buffer is one exported plane. File is owned by the stream until Close.
type Buffer struct {
	Index uint32   `json:"index"`
	Plane uint32   `json:"plane"`
	File  *os.File `json:"-"`
}

type Stream struct {
	Name    string
	Device  string
	Type    device.BufType
	Flags   device.ExportFlags
	Buffers []*Buffer

	dev    *device.Device
	memory uint32
}

func OpenStream(name string, conf StreamConfig) (*Stream, error) {
	typ, err := device.ParseBufType(conf.Type)
	if err != nil {
		return nil, err
	}
	memory, err := device.ParseMemory(conf.Memory)
	if err != nil {
		return nil, err
	}
	flags, err := device.ParseExportFlags(conf.Flags)
	if err != nil {
		return nil, err
	}
	if conf.Count == 0 {
		return nil, errors.New("expbuf: buffers count is zero")
	}

	dev, err := device.Open(conf.Device)
	if err != nil {
		return nil, err
	}

	if caps, err := dev.Capability(); err == nil {
		log.Debug().Str("driver", caps.Driver).Str("card", caps.Card).Str("bus", caps.BusInfo).
			Str("version", caps.Version).Bool("mplane", caps.MultiPlane()).Msg("[expbuf] " + conf.Device)
	}

	count, err := dev.RequestBuffers(typ, memory, conf.Count)
	if err != nil {
		_ = dev.Close()
		return nil, err
	}
	if count < conf.Count {
		log.Warn().Uint32("want", conf.Count).Uint32("got", count).Msgf("[expbuf] %s buffers count", name)
	}

	buffers, err := exportAll(dev, typ, count, planesCount(typ, conf.Planes), flags)
	if err != nil {
		_ = dev.ReleaseBuffers(typ, memory)
		_ = dev.Close()
		return nil, err
	}

	return &Stream{
		Name:    name,
		Device:  conf.Device,
		Type:    typ,
		Flags:   flags,
		Buffers: buffers,
		dev:     dev,
		memory:  memory,
	}, nil
}

// exportAll exports every plane of buffers 0..count-1. On the first failure
// it closes what was already exported.
func exportAll(c device.Controller, typ device.BufType, count, planes uint32, flags device.ExportFlags) ([]*Buffer, error) {
	buffers := make([]*Buffer, 0, count*planes)

	for index := uint32(0); index < count; index++ {
		for plane := uint32(0); plane < planes; plane++ {
			f, err := device.Export(c, typ, index, plane, flags)
			if err != nil {
				closeBuffers(buffers)
				return nil, err
			}
			buffers = append(buffers, &Buffer{Index: index, Plane: plane, File: f})
		}
	}

	return buffers, nil
}

func planesCount(typ device.BufType, planes uint32) uint32 {
	if planes == 0 || !typ.IsMultiPlane() {
		return 1
	}
	return planes
}

func closeBuffers(buffers []*Buffer) {
	for _, buf := range buffers {
		_ = buf.File.Close()
	}
}

// Close closes the exported descriptors and frees the driver buffers. The
// driver keeps the memory alive while other processes hold their copies.
func (s *Stream) Close() error {
	closeBuffers(s.Buffers)
	s.Buffers = nil

	if s.dev == nil {
		return nil
	}
	return errors.Join(s.dev.ReleaseBuffers(s.Type, s.memory), s.dev.Close())
}
