//go:build linux

package expbuf

import (
	"errors"
	"net"
	"sync"

	"github.com/AlexxIT/expbuf/internal/app"
	"github.com/rs/zerolog"
)

func Init() {
	var conf struct {
		Mod struct {
			Socket  string                  `yaml:"socket" json:"socket"`
			Streams map[string]StreamConfig `yaml:"streams" json:"streams"`
		} `yaml:"expbuf"`
	}

	app.LoadConfig(&conf)
	app.Info["expbuf"] = conf.Mod

	log = app.GetLogger("expbuf")

	for name, sc := range conf.Mod.Streams {
		stream, err := OpenStream(name, sc)
		if err != nil {
			log.Error().Err(err).Str("device", sc.Device).Msgf("[expbuf] open %s", name)
			continue
		}

		log.Info().Str("device", sc.Device).Stringer("type", stream.Type).Stringer("flags", stream.Flags).
			Int("buffers", len(stream.Buffers)).Msgf("[expbuf] export %s", name)

		AddStream(stream)
	}

	if conf.Mod.Socket == "" {
		return
	}

	ln, err := Listen(conf.Mod.Socket)
	if err != nil {
		log.Error().Err(err).Msg("[expbuf] listen")
		return
	}

	log.Info().Str("addr", conf.Mod.Socket).Msg("[expbuf] listen")

	mu.Lock()
	listener = ln
	mu.Unlock()

	go Serve(ln)
}

func AddStream(stream *Stream) {
	mu.Lock()
	if prev, ok := streams[stream.Name]; ok {
		_ = prev.Close()
	}
	streams[stream.Name] = stream
	mu.Unlock()
}

func GetStream(name string) *Stream {
	mu.Lock()
	defer mu.Unlock()
	return streams[name]
}

// Close stops the listener and closes every stream.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	var errs []error
	if listener != nil {
		errs = append(errs, listener.Close())
		listener = nil
	}
	for name, stream := range streams {
		errs = append(errs, stream.Close())
		delete(streams, name)
	}
	return errors.Join(errs...)
}

var log = zerolog.Nop()

var (
	streams  = map[string]*Stream{}
	listener *net.UnixListener
	mu       sync.Mutex
)
