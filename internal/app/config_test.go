package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func resetConfig(t *testing.T) {
	prevSources, prevPath := sources, ConfigPath
	t.Cleanup(func() {
		sources, ConfigPath = prevSources, prevPath
	})
	sources, ConfigPath = nil, ""
}

func TestParseConfString(t *testing.T) {
	require.Equal(t, "{log: {level: trace}}", string(parseConfString("log.level=trace")))
	require.Equal(t, "{expbuf: {streams: {cam0: {count: 4}}}}", string(parseConfString("expbuf.streams.cam0.count=4")))
	require.Nil(t, parseConfString("level=trace"))
	require.Nil(t, parseConfString("expbuf.yaml"))
}

func TestLoadConfig(t *testing.T) {
	resetConfig(t)

	t.Setenv("EXPBUF_DEVICE", "/dev/video2")

	path := filepath.Join(t.TempDir(), "expbuf.yaml")
	err := os.WriteFile(path, []byte(`
expbuf:
  socket: /tmp/expbuf.sock
  streams:
    cam0:
      device: ${EXPBUF_DEVICE}
      count: 2
`), 0644)
	require.Nil(t, err)

	initConfig(flagConfig{path, "expbuf.socket=/run/expbuf.sock", `{"log": {"level": "debug"}}`})
	require.Equal(t, path, ConfigPath)
	require.Len(t, sources, 3)

	var cfg struct {
		Log map[string]string `yaml:"log"`
		Mod struct {
			Socket  string `yaml:"socket"`
			Streams map[string]struct {
				Device string `yaml:"device"`
				Count  int    `yaml:"count"`
			} `yaml:"streams"`
		} `yaml:"expbuf"`
	}
	LoadConfig(&cfg)

	require.Equal(t, "/run/expbuf.sock", cfg.Mod.Socket)
	require.Equal(t, "/dev/video2", cfg.Mod.Streams["cam0"].Device)
	require.Equal(t, 2, cfg.Mod.Streams["cam0"].Count)
	require.Equal(t, "debug", cfg.Log["level"])
}

func TestLoadConfigMissingFile(t *testing.T) {
	resetConfig(t)

	initConfig(flagConfig{filepath.Join(t.TempDir(), "missing.yaml")})
	require.Empty(t, sources)
	require.NotEmpty(t, ConfigPath)
}

func TestConfigFromEnv(t *testing.T) {
	resetConfig(t)

	dir := t.TempDir()
	first := filepath.Join(dir, "base.yaml")
	second := filepath.Join(dir, "local.yaml")
	require.Nil(t, os.WriteFile(first, []byte("expbuf: {socket: /run/a.sock}"), 0644))
	require.Nil(t, os.WriteFile(second, []byte("expbuf: {socket: /run/b.sock}"), 0644))

	t.Setenv("EXPBUF_CONFIG", first+string(os.PathListSeparator)+second)

	initConfig(nil)
	require.Equal(t, first, ConfigPath)
	require.Len(t, sources, 2)

	var cfg struct {
		Mod struct {
			Socket string `yaml:"socket"`
		} `yaml:"expbuf"`
	}
	LoadConfig(&cfg)
	require.Equal(t, "/run/b.sock", cfg.Mod.Socket)
}

func TestInlineConfigEnv(t *testing.T) {
	resetConfig(t)

	t.Setenv("EXPBUF_SOCKET", "/run/env.sock")

	initConfig(flagConfig{
		"{expbuf: {socket: ${EXPBUF_SOCKET}}}",
		"expbuf.streams.cam0.device=${EXPBUF_DEVICE_UNSET:/dev/video4}",
		"",
	})
	require.Empty(t, ConfigPath)
	require.Len(t, sources, 2)
	require.Equal(t, "inline", sources[0].name)
	require.Equal(t, "expbuf.streams.cam0.device", sources[1].name)

	var cfg struct {
		Mod struct {
			Socket  string `yaml:"socket"`
			Streams map[string]struct {
				Device string `yaml:"device"`
			} `yaml:"streams"`
		} `yaml:"expbuf"`
	}
	LoadConfig(&cfg)
	require.Equal(t, "/run/env.sock", cfg.Mod.Socket)
	require.Equal(t, "/dev/video4", cfg.Mod.Streams["cam0"].Device)
}
