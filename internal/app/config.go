package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/AlexxIT/expbuf/pkg/shell"
	"gopkg.in/yaml.v3"
)

// DefaultConfig is read when no -config flag is given. EXPBUF_CONFIG
// overrides it.
const DefaultConfig = "expbuf.yaml"

// LoadConfig decodes every config source into v, later sources win.
func LoadConfig(v any) {
	for _, src := range sources {
		if err := yaml.Unmarshal(src.data, v); err != nil {
			Logger.Warn().Err(err).Str("source", src.name).Msg("[app] read config")
		}
	}
}

type flagConfig []string

func (c *flagConfig) String() string {
	return strings.Join(*c, " ")
}

func (c *flagConfig) Set(value string) error {
	*c = append(*c, value)
	return nil
}

type source struct {
	name string
	data []byte
}

var sources []source

func initConfig(confs flagConfig) {
	if confs == nil {
		if s := os.Getenv("EXPBUF_CONFIG"); s != "" {
			confs = strings.Split(s, string(os.PathListSeparator))
		} else {
			confs = flagConfig{DefaultConfig}
		}
	}

	for _, conf := range confs {
		src, isFile := parseSource(conf)
		if isFile && ConfigPath == "" {
			ConfigPath = conf
		}
		if src.data != nil {
			sources = append(sources, src)
		}
	}

	if ConfigPath != "" {
		if !filepath.IsAbs(ConfigPath) {
			if cwd, err := os.Getwd(); err == nil {
				ConfigPath = filepath.Join(cwd, ConfigPath)
			}
		}
		Info["config_path"] = ConfigPath
	}
}

// parseSource understands three forms of -config:
//   - raw YAML or JSON: `{expbuf: {socket: /run/expbuf.sock}}`
//   - one key: `expbuf.streams.cam0.device=/dev/video2`
//   - path to a file; a missing file gives no data
//
// ${ENV} and ${ENV:default} are expanded in all of them.
func parseSource(conf string) (src source, isFile bool) {
	switch {
	case conf == "":
		return source{}, false
	case conf[0] == '{':
		return source{name: "inline", data: expandEnv([]byte(conf))}, false
	}

	if data := parseConfString(conf); data != nil {
		return source{name: conf[:strings.IndexByte(conf, '=')], data: expandEnv(data)}, false
	}

	data, err := os.ReadFile(conf)
	if err != nil {
		return source{name: conf}, true
	}
	return source{name: conf, data: expandEnv(data)}, true
}

func expandEnv(data []byte) []byte {
	return []byte(shell.ReplaceEnvVars(string(data)))
}

func parseConfString(s string) []byte {
	i := strings.IndexByte(s, '=')
	if i < 0 {
		return nil
	}

	items := strings.Split(s[:i], ".")
	if len(items) < 2 {
		return nil
	}

	// `expbuf.socket=/run/expbuf.sock` => `{expbuf: {socket: /run/expbuf.sock}}`
	var pre string
	var suf = s[i+1:]
	for _, item := range items {
		pre += "{" + item + ": "
		suf += "}"
	}

	return []byte(pre + suf)
}
