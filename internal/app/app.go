package app

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog/log"
)

var Version = "0.1.0"

var ConfigPath string
var Info = map[string]any{
	"version": Version,
}

func Init() {
	var confs flagConfig
	var version bool

	flag.Var(&confs, "config", "expbuf config (path to file or raw text), support multiple")
	flag.BoolVar(&version, "version", false, "Print the version of the application and exit")
	flag.Parse()

	if version {
		fmt.Printf("expbuf version %s%s %s/%s\n", Version, revision(), runtime.GOOS, runtime.GOARCH)
		os.Exit(0)
	}

	initConfig(confs)
	initLogger()

	log.Logger = Logger

	platform := fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
	Logger.Info().Str("version", Version).Str("platform", platform).Msg("expbuf")
	Logger.Debug().Str("version", runtime.Version()).Msg("build")

	if ConfigPath != "" {
		Logger.Info().Str("path", ConfigPath).Msg("config")
	}
}

func revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}

	var rev string
	var vcsTime time.Time
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if rev = setting.Value; len(rev) > 7 {
				rev = rev[:7]
			}
		case "vcs.time":
			vcsTime, _ = time.Parse(time.RFC3339, setting.Value)
		}
	}

	if rev == "" {
		return ""
	}
	return " (" + rev + ") " + vcsTime.Local().Format(time.DateTime)
}
