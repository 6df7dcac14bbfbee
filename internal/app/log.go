package app

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

var Logger = zerolog.New(os.Stderr).Level(zerolog.InfoLevel)

// GetLogger returns the main logger, with the level from the module's own
// `log:` key when there is one.
func GetLogger(module string) zerolog.Logger {
	if s, ok := modules[module]; ok {
		lvl, err := zerolog.ParseLevel(s)
		if err == nil {
			return Logger.Level(lvl)
		}
		Logger.Warn().Err(err).Caller().Send()
	}

	return Logger
}

// initLogger support:
// - output: stderr, stdout
// - format: empty (autodetect color support), color, json, text
// - time:   empty (disable timestamp), UNIXMS, UNIXMICRO, UNIXNANO
// - level:  disabled, trace, debug, info, warn, error...
func initLogger() {
	var cfg struct {
		Mod map[string]string `yaml:"log"`
	}

	cfg.Mod = modules // defaults

	LoadConfig(&cfg)

	var writer io.Writer = os.Stderr
	if modules["output"] == "stdout" {
		writer = os.Stdout
	}

	Logger = NewLogger(writer, modules["format"], modules["level"], modules["time"])
}

func NewLogger(writer io.Writer, format, level, timeFormat string) zerolog.Logger {
	if format != "json" {
		console := &zerolog.ConsoleWriter{Out: writer}

		switch format {
		case "text":
			console.NoColor = true
		case "color":
			console.NoColor = false
		default:
			// autodetection if output support color
			if f, ok := writer.(*os.File); ok {
				console.NoColor = !isatty.IsTerminal(f.Fd())
			} else {
				console.NoColor = true
			}
		}

		if timeFormat != "" {
			console.TimeFormat = "15:04:05.000"
		} else {
			console.PartsOrder = []string{
				zerolog.LevelFieldName,
				zerolog.CallerFieldName,
				zerolog.MessageFieldName,
			}
		}

		writer = console
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	logger := zerolog.New(writer).Level(lvl)

	if timeFormat != "" {
		zerolog.TimeFieldFormat = timeFormat
		logger = logger.With().Timestamp().Logger()
	}

	return logger
}

// modules log levels
var modules = map[string]string{
	"format": "",
	"level":  "info",
	"output": "stderr",
	"time":   zerolog.TimeFormatUnixMs,
}
