//go:build linux

package main

import (
	"github.com/AlexxIT/expbuf/internal/app"
	"github.com/AlexxIT/expbuf/internal/expbuf"
	"github.com/AlexxIT/expbuf/pkg/shell"
	"github.com/rs/zerolog/log"
)

func main() {
	app.Init() // init config and logs

	expbuf.Init()

	sig := shell.RunUntilSignal()
	log.Info().Str("signal", sig.String()).Msg("exit")

	if err := expbuf.Close(); err != nil {
		log.Warn().Err(err).Msg("[expbuf] close")
	}
}
