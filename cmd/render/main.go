package main

import (
	"context"
	"os"

	"github.com/woozymasta/quakemap/internal/logger"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"    env:"CONFIG_FILE"         description:"Path to configuration file, defaults are used when empty"`
	Token      string `short:"t" long:"token"     env:"MAPBOX_ACCESS_TOKEN" description:"Mapbox access token, overrides the configuration file"`
	Output     string `short:"o" long:"out"       description:"Output file path. Writes to stdout if empty"`
	Format     string `short:"f" long:"format"    description:"Output format" choice:"html" choice:"webp" choice:"json" choice:"yaml" default:"html"`
	Width      int    `short:"w" long:"width"     description:"Width of the WebP preview" default:"1024"`
	Timeout    int    `short:"T" long:"timeout"   env:"FETCH_TIMEOUT"       description:"Seconds to wait for both feeds, 0 waits forever" default:"0"`
	NoMinify   bool   `long:"no-minify"           description:"Write the map page without minification"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	if err := run(context.Background(), opts, nil); err != nil {
		log.Fatal().Err(err).Msg("Render failed")
	}
}
