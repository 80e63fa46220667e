package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lucproglangcourse/numguess-go/assets"
	"github.com/lucproglangcourse/numguess-go/internal/httpserver"
	"github.com/lucproglangcourse/numguess-go/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	tmpl, err := assets.Templates()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse page templates")
	}

	reg := store.NewMemoryRegistry()
	srv := httpserver.New(reg, tmpl)
	port := getEnv("PORT", "8080")
	log.Info().Str("port", port).Msg("starting numguess server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
