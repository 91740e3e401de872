package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	pkg "github.com/aperture-social/aperture/pkg/internal"
	"github.com/aperture-social/aperture/pkg/internal/cache"
	"github.com/aperture-social/aperture/pkg/internal/database"
	"github.com/aperture-social/aperture/pkg/internal/http"
	"github.com/aperture-social/aperture/pkg/internal/media"
	"github.com/aperture-social/aperture/pkg/internal/security"
	"github.com/aperture-social/aperture/pkg/internal/services"
	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString("    _                     _\n   / \\   _ __   ___ _ __| |_ _   _ _ __ ___\n  / _ \\ | '_ \\ / _ \\ '__| __| | | | '__/ _ \\\n / ___ \\| |_) |  __/ |  | |_| |_| | | |  __/\n/_/   \\_\\ .__/ \\___|_|   \\__|\\__,_|_|  \\___|\n        |_|"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("Aperture"), pkg.AppVersion)
	fmt.Printf("The photo sharing network backend\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}

	// Local cache
	if err := cache.NewStore(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when initializing local cache.")
	}

	// Load actor token reader
	if reader, err := security.NewTokenReader(viper.GetString("security.actor_token_secret")); err != nil {
		log.Error().Err(err).Msg("An error occurred when loading actor token secret. Authentication related features will be disabled.")
	} else {
		http.IReader = reader
		log.Info().Msg("Actor token reader loaded.")
	}

	// Connect to database
	if err := database.NewGorm(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(database.C); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	// Media store
	if len(viper.GetString("media.endpoint")) > 0 {
		services.Media = media.NewRemoteStore()
	} else if store, err := media.NewLocalStore(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when preparing local media store.")
	} else {
		services.Media = store
	}

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	quartz.AddFunc("@every 60m", services.DoAutoDatabaseCleanup)
	quartz.Start()

	// Server
	go http.NewServer().Listen()

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	quartz.Stop()
}
