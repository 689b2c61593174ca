package main

import (
	"news-pulse/application"
	"news-pulse/models/constants"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func init() {
	initConfig()
	initLog()
}

func initLog() {
	zerolog.SetGlobalLevel(constants.LogLevelFallback)

	logLevel, err := zerolog.ParseLevel(viper.GetString(constants.LogLevel))
	if err != nil {
		log.Warn().Err(err).Msgf("Log level not set, continue with %s...", constants.LogLevelFallback)
	} else {
		zerolog.SetGlobalLevel(logLevel)
		log.Debug().Msgf("Logger level set to '%s'", logLevel)
	}
}

func initConfig() {
	pflag.String(constants.ConfigFlag, constants.ConfigFileName, "Path of the configuration file")
	pflag.Parse()
	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		log.Warn().Err(err).Msg("Cannot bind command line flags, continue...")
	}

	configFile := viper.GetString(constants.ConfigFlag)
	viper.SetConfigFile(configFile)
	viper.SetConfigType("env")

	for configName, defaultValue := range constants.GetDefaultConfigValues() {
		viper.SetDefault(configName, defaultValue)
	}

	err := viper.ReadInConfig()
	if err != nil {
		log.Debug().Str(constants.LogFileName, configFile).Msgf("Failed to read config file, continue...")
	}

	viper.AutomaticEnv()
}

func main() {
	app, err := application.New()
	if err != nil {
		log.Fatal().Err(err).Msgf("Shutting down after failing to instantiate application")
	}

	app.Run()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	log.Info().Msgf("%s v%s is now running. Press CTRL-C to exit.", constants.ExternalName, constants.Version)
	<-sc

	log.Info().Msgf("Gracefully shutting down %s...", constants.ExternalName)
	app.Shutdown()
}
