package main

import (
	"fmt"
	"log"
	"os"

	"choicefiction/internal/config"
	"choicefiction/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "choicefiction",
	Short:         "Interactive fiction writing service",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to an optional .env file")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// bootstrap загружает конфигурацию и собирает логгер.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		// zap еще нет
		log.Printf("Failed to load configuration: %v", err)
		return nil, nil, err
	}
	l, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogFormat})
	if err != nil {
		return nil, nil, err
	}
	zap.ReplaceGlobals(l)
	l.Info("Logger initialized", zap.String("logLevel", cfg.LogLevel), zap.String("env", cfg.Env))
	return cfg, l, nil
}
