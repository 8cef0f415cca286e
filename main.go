package main

import (
	"fmt"
	"io"
	"os"

	"truthonly/config"
	"truthonly/logger"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	cfgFile string
	v       = config.New()
	cfg     *config.Config
	log     = zerolog.Nop()
	logFile io.Closer
)

var rootCmd = &cobra.Command{
	Use:           "truthonly",
	Short:         "Fact-check URLs, text and images against an n8n workflow",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(v, cfgFile); err != nil {
			return err
		}
		if log, logFile, err = logger.New(cfg.Log, nil); err != nil {
			return err
		}
		if used := v.ConfigFileUsed(); used != "" {
			log.Debug().Str("file", used).Msg("Loaded config")
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logFile != nil {
			return logFile.Close()
		}
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./config.yaml)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "console", "log format: console or json")
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("log.format", flags.Lookup("log-format"))

	rootCmd.AddCommand(serveCmd, checkCmd, historyCmd, searchCmd, provisionCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
