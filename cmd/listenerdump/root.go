package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sonirico/listenerlist"
)

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cfg := defaultConfig()
	var (
		configPath string
		logger     zerolog.Logger
	)

	root := &cobra.Command{
		Use:           "listenerdump",
		Short:         "Inspect persisted listener streams",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (.toml, .yaml, .yml or .json)")
	root.PersistentFlags().StringVar(&cfg.Format, "format", cfg.Format, "Stream format: json|yaml")
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug|info|warn|error")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			fileCfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !flags.Changed("format") {
				cfg.Format = fileCfg.Format
			}
			if !flags.Changed("log-level") {
				cfg.LogLevel = fileCfg.LogLevel
			}
		}

		level, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			return errors.Wrapf(err, "invalid log level %q", cfg.LogLevel)
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).
			Level(level).
			With().Timestamp().Logger()
		return nil
	}

	inspect := &cobra.Command{
		Use:     "inspect [file|-]",
		Short:   "List the records of a listener stream",
		Example: "  listenerdump inspect listeners.yaml\n  cat listeners.json | listenerdump inspect --format json -",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := listenerlist.FormatByName(cfg.Format)
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			source := "-"
			if len(args) == 1 && args[0] != "-" {
				source = args[0]
				f, err := os.Open(source)
				if err != nil {
					return errors.Wrap(err, "cannot open stream")
				}
				defer f.Close()
				in = f
			}

			log := listenerlist.NewZerologLogger(logger).WithField("source", source)
			log.Debugf("reading %s stream", format.Name())

			records, err := listenerlist.Inspect(in, format)
			for i, rec := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\tcategory=%s\tkind=%s\tlistener=%s\n",
					i, rec.Category, rec.Kind, rec.Listener)
			}
			if err != nil {
				log.Errorf("stream unreadable after %d records: %s", len(records), err)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d records\n", len(records))
			return nil
		},
	}
	root.AddCommand(inspect)

	return root
}
