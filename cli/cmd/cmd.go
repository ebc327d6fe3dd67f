package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	currency "github.com/malusev998/quote-sheet"
	"github.com/malusev998/quote-sheet/fetchers"
	"github.com/malusev998/quote-sheet/logger"
	"github.com/malusev998/quote-sheet/services"
	"github.com/malusev998/quote-sheet/storage"
	"github.com/malusev998/quote-sheet/workbook"
)

type (
	Config struct {
		currency.Config
		Ctx     context.Context
		Service currency.Service
		Logger  *zap.Logger
		closers []func() error
	}
)

func (c *Config) setup(settings *Settings) error {
	log, err := logger.New(settings.Log)
	if err != nil {
		return err
	}

	c.Logger = log

	if c.Config, err = settings.Config(); err != nil {
		return err
	}

	loc, err := settings.Location()
	if err != nil {
		return err
	}

	provider, fetcherConfig, err := settings.FetcherConfig(c.Ctx, log)
	if err != nil {
		return err
	}

	providers, storageConfigs, err := settings.StorageConfig(c.Ctx)
	if err != nil {
		return err
	}

	storages := make([]currency.Storage, 0, len(providers))

	for _, p := range providers {
		st, err := storage.NewStorage(p, storageConfigs[p])
		if err != nil {
			return fmt.Errorf("creating %s storage: %w", p, err)
		}

		storages = append(storages, st)
		c.closers = append(c.closers, st.Close)
	}

	c.Service = services.Service{
		Fetcher: fetchers.NewQuoteFetcher(provider, fetcherConfig),
		Loader: workbook.Loader{
			Path:   c.WorkbookPath,
			Sheet:  c.SheetName,
			Logger: log,
		},
		Storage:  storages,
		Location: loc,
		Logger:   log,
	}

	return nil
}

func (c *Config) close() {
	for _, closer := range c.closers {
		if err := closer(); err != nil && c.Logger != nil {
			c.Logger.Warn("closing storage", zap.Error(err))
		}
	}

	c.closers = nil

	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}

// NewRootCommand builds the command tree. Settings are read when a command runs,
// so config is filled in by the time any RunE is called.
func NewRootCommand(config *Config) *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "quote-sheet",
		Short:         "Keeps a spreadsheet up to date with the latest daily exchange-rate quotes",
		Version:       "v1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := LoadSettings(configFile)
			if err != nil {
				return err
			}

			return config.setup(settings)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./config.yml", "Path to config file")

	updateCmd := update(config)
	rootCmd.RunE = updateCmd.RunE
	rootCmd.AddCommand(updateCmd, show(config))

	return rootCmd
}

func run(rootCmd *cobra.Command, config *Config) error {
	defer config.close()

	err := rootCmd.Execute()
	if err != nil {
		var statusErr *fetchers.StatusError
		if !errors.As(err, &statusErr) {
			fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		}
	}

	return err
}

func Execute(ctx context.Context) error {
	config := &Config{Ctx: ctx}
	rootCmd := NewRootCommand(config)
	rootCmd.SetArgs(os.Args[1:])

	return run(rootCmd, config)
}
