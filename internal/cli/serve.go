package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/archief/internal/catalogue"
	"github.com/mesh-intelligence/archief/internal/logging"
	"github.com/mesh-intelligence/archief/internal/site"
	"github.com/mesh-intelligence/archief/pkg/types"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalogue website",
		Long: "Serve the catalogue website until interrupted. Changes to log.level in\n" +
			"config.yaml are applied without a restart.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, s, err := attachCatalogue(flags)
			if err != nil {
				return err
			}
			defer cat.Detach()

			logger := newServeLogger(s, cmd.ErrOrStderr())
			if listen == "" {
				listen = s.v.GetString(cfgKeyListen)
			}

			srv, err := newSite(s, cat, logger)
			if err != nil {
				return sysError(err)
			}

			if _, err := os.Stat(s.configPath()); err == nil {
				s.v.OnConfigChange(reloadLogLevel(s.v, logger))
				s.v.WatchConfig()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info().
				Str("backend", s.v.GetString(cfgKeyBackend)).
				Str("config", s.configPath()).
				Msg("catalogue attached")

			if err := srv.ListenAndServe(ctx, listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return sysError(fmt.Errorf("serve %s: %w", listen, err))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default: listen from config.yaml, :1953)")
	return cmd
}

// newServeLogger builds the server logger. The logger itself accepts every
// level and the configured level is applied globally, so a config reload can
// lower or raise it.
func newServeLogger(s *settings, w io.Writer) zerolog.Logger {
	logger := logging.New(zerolog.LevelTraceValue, s.v.GetString(cfgKeyLogFormat), w)
	logging.SetLevel(s.v.GetString(cfgKeyLogLevel))
	return logger
}

// newSite wires the resolver and the message store into the website.
func newSite(s *settings, cat types.Catalogue, logger zerolog.Logger) (*site.Site, error) {
	return site.New(site.Deps{
		Objects:  catalogue.NewResolver(cat, logger),
		Messages: cat,
		Logger:   logger,
		Options:  s.siteOptions(),
	})
}
