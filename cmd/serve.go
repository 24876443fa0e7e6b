package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rpgo/nestegg/internal/api"
	"github.com/rpgo/nestegg/internal/logging"
	"github.com/rpgo/nestegg/internal/observability"
	"github.com/spf13/cobra"
)

var (
	flagAddr      string
	flagNoMetrics bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculators and the input store over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from settings, :8080)")
	serveCmd.Flags().BoolVar(&flagNoMetrics, "no-metrics", false, "Disable the /metrics endpoint")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := settings.Server.Addr
	if flagAddr != "" {
		addr = flagAddr
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	var metrics *observability.Metrics
	if !flagNoMetrics {
		metrics = observability.NewMetrics("")
		store = observability.InstrumentStore(store, metrics)
	}

	log := logging.L()
	log.Info("serve.start", "addr", addr, "store", settings.Storage.Driver, "metrics", metrics != nil)

	srv := api.New(newEngine(), store, metrics, log)
	if err := srv.ListenAndServe(ctx, addr); err != nil && ctx.Err() == nil {
		return err
	}
	log.Info("serve.stop")
	return nil
}
