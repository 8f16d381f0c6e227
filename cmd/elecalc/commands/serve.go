package commands

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ohowland/elecalc/internal/pkg/msg"
	"github.com/ohowland/elecalc/internal/pkg/toolkit"
	"github.com/ohowland/elecalc/internal/pkg/webservice"
)

func serveCmd() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and websocket feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Println("[Main] Starting elecalc")
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			pub := msg.NewPublisher(uuid.New())
			defer pub.Close()

			tk, err := toolkit.New(pub)
			if err != nil {
				return err
			}

			log.Println("[Main] Opening Project Store")
			proj, closeStore, err := openProject(ctx, tk, pub)
			if err != nil {
				return err
			}
			defer closeStore()

			stopSinks, err := startSinks(pub)
			if err != nil {
				return err
			}
			defer stopSinks()

			app, err := webservice.New(tk, proj, pub)
			if err != nil {
				return err
			}
			go app.Process()
			defer app.Stop()

			if listen == "" {
				listen = cfg.Webservice.Listen
			}
			err = app.ListenAndServe(ctx, listen)
			log.Println("[Main] Stopping elecalc")
			return err
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config, :8080)")
	return cmd
}
