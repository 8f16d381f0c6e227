package commands

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ohowland/elecalc/internal/pkg/hmi"
	"github.com/ohowland/elecalc/internal/pkg/meter"
	"github.com/ohowland/elecalc/internal/pkg/msg"
	"github.com/ohowland/elecalc/internal/pkg/toolkit"
)

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pub := msg.NewPublisher(uuid.New())
			defer pub.Close()

			tk, err := toolkit.New(pub)
			if err != nil {
				return err
			}
			proj, closeStore, err := openProject(cmd.Context(), tk, pub)
			if err != nil {
				return err
			}
			defer closeStore()

			stopSinks, err := startSinks(pub)
			if err != nil {
				return err
			}
			defer stopSinks()

			ui := hmi.New(tk, proj)
			if cfg.Meter.IPAddr != "" {
				m, err := meter.New(cfg.Meter)
				if err != nil {
					return err
				}
				ui.SetMeter(func() (toolkit.Form, error) {
					r, err := m.Read()
					return r.Form(), err
				})
			}
			return ui.Run()
		},
	}
}
