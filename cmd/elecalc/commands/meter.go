package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ohowland/elecalc/internal/pkg/calc"
	"github.com/ohowland/elecalc/internal/pkg/meter"
	"github.com/ohowland/elecalc/internal/pkg/toolkit"
)

func printReading(out io.Writer, tk *toolkit.Toolkit, r meter.Reading) error {
	fmt.Fprintf(out, "V = %s V, I = %s A, PF = %s, P = %s kW\n",
		calc.Fixed(r.Volts, 1), calc.Fixed(r.Amps, 2), calc.Fixed(r.PowerFactor, 2), calc.Fixed(r.KW, 3))
	c, err := tk.Run("power", r.Form())
	if err != nil {
		return err
	}
	fmt.Fprintln(out, c.Output)
	return nil
}

func meterCmd() *cobra.Command {
	var (
		addr  string
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "meter",
		Short: "Read a Modbus TCP power meter and run the power calculator on it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mc := cfg.Meter
			if addr != "" {
				mc.IPAddr = addr
			}
			m, err := meter.New(mc)
			if err != nil {
				return err
			}
			tk, err := toolkit.New(nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if !watch {
				r, err := m.Read()
				if perr := printReading(out, tk, r); perr != nil {
					return perr
				}
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			m.Poll(ctx, func(r meter.Reading, err error) {
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "meter:", err)
				}
				printReading(out, tk, r)
			})
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "meter IP address (overrides config)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "poll until interrupted")
	return cmd
}
