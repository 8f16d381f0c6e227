// Package commands is the elecalc command line.
package commands

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ohowland/elecalc/internal/pkg/config"
	"github.com/ohowland/elecalc/internal/pkg/database/mongodb"
	"github.com/ohowland/elecalc/internal/pkg/database/sqldb"
	"github.com/ohowland/elecalc/internal/pkg/datastreams/mqtt"
	"github.com/ohowland/elecalc/internal/pkg/datastreams/natshandler"
	"github.com/ohowland/elecalc/internal/pkg/msg"
	"github.com/ohowland/elecalc/internal/pkg/project"
	"github.com/ohowland/elecalc/internal/pkg/toolkit"
)

var (
	configPath string
	cfg        config.Config
)

// Execute runs the command line.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "elecalc",
		Short:        "Calculators for electricians",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			return err
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file, .json or .yaml")

	root.AddCommand(serveCmd(), tuiCmd(), calcCmd(), meterCmd(), projectCmd())
	return root
}

// parseAssignments turns field=value arguments into a form.
func parseAssignments(args []string) (toolkit.Form, error) {
	form := toolkit.Form{}
	for _, arg := range args {
		i := strings.IndexByte(arg, '=')
		if i <= 0 {
			return nil, fmt.Errorf("expected field=value, got %q", arg)
		}
		form[arg[:i]] = arg[i+1:]
	}
	return form, nil
}

// openProject opens the configured backend for the toolkit's fields.
func openProject(ctx context.Context, tk *toolkit.Toolkit, pub *msg.PubSub) (*project.Service, func() error, error) {
	kv, closeFn, err := cfg.Store.Open(ctx)
	if err != nil {
		return nil, nil, err
	}
	return project.New(kv, tk.FieldIDs(), pub), closeFn, nil
}

type handler interface {
	Process()
	Stop()
}

// startSinks launches the enabled calculation sinks. The returned function
// stops them.
func startSinks(pub *msg.PubSub) (func(), error) {
	handlers := make([]handler, 0)
	stopAll := func() {
		for _, h := range handlers {
			h.Stop()
		}
	}
	add := func(h handler, err error) error {
		if err != nil {
			stopAll()
			return err
		}
		handlers = append(handlers, h)
		go h.Process()
		return nil
	}

	if cfg.History.Enabled {
		log.Println("[Main] Connecting MongoDB History")
		if err := add(mongodb.New(cfg.History.Config, pub)); err != nil {
			return nil, err
		}
	}
	if cfg.SQLHistory.Enabled {
		log.Println("[Main] Connecting SQL History")
		if err := add(sqldb.New(cfg.SQLHistory.Config, pub)); err != nil {
			return nil, err
		}
	}
	if cfg.NATS.Enabled {
		log.Println("[Main] Connecting NATS")
		if err := add(natshandler.New(cfg.NATS.Config, pub)); err != nil {
			return nil, err
		}
	}
	if cfg.MQTT.Enabled {
		log.Println("[Main] Connecting MQTT")
		if err := add(mqtt.New(cfg.MQTT.Config, pub)); err != nil {
			return nil, err
		}
	}
	return stopAll, nil
}
