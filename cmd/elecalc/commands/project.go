package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ohowland/elecalc/internal/pkg/project"
	"github.com/ohowland/elecalc/internal/pkg/toolkit"
)

func projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Save, load or clear the saved project",
	}

	withService := func(fn func(cmd *cobra.Command, svc *project.Service, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			tk, err := toolkit.New(nil)
			if err != nil {
				return err
			}
			svc, closeFn, err := openProject(cmd.Context(), tk, nil)
			if err != nil {
				return err
			}
			defer closeFn()
			return fn(cmd, svc, args)
		}
	}

	save := &cobra.Command{
		Use:   "save [field=value...]",
		Short: "Save field values",
		RunE: withService(func(cmd *cobra.Command, svc *project.Service, args []string) error {
			form, err := parseAssignments(args)
			if err != nil {
				return err
			}
			m, err := svc.Save(cmd.Context(), form)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), m)
			return nil
		}),
	}

	load := &cobra.Command{
		Use:   "load",
		Short: "Print the saved field values",
		Args:  cobra.NoArgs,
		RunE: withService(func(cmd *cobra.Command, svc *project.Service, args []string) error {
			state, m, err := svc.Load(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, m)

			ids := make([]string, 0, len(state))
			for id, v := range state {
				if v != "" {
					ids = append(ids, id)
				}
			}
			sort.Strings(ids)
			for _, id := range ids {
				fmt.Fprintf(out, "%s=%s\n", id, state[id])
			}
			return nil
		}),
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the saved project",
		Args:  cobra.NoArgs,
		RunE: withService(func(cmd *cobra.Command, svc *project.Service, args []string) error {
			m, err := svc.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), m)
			return nil
		}),
	}

	cmd.AddCommand(save, load, clearCmd)
	return cmd
}
