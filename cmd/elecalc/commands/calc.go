package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ohowland/elecalc/internal/pkg/toolkit"
)

func calcCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "calc <name> [field=value...]",
		Short: "Run one calculator",
		Long:  "Run one calculator. Without a name, list the calculators and their fields.",
		RunE: func(cmd *cobra.Command, args []string) error {
			tk, err := toolkit.New(nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				for _, c := range tk.Calculators() {
					ids := make([]string, 0, len(c.Fields))
					for _, f := range c.Fields {
						ids = append(ids, f.ID)
					}
					fmt.Fprintf(out, "%-12s %s\n", c.Name, strings.Join(ids, " "))
				}
				return nil
			}

			form, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}
			c, err := tk.Run(args[0], form)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(c)
			}
			fmt.Fprintln(out, c.Output)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the whole calculation as JSON")
	return cmd
}
