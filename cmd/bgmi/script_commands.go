package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newScriptCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "script",
		Short: "Inspect user script shows",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "downloads <name>",
		Short: "List the download links of a script show by episode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := ctx.ensureEnv(cmd.Context())
			if err != nil {
				return err
			}
			links, err := env.Scripts.Downloads(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("script %s: %w", args[0], err)
			}
			episodes := make([]int, 0, len(links))
			for ep := range links {
				episodes = append(episodes, ep)
			}
			sort.Ints(episodes)
			for _, ep := range episodes {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", ep, links[ep])
			}
			return nil
		},
	})
	return cmd
}
