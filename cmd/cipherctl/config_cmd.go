package main

import (
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "inspect configuration",
		Args:  noSubcommand,
		RunE:  requireSubcommand,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "print",
		Short: "print the resolved configuration as TOML",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.cfg.WriteTOML(a.stdout)
		},
	})
	return cmd
}
