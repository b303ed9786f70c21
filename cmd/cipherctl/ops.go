package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/RowanDark/cipherkit/internal/cipher"
)

func newOpsCmd(a *app) *cobra.Command {
	var opType string
	cmd := &cobra.Command{
		Use:   "ops",
		Short: "list the operations usable in pipelines and recipes",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ops := cipher.ListOperations()
			if opType != "" {
				ops = cipher.ListOperationsByType(cipher.OperationType(opType))
			}
			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTYPE\tREVERSE\tDESCRIPTION")
			for _, op := range ops {
				reverse := "-"
				if r, ok := op.Reverse(); ok {
					reverse = r.Name()
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", op.Name(), op.Type(), reverse, op.Description())
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&opType, "type", "", "only list operations of this type (normalize, encrypt, decrypt, analyze)")
	return cmd
}
