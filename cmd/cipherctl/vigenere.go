package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RowanDark/cipherkit/internal/logging"
	"github.com/RowanDark/cipherkit/internal/vigenere"
)

func newVigenereCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vigenere",
		Short: "Vigenère keyword cipher",
		Args:  noSubcommand,
		RunE:  requireSubcommand,
	}
	cmd.AddCommand(
		newVigenereKeywordCmd(a, "encrypt", vigenere.Encrypt),
		newVigenereKeywordCmd(a, "decrypt", vigenere.Decrypt),
	)
	return cmd
}

func newVigenereKeywordCmd(a *app, verb string, transform func(string, string) string) *cobra.Command {
	var keyword string
	cmd := &cobra.Command{
		Use:   verb + " --keyword K [TEXT...]",
		Short: verb + " text with a repeating keyword",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("keyword") {
				return usagef("--keyword is required")
			}
			text, err := a.inputText(args)
			if err != nil {
				return err
			}

			operation := "vigenere_" + verb
			if !vigenere.HasKey(keyword) {
				a.painter.warn.Fprintln(a.stderr, "warning: keyword contains no letters; text is only normalized")
				a.emit(logging.AuditEvent{
					EventType: logging.EventKeylessTransform,
					Operation: operation,
					Decision:  logging.DecisionInfo,
					Reason:    "keyword has no letters",
				})
			}

			out := transform(text, keyword)
			fmt.Fprintln(a.stdout, out)
			a.emit(logging.AuditEvent{
				EventType: logging.EventOperationExecuted,
				Operation: operation,
				Decision:  logging.DecisionSuccess,
				Metadata: map[string]any{
					"keyword": keyword,
					"letters": len(out),
				},
			})
			return nil
		},
	}
	cmd.Flags().StringVarP(&keyword, "keyword", "k", "", "keyword; only its letters are used")
	return cmd
}
