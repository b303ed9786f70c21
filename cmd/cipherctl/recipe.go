package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/RowanDark/cipherkit/internal/cipher"
	"github.com/RowanDark/cipherkit/internal/logging"
)

func (a *app) recipes() (*cipher.RecipeManager, error) {
	rm := cipher.NewRecipeManager(a.cfg.RecipesDir, cipher.WithAuditLogger(a.audit))
	if err := rm.LoadRecipes(); err != nil {
		return nil, fmt.Errorf("load recipes: %w", err)
	}
	return rm, nil
}

func newRecipeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipe",
		Short: "manage saved pipelines",
		Args:  noSubcommand,
		RunE:  requireSubcommand,
	}
	cmd.AddCommand(
		newRecipeListCmd(a),
		newRecipeSaveCmd(a),
		newRecipeDeleteCmd(a),
		newRecipeRunCmd(a),
	)
	return cmd
}

func newRecipeListCmd(a *app) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "list saved recipes",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			rm, err := a.recipes()
			if err != nil {
				return err
			}
			list := rm.ListRecipes()
			if search != "" {
				list = rm.SearchRecipes(search)
			}
			if len(list) == 0 {
				fmt.Fprintln(a.stdout, "no recipes")
				return nil
			}
			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSTEPS\tREVERSIBLE\tDESCRIPTION")
			for _, r := range list {
				steps := make([]string, 0, len(r.Pipeline.Operations))
				for _, op := range r.Pipeline.Operations {
					step := op.Name
					if len(op.Parameters) > 0 {
						step += ":" + formatParams(op.Parameters)
					}
					steps = append(steps, step)
				}
				fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", r.Name, strings.Join(steps, " | "), r.Pipeline.Reversible, r.Description)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "only show recipes whose name, description or tags contain this text")
	return cmd
}

func newRecipeSaveCmd(a *app) *cobra.Command {
	var (
		specs       []string
		description string
		tags        []string
		reversible  bool
	)
	cmd := &cobra.Command{
		Use:   "save NAME --op NAME[:PARAM=VALUE,...] ...",
		Short: "save a pipeline under a name",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, err := parsePipeline(specs)
			if err != nil {
				return err
			}
			pipeline.Reversible = reversible

			rm, err := a.recipes()
			if err != nil {
				return err
			}
			recipe := &cipher.Recipe{
				Name:        args[0],
				Description: description,
				Tags:        tags,
				Pipeline:    *pipeline,
			}
			if existing, ok := rm.GetRecipe(args[0]); ok {
				recipe.ID = existing.ID
				recipe.CreatedAt = existing.CreatedAt
			}
			if err := rm.SaveRecipe(recipe); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "saved recipe %s\n", recipe.Name)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&specs, "op", nil, "operation to apply, optionally with parameters (repeatable)")
	cmd.Flags().StringVar(&description, "description", "", "free-form description")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag to attach (repeatable)")
	cmd.Flags().BoolVar(&reversible, "reversible", false, "allow running the recipe with --reverse")
	return cmd
}

func newRecipeDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "delete a saved recipe",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rm, err := a.recipes()
			if err != nil {
				return err
			}
			if err := rm.DeleteRecipe(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "deleted recipe %s\n", args[0])
			return nil
		},
	}
}

func newRecipeRunCmd(a *app) *cobra.Command {
	var reverse bool
	cmd := &cobra.Command{
		Use:   "run NAME [TEXT...]",
		Short: "run a saved recipe",
		Args:  minArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rm, err := a.recipes()
			if err != nil {
				return err
			}
			text, err := a.inputText(args[1:])
			if err != nil {
				return err
			}
			out, err := rm.RunRecipe(cmd.Context(), args[0], []byte(text), reverse)
			if err != nil {
				a.emit(logging.AuditEvent{
					EventType: logging.EventOperationFailed,
					Operation: "recipe:" + args[0],
					Decision:  logging.DecisionFailure,
					Reason:    err.Error(),
				})
				return err
			}
			fmt.Fprintln(a.stdout, string(out))
			a.emit(logging.AuditEvent{
				EventType: logging.EventPipelineExecuted,
				Operation: "recipe:" + args[0],
				Decision:  logging.DecisionSuccess,
				Metadata:  map[string]any{"reverse": reverse},
			})
			return nil
		},
	}
	cmd.Flags().BoolVar(&reverse, "reverse", false, "run the inverse of the recipe")
	return cmd
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("%s accepts %d argument(s), received %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}

func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usagef("%s requires at least %d argument(s), received %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}
