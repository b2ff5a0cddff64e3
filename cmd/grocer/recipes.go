package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/akinalp/grocery-planner/models"
)

func newSearchCmd(a *app) *cobra.Command {
	var opts models.RecipeSearchOptions
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search recipes",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.Flags().IntVarP(&opts.Number, "number", "n", 10, "Number of results")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "Result offset")
	cmd.Flags().StringVar(&opts.Cuisine, "cuisine", "", "Cuisine filter (e.g. italian)")
	cmd.Flags().StringVar(&opts.Diet, "diet", "", "Diet filter (e.g. vegetarian)")
	cmd.Flags().StringVar(&opts.Type, "type", "", "Meal type filter (e.g. dessert)")
	cmd.Flags().IntVar(&opts.MaxReadyTime, "max-ready-time", 0, "Maximum ready time in minutes")
	cmd.RunE = a.action(func(cmd *cobra.Command, args []string) error {
		opts.Query = strings.Join(args, " ")
		res, err := a.client.SearchRecipes(cmd.Context(), opts)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(res.Results) == 0 {
			fmt.Fprintln(out, "No recipes found.")
			return nil
		}

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTITLE\tREADY\tSERVINGS")
		for _, r := range res.Results {
			fmt.Fprintf(tw, "%d\t%s\t%d min\t%d\n", r.ID, r.Title, r.ReadyInMinutes, r.Servings)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(out, "%d of %d results\n", len(res.Results), res.TotalResults)
		return nil
	})
	return cmd
}

func newRecipeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "recipe <recipe-id>",
		Short: "Show recipe details",
		Args:  cobra.ExactArgs(1),
		RunE: a.action(func(cmd *cobra.Command, args []string) error {
			id, err := parseRecipeID(args[0])
			if err != nil {
				return err
			}
			recipe, err := a.client.GetRecipe(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%d min, %d servings)\n", recipe.Title, recipe.ReadyInMinutes, recipe.Servings)
			if recipe.SourceURL != "" {
				fmt.Fprintln(out, recipe.SourceURL)
			}
			fmt.Fprintln(out, "\nIngredients:")
			for _, raw := range recipe.ExtendedIngredients {
				fmt.Fprintf(out, "  - %s\n", formatItem(raw.Normalize("")))
			}
			return nil
		}),
	}
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <recipe-id>",
		Short: "Add a recipe's ingredients to the grocery list",
		Args:  cobra.ExactArgs(1),
		RunE: a.action(func(cmd *cobra.Command, args []string) error {
			id, err := parseRecipeID(args[0])
			if err != nil {
				return err
			}
			recipe, err := a.client.GetRecipe(cmd.Context(), id)
			if err != nil {
				return err
			}

			s := a.loadedSync(cmd.Context())
			s.AddIngredients(recipe.ExtendedIngredients)
			s.Wait()

			fmt.Fprintf(cmd.OutOrStdout(), "Added %d ingredients from %q.\n", len(recipe.ExtendedIngredients), recipe.Title)
			a.warnOffline(cmd)
			return nil
		}),
	}
}

func parseRecipeID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid recipe id %q", raw)
	}
	return id, nil
}
