package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/akinalp/grocery-planner/models"
	"github.com/akinalp/grocery-planner/pkg"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the active grocery list",
		Args:  cobra.NoArgs,
		RunE: a.action(func(cmd *cobra.Command, args []string) error {
			s := a.loadedSync(cmd.Context())
			a.warnOffline(cmd)
			return printItems(cmd, s.Items())
		}),
	}
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <item-id>",
		Short: "Toggle an item's checked state",
		Args:  cobra.ExactArgs(1),
		RunE: a.action(func(cmd *cobra.Command, args []string) error {
			s := a.loadedSync(cmd.Context())
			item, ok := findItem(s.Items(), args[0])
			if !ok {
				return fmt.Errorf("%w: item %s", pkg.ErrNotFound, args[0])
			}

			s.ToggleItem(item.ID)
			s.Wait()

			state := "checked"
			if item.Checked {
				state = "unchecked"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s.\n", item.Name, state)
			a.warnOffline(cmd)
			return nil
		}),
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove an item from the grocery list",
		Args:  cobra.ExactArgs(1),
		RunE: a.action(func(cmd *cobra.Command, args []string) error {
			s := a.loadedSync(cmd.Context())
			item, ok := findItem(s.Items(), args[0])
			if !ok {
				return fmt.Errorf("%w: item %s", pkg.ErrNotFound, args[0])
			}

			s.RemoveItem(item.ID)
			s.Wait()

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", item.Name)
			a.warnOffline(cmd)
			return nil
		}),
	}
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the active grocery list",
		Args:  cobra.NoArgs,
		RunE: a.action(func(cmd *cobra.Command, args []string) error {
			if err := a.sync.ClearList(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Grocery list cleared.")
			return nil
		}),
	}
}

func newSaveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "save [name]",
		Short: "Save the active list under a name",
		Args:  cobra.MaximumNArgs(1),
		RunE: a.action(func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			}

			s := a.loadedSync(cmd.Context())
			list, err := s.SaveList(cmd.Context(), name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %q (%s) with %d items.\n", list.Name, list.ID, len(list.Items))
			return nil
		}),
	}
}

func newSavedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "saved",
		Short: "List saved grocery lists",
		Args:  cobra.NoArgs,
		RunE: a.action(func(cmd *cobra.Command, args []string) error {
			env, err := a.client.List(cmd.Context())
			if err != nil {
				return err
			}
			if !env.Success {
				return errors.New(firstMessage(env.Error, env.Message, "failed to list saved lists"))
			}

			out := cmd.OutOrStdout()
			if len(env.Data) == 0 {
				fmt.Fprintln(out, "No saved lists.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tITEMS\tSAVED")
			for _, l := range env.Data {
				saved := l.CreatedAt
				if l.SavedAt != nil {
					saved = *l.SavedAt
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", l.ID, l.Name, len(l.Items), saved.Local().Format("2006-01-02 15:04"))
			}
			return tw.Flush()
		}),
	}
}

func newLoadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load <saved-list-id>",
		Short: "Replace the active list with a saved list",
		Args:  cobra.ExactArgs(1),
		RunE: a.action(func(cmd *cobra.Command, args []string) error {
			s := a.loadedSync(cmd.Context())
			list, err := s.LoadSavedList(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			s.Wait()

			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %q with %d items.\n", list.Name, len(list.Items))
			a.warnOffline(cmd)
			return nil
		}),
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <saved-list-id>",
		Short: "Delete a saved grocery list",
		Args:  cobra.ExactArgs(1),
		RunE: a.action(func(cmd *cobra.Command, args []string) error {
			env, err := a.client.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !env.Success {
				return errors.New(firstMessage(env.Error, env.Message, "failed to delete saved list"))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Saved list deleted.")
			return nil
		}),
	}
}

func newSyncCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Push the active list to the server",
		Args:  cobra.NoArgs,
		RunE: a.action(func(cmd *cobra.Command, args []string) error {
			s := a.loadedSync(cmd.Context())
			if err := s.SyncNow(cmd.Context()); err != nil {
				return err
			}

			st := s.State()
			fmt.Fprintf(cmd.OutOrStdout(), "Synced %d items at %s.\n", len(s.Items()), st.LastSyncTime.Local().Format("15:04:05"))
			return nil
		}),
	}
}

// warnOffline, son işlem sunucuya ulaşamadıysa kullanıcıyı uyarır.
func (a *app) warnOffline(cmd *cobra.Command) {
	if a.sync.State().IsOffline {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: server unreachable, list kept in local fallback store")
	}
}

func printItems(cmd *cobra.Command, items []models.GroceryItem) error {
	out := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintln(out, "Your grocery list is empty.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\t\tITEM\tAISLE")
	for _, item := range items {
		mark := "[ ]"
		if item.Checked {
			mark = "[x]"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", item.ID, mark, formatItem(item), item.Aisle)
	}
	return tw.Flush()
}

func formatItem(item models.GroceryItem) string {
	parts := make([]string, 0, 3)
	if item.Amount != "" {
		parts = append(parts, item.Amount)
	}
	if item.Unit != "" {
		parts = append(parts, item.Unit)
	}
	parts = append(parts, item.Name)
	return strings.Join(parts, " ")
}

func findItem(items []models.GroceryItem, id string) (models.GroceryItem, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return models.GroceryItem{}, false
}

func firstMessage(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
