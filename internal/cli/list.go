package cli

import (
	"fmt"

	"github.com/gustavkrist/bookmarks/internal/bookmarks"
	"github.com/gustavkrist/bookmarks/internal/format/table"
	"github.com/spf13/cobra"
)

func newListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all bookmarks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := e.store()
			if err != nil {
				return err
			}
			file, err := store.Load()
			if err != nil {
				return err
			}
			if len(file.Bookmarks) == 0 {
				fmt.Fprintln(e.stdout, "No bookmarks")
				return nil
			}
			for _, line := range listRows(store.Status(file)) {
				fmt.Fprintln(e.stdout, line)
			}
			return nil
		},
	}
}

// listRows formats the bookmark status as a table.
func listRows(statuses []bookmarks.Status) []string {
	rows := make([][]string, 0, len(statuses)+1)
	rows = append(rows, []string{"NAME", "KIND", "PATH"})
	for _, st := range statuses {
		rows = append(rows, []string{st.Name, st.Target.String(), st.Path})
	}
	return table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignLeft})
}
