package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRemoveCmd(e *env) *cobra.Command {
	var nameOpt string

	cmd := &cobra.Command{
		Use:     "rm [name]",
		Aliases: []string{"remove"},
		Short:   "Delete a bookmark",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := pick("<name>", "-n", arg(args, 0), nameOpt)
			if err != nil {
				return err
			}
			if name == "" {
				return errMissingName
			}
			store, err := e.store()
			if err != nil {
				return err
			}
			if err := store.Remove(name); err != nil {
				return err
			}
			fmt.Fprintf(e.stdout, "Removed %s\n", name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&nameOpt, "name", "n", "", "name of the bookmark")
	return cmd
}
