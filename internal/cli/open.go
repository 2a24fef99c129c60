package cli

import (
	"fmt"

	"github.com/gustavkrist/bookmarks/internal/logging/events"
	"github.com/spf13/cobra"
)

func newOpenCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "open",
		Short: "Open the bookmark dashboard (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.open()
		},
	}
}

// open runs the dashboard and prints the directory picked with z.
func (e *env) open() error {
	res, err := e.run(e.cfg.App)
	events.App.Exit(res.ChangeDir, err)
	if err != nil {
		return err
	}
	if res.ChangeDir != "" {
		fmt.Fprintln(e.stdout, res.ChangeDir)
	}
	return nil
}
