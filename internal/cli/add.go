package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var errMissingName = errors.New("missing bookmark name")

func newAddCmd(e *env) *cobra.Command {
	var (
		nameOpt string
		pathOpt string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "add [name] [path]",
		Short: "Bookmark a file or directory",
		Long: `Adds bookmark <name> pointing at <path>. Both can be given as arguments or
with -n and -p, but not both ways at once. Without a path the current
directory is used; without a name the base name of the path is used.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := pick("<name>", "-n", arg(args, 0), nameOpt)
			if err != nil {
				return err
			}
			path, err := pick("<path>", "-p", arg(args, 1), pathOpt)
			if err != nil {
				return err
			}
			if path == "" {
				if name == "" {
					return errMissingName
				}
				if path, err = os.Getwd(); err != nil {
					return fmt.Errorf("current directory: %w", err)
				}
			}
			if name == "" {
				name = filepath.Base(filepath.Clean(path))
			}

			store, err := e.store()
			if err != nil {
				return err
			}
			entry, err := store.Add(name, path, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(e.stdout, "Added %s -> %s\n", entry.Name, entry.Path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&nameOpt, "name", "n", "", "name of the bookmark")
	cmd.Flags().StringVarP(&pathOpt, "path", "p", "", "path the bookmark points to")
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing bookmark with the same name")
	return cmd
}

// pick returns whichever of the positional and flag value was given.
func pick(argName, flagName, positional, flag string) (string, error) {
	positional = strings.TrimSpace(positional)
	flag = strings.TrimSpace(flag)
	if positional != "" && flag != "" {
		return "", fmt.Errorf("%s argument and %s option are mutually exclusive", argName, flagName)
	}
	if flag != "" {
		return flag, nil
	}
	return positional, nil
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
