package main

import (
	"os"

	"github.com/gustavkrist/bookmarks/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
