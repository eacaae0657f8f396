// Command zipdir archives directories into zip files and pushes them to OCI
// registries.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/charmbracelet/fang"

	"github.com/meigma/zipdir/internal/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := fang.Execute(ctx, cmd.NewRootCmd())
	stop()
	if err != nil {
		os.Exit(1)
	}
}
