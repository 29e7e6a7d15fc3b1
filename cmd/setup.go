package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/Prabhat9801/libman/internal/shared"
)

// SetupConfig writes a starter config file.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("output")

	if err := shared.CreateConfigFile(path); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
	}

	r.logger.Info("config file created", "path", path)
	r.writePlain("Wrote %s\n", path)
	r.writePlain("Edit [api].base_url to point at your library service.\n")

	return nil
}
