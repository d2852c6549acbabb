package evdisplay

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ShowInViewer writes the cloud to a temporary CSV file and runs the viewer
// command with the file path as last argument. The file is removed once
// the viewer exits, whatever the outcome.
func ShowInViewer(ctx context.Context, command string, cloud PointCloud) (err error) {
	args := strings.Fields(command)
	if len(args) == 0 {
		return errors.New("empty viewer command")
	}

	f, err := os.CreateTemp("", "evdisplay-*.csv")
	if err != nil {
		return fmt.Errorf("error creating temporary table: %w", err)
	}
	filename := f.Name()
	defer func() {
		if rmErr := os.Remove(filename); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			err = errors.Join(err, rmErr)
		}
	}()

	if err := WriteCSV(f, cloud); err != nil {
		f.Close()
		return &ErrWriteOutput{Filename: filename, Err: err}
	}
	if err := f.Close(); err != nil {
		return &ErrWriteOutput{Filename: filename, Err: err}
	}

	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Running %s %s", args[0], filename)
		logger.Info(message, "viewer")
	}
	cmd := exec.CommandContext(ctx, args[0], append(args[1:], filename)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("viewer %s failed: %w", args[0], err)
	}
	return nil
}
