package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/swatch/internal/image"
)

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// expandPath expands a leading ~ in local paths. URLs and empty values are
// returned as-is.
func expandPath(p string) (string, error) {
	if p == "" || image.IsRemote(p) {
		return p, nil
	}
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("failed to expand %s: %w", p, err)
	}
	return expanded, nil
}

// writeOutput writes s to path, or to the command's stdout when path is empty.
func writeOutput(cmd *cobra.Command, path, s string) error {
	if path == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), s)
		return err
	}
	if err := os.WriteFile(path, []byte(s), 0o644); err != nil { // #nosec G306 - output is not sensitive
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// checkFormat returns an error unless format is one of valid.
func checkFormat(format string, valid ...string) error {
	for _, v := range valid {
		if format == v {
			return nil
		}
	}
	return fmt.Errorf("unsupported format: %s (supported: %v)", format, valid)
}
