package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/swatch/internal/config"
)

// envName maps a flag name to its environment variable, e.g. "fetch-timeout"
// becomes SWATCH_FETCH_TIMEOUT.
func envName(flag string) string {
	r := strings.NewReplacer("-", "_", ".", "_")
	return config.EnvPrefix + strings.ToUpper(r.Replace(flag))
}

// applyEnvOverrides sets every flag of cmd that was not given on the command
// line from its SWATCH_* environment variable.
func applyEnvOverrides(cmd *cobra.Command) error {
	var errs []string
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || f.Name == "help" {
			return
		}
		value, ok := os.LookupEnv(envName(f.Name))
		if !ok {
			return
		}
		if err := cmd.Flags().Set(f.Name, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", envName(f.Name), err))
		}
	})
	if len(errs) > 0 {
		return fmt.Errorf("invalid environment override: %s", strings.Join(errs, "; "))
	}
	return nil
}
