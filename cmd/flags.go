package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// flagValue reads a flag registered in init(). A lookup error means the flag
// name or type is wrong in code, so it panics instead of returning.
func flagValue[T any](cmd *cobra.Command, name string, get func(*pflag.FlagSet, string) (T, error)) T {
	val, err := get(cmd.Flags(), name)
	if err != nil {
		panic(fmt.Sprintf("flag --%s on %q: %v", name, cmd.Name(), err))
	}
	return val
}

func mustGetBool(cmd *cobra.Command, name string) bool {
	return flagValue(cmd, name, (*pflag.FlagSet).GetBool)
}

func mustGetInt(cmd *cobra.Command, name string) int {
	return flagValue(cmd, name, (*pflag.FlagSet).GetInt)
}

func mustGetString(cmd *cobra.Command, name string) string {
	return flagValue(cmd, name, (*pflag.FlagSet).GetString)
}

// mustGetWorkers reads a worker count flag, clamping it to at least one.
func mustGetWorkers(cmd *cobra.Command, name string) int {
	return max(mustGetInt(cmd, name), 1)
}
