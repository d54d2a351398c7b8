// fairadmin is the operator CLI: it reads the running server's admin
// endpoints and the sqlite interaction index. It never writes
// simulation state beyond the setup endpoints.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fairadmin",
		Short: "careerfair.ai operator tools",
	}
	cmd.PersistentFlags().String("addr", "http://127.0.0.1:8080", "server base url")
	cmd.PersistentFlags().String("data", "./data", "runtime data directory")
	cmd.PersistentFlags().String("fair", "fair_1", "fair id")

	cmd.AddCommand(newStateCmd())
	cmd.AddCommand(newSnapshotCmd())
	cmd.AddCommand(newLeaderboardCmd())
	cmd.AddCommand(newOffersCmd())
	return cmd
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
