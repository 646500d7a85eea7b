// Command sgns-bench drives the SGNS training core end to end against a
// synthetic or file-backed sentence stream, for benchmarking and manual
// inspection.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sgns-bench",
	Short: "Benchmark and inspect the SGNS training core",
	Long:  `sgns-bench drives the skip-gram-with-negative-sampling training core against a sentence stream and reports throughput and embedding quality.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
