package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	sgnsconfig "github.com/adalundhe/sgns/core/config"
	"github.com/adalundhe/sgns/core/sgns/model"
)

var (
	nearestConfigPath   string
	nearestSnapshotPath string
	nearestSeed         uint64
)

var nearestCmd = &cobra.Command{
	Use:   "nearest [words...]",
	Short: "Look up the nearest neighbor of each given word in a snapshot",
	Long: `Restores a model from a snapshot written by "sgns-bench train
--snapshot-out" and reports the nearest neighbor and cosine similarity for
each word given on the command line.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNearest,
}

func init() {
	rootCmd.AddCommand(nearestCmd)

	nearestCmd.Flags().StringVar(&nearestConfigPath, "config", "", "Path to a YAML config matching the one used to train the snapshot")
	nearestCmd.Flags().StringVar(&nearestSnapshotPath, "snapshot", "", "Path to a binary model snapshot (required)")
	nearestCmd.Flags().Uint64Var(&nearestSeed, "seed", 1, "RNG seed for the restored model's components")
	nearestCmd.MarkFlagRequired("snapshot")
}

func runNearest(cmd *cobra.Command, args []string) error {
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))

	mgr := sgnsconfig.NewManager(nearestConfigPath)
	if err := mgr.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	m, err := buildModel(cfg, nearestSeed, log)
	if err != nil {
		return fmt.Errorf("build model: %w", err)
	}

	data, err := os.ReadFile(nearestSnapshotPath)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	if err := model.RestoreInto(m, data); err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, word := range args {
		idx := m.LM().Lookup(word)
		if idx < 0 {
			fmt.Fprintf(out, "%s: out of vocabulary\n", word)
			continue
		}
		neighborIdx, err := m.NearestNeighbor(idx)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", word, err)
			continue
		}
		neighbor, err := m.LM().ReverseLookup(neighborIdx)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", word, err)
			continue
		}
		sim, err := m.Similarity(idx, neighborIdx)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", word, err)
			continue
		}
		fmt.Fprintf(out, "%s -> %s (cosine=%.4f)\n", word, neighbor, sim)
	}

	return nil
}
