package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_MatchesWord2VecConvention(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, 1e-3, cfg.Vocabulary.SubsampleThreshold)
	require.Equal(t, 16000, cfg.Vocabulary.VocabDim)
	require.Equal(t, 200, cfg.Embedding.EmbeddingDim)
	require.Equal(t, uint64(64000), cfg.Sampling.RefreshInterval)
	require.Equal(t, uint64(32000), cfg.Sampling.RefreshBurnIn)
	require.Equal(t, 100_000_000, cfg.Sampling.ReservoirSize)
	require.Equal(t, 0.0, cfg.Optimizer.Tau)
	require.Equal(t, 0.6, cfg.Optimizer.Kappa)
	require.Equal(t, 0.0, cfg.Optimizer.RhoLowerBound)
	require.True(t, cfg.Embedding.AlignEach)
}

func TestManager_LoadMergesYAMLOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("embedding:\n  embedding_dim: 64\nsampling:\n  negative_samples: 10\n"), 0o644))

	m := NewManager(path)
	require.NoError(t, m.Load())

	cfg := m.Get()
	require.Equal(t, 64, cfg.Embedding.EmbeddingDim)
	require.Equal(t, 10, cfg.Sampling.NegativeSamples)
	require.Equal(t, 16000, cfg.Vocabulary.VocabDim) // untouched default survives merge
}

func TestManager_LoadMissingFileKeepsDefaults(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, m.Load())
	require.Equal(t, DefaultConfig().Embedding.EmbeddingDim, m.Get().Embedding.EmbeddingDim)
}

func TestManager_OnChangeNotifiesOnLoad(t *testing.T) {
	m := NewManager("")
	var got *Config
	m.OnChange(func(c *Config) { got = c })
	require.NoError(t, m.Load())
	require.NotNil(t, got)
}

func TestManager_EnvironmentOverride(t *testing.T) {
	t.Setenv("SGNS_EMBEDDING_DIM", "32")
	m := NewManager("")
	require.NoError(t, m.Load())
	require.Equal(t, 32, m.Get().Embedding.EmbeddingDim)
}
