package main

import (
	"fmt"
	"log/slog"

	sgnsconfig "github.com/adalundhe/sgns/core/config"
	"github.com/adalundhe/sgns/core/sgns/context"
	"github.com/adalundhe/sgns/core/sgns/factorization"
	"github.com/adalundhe/sgns/core/sgns/lm"
	"github.com/adalundhe/sgns/core/sgns/model"
	"github.com/adalundhe/sgns/core/sgns/rng"
	"github.com/adalundhe/sgns/core/sgns/sampling"
	"github.com/adalundhe/sgns/core/sgns/sgd"
	"github.com/adalundhe/sgns/core/sgns/vecmath"
)

// buildModel assembles a Model from a loaded Config, the way a real
// deployment picks concrete strategy implementations for the abstract
// interfaces the training core is built on. Every variant collapses to the
// same generic Model type, parameterized by the LanguageModel and
// SamplingStrategy it's handed.
func buildModel(cfg *sgnsconfig.Config, seed uint64, log *slog.Logger) (*model.Model, error) {
	src := rng.New(seed)

	var languageModel lm.LanguageModel
	switch cfg.Vocabulary.Variant {
	case "space_saving":
		languageModel = lm.NewSpaceSaving(cfg.Vocabulary.SpaceSavingCapacity, cfg.Vocabulary.SubsampleThreshold, src)
	case "naive", "":
		languageModel = lm.NewNaive(cfg.Vocabulary.SubsampleThreshold, src)
	default:
		return nil, fmt.Errorf("unknown vocabulary variant %q", cfg.Vocabulary.Variant)
	}

	var sampler sampling.Strategy
	switch cfg.Sampling.Strategy {
	case "uniform":
		sampler = sampling.NewUniform(src)
	case "reservoir":
		size := cfg.Sampling.ReservoirSize
		if size <= 0 {
			size = sampling.DefaultReservoirSize
		}
		sampler = sampling.NewReservoir(size, src)
	case "empirical", "":
		normalizer := vecmath.CountNormalizer{Exponent: cfg.Sampling.CountExponent}
		sampler = sampling.NewEmpirical(normalizer, cfg.Sampling.RefreshBurnIn, cfg.Sampling.RefreshInterval, src)
	default:
		return nil, fmt.Errorf("unknown sampling strategy %q", cfg.Sampling.Strategy)
	}

	var ctxStrategy context.Strategy
	if cfg.Context.Dynamic {
		ctxStrategy = context.NewDynamic(cfg.Context.SymmContext, src)
	} else {
		ctxStrategy = context.Static{SymmContext: cfg.Context.SymmContext}
	}

	vocabDim := cfg.Vocabulary.VocabDim
	if cfg.Vocabulary.Variant == "space_saving" {
		vocabDim = cfg.Vocabulary.SpaceSavingCapacity
	}
	fact, err := factorization.New(vocabDim, cfg.Embedding.EmbeddingDim, cfg.Embedding.AlignEach, src)
	if err != nil {
		return nil, err
	}

	schedule, err := sgd.New(1, cfg.Optimizer.Tau, cfg.Optimizer.Kappa, cfg.Optimizer.RhoLowerBound)
	if err != nil {
		return nil, err
	}

	return model.New(
		languageModel,
		sampler,
		ctxStrategy,
		fact,
		schedule,
		src,
		cfg.Sampling.NegativeSamples,
		cfg.Training.PropagateRetained,
		cfg.Training.Subsampling,
		cfg.Training.PropagateDiscarded,
		cfg.Inspection.NeighborCacheSize,
		log,
	)
}
