// Package config loads and holds the SGNS training core's hyperparameters:
// an atomically-swapped *Config behind a Manager, defaults layered under a
// single optional YAML file via DeepMerge, with a handful of
// environment variable overrides for the options operators most often
// need to tune without touching a file.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"unsafe"

	"gopkg.in/yaml.v3"
)

// Config holds every recognized training hyperparameter, plus the options
// a real deployment still has to pick a value for even when no document
// pins one down (symm_context, negative_samples, which
// LanguageModel/SamplingStrategy/ContextStrategy variant to run).
type Config struct {
	Vocabulary VocabularyConfig `yaml:"vocabulary"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Sampling   SamplingConfig   `yaml:"sampling"`
	Context    ContextConfig    `yaml:"context"`
	Optimizer  OptimizerConfig  `yaml:"optimizer"`
	Training   TrainingConfig   `yaml:"training"`
	Inspection InspectionConfig `yaml:"inspection"`
}

// VocabularyConfig configures the LanguageModel.
type VocabularyConfig struct {
	// Variant selects "naive" (exact, unbounded) or "space_saving"
	// (bounded-memory approximate).
	Variant             string  `yaml:"variant"`
	VocabDim            int     `yaml:"vocab_dim"`
	SpaceSavingCapacity int     `yaml:"space_saving_capacity"`
	SubsampleThreshold  float64 `yaml:"subsample_threshold"`
}

// EmbeddingConfig configures WordContextFactorization.
type EmbeddingConfig struct {
	EmbeddingDim int  `yaml:"embedding_dim"`
	AlignEach    bool `yaml:"align_each_embedding"`
}

// SamplingConfig configures the negative SamplingStrategy.
type SamplingConfig struct {
	// Strategy selects "uniform", "empirical", or "reservoir".
	Strategy        string  `yaml:"strategy"`
	NegativeSamples int     `yaml:"negative_samples"`
	RefreshInterval uint64  `yaml:"refresh_interval"`
	RefreshBurnIn   uint64  `yaml:"refresh_burn_in"`
	ReservoirSize   int     `yaml:"reservoir_size"`
	CountExponent   float64 `yaml:"count_exponent"`
}

// ContextConfig configures the ContextStrategy.
type ContextConfig struct {
	SymmContext int  `yaml:"symm_context"`
	Dynamic     bool `yaml:"dynamic"`
}

// OptimizerConfig configures SGD.
type OptimizerConfig struct {
	Tau           float64 `yaml:"tau"`
	Kappa         float64 `yaml:"kappa"`
	RhoLowerBound float64 `yaml:"rho_lower_bound"`
}

// TrainingConfig configures the sentence learner.
type TrainingConfig struct {
	Subsampling        bool `yaml:"subsampling"`
	PropagateRetained  bool `yaml:"propagate_retained"`
	PropagateDiscarded bool `yaml:"propagate_discarded"`
}

// InspectionConfig configures the read-side nearest-neighbor cache.
type InspectionConfig struct {
	NeighborCacheSize int `yaml:"neighbor_cache_size"`
}

// DefaultConfig returns this repo's default hyperparameters, chosen to
// match standard SGNS/word2vec convention (documented in DESIGN.md).
func DefaultConfig() *Config {
	return &Config{
		Vocabulary: VocabularyConfig{
			Variant:             "naive",
			VocabDim:            16000,
			SpaceSavingCapacity: 16000,
			SubsampleThreshold:  1e-3,
		},
		Embedding: EmbeddingConfig{
			EmbeddingDim: 200,
			AlignEach:    true,
		},
		Sampling: SamplingConfig{
			Strategy:        "empirical",
			NegativeSamples: 5,
			RefreshInterval: 64000,
			RefreshBurnIn:   32000,
			ReservoirSize:   100_000_000,
			CountExponent:   0.75,
		},
		Context: ContextConfig{
			SymmContext: 5,
			Dynamic:     false,
		},
		Optimizer: OptimizerConfig{
			Tau:           0,
			Kappa:         0.6,
			RhoLowerBound: 0,
		},
		Training: TrainingConfig{
			Subsampling:        true,
			PropagateRetained:  true,
			PropagateDiscarded: false,
		},
		Inspection: InspectionConfig{
			NeighborCacheSize: 1024,
		},
	}
}

// Manager holds the current Config behind an atomically-swapped pointer so
// readers never observe a partially-applied reload.
type Manager struct {
	configPtr unsafe.Pointer
	path      string
	watchers  []func(*Config)
	watcherMu sync.RWMutex
}

// NewManager constructs a Manager that loads from path (if non-empty) on
// top of DefaultConfig.
func NewManager(path string) *Manager {
	m := &Manager{path: path}
	atomic.StorePointer(&m.configPtr, unsafe.Pointer(DefaultConfig()))
	return m
}

// Get returns the current Config.
func (m *Manager) Get() *Config {
	return (*Config)(atomic.LoadPointer(&m.configPtr))
}

// Load reads m.path over DefaultConfig, applies environment overrides, and
// publishes the result. The file is unmarshaled into a zero-value overlay
// and merged onto the defaults with DeepMerge rather than directly into
// them, so an absent section never clobbers its default with YAML's own
// zero values.
func (m *Manager) Load() error {
	cfg := DefaultConfig()

	if m.path != "" {
		data, err := os.ReadFile(m.path)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("config: %w", err)
		}
		if err == nil {
			overlay := &Config{}
			if err := yaml.Unmarshal(data, overlay); err != nil {
				return fmt.Errorf("config: %w", err)
			}
			DeepMerge(cfg, overlay)
		}
	}

	applyEnvironment(cfg)

	atomic.StorePointer(&m.configPtr, unsafe.Pointer(cfg))
	m.notifyWatchers(cfg)
	return nil
}

func applyEnvironment(cfg *Config) {
	if v := os.Getenv("SGNS_EMBEDDING_DIM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Embedding.EmbeddingDim = n
		}
	}
	if v := os.Getenv("SGNS_VOCAB_VARIANT"); v != "" {
		cfg.Vocabulary.Variant = strings.ToLower(v)
	}
	if v := os.Getenv("SGNS_SAMPLING_STRATEGY"); v != "" {
		cfg.Sampling.Strategy = strings.ToLower(v)
	}
	if v := os.Getenv("SGNS_NEGATIVE_SAMPLES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Sampling.NegativeSamples = n
		}
	}
	if v := os.Getenv("SGNS_SUBSAMPLE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Vocabulary.SubsampleThreshold = f
		}
	}
}

// OnChange registers fn to be called after every successful Load.
func (m *Manager) OnChange(fn func(*Config)) {
	m.watcherMu.Lock()
	m.watchers = append(m.watchers, fn)
	m.watcherMu.Unlock()
}

func (m *Manager) notifyWatchers(cfg *Config) {
	m.watcherMu.RLock()
	watchers := m.watchers
	m.watcherMu.RUnlock()
	for _, fn := range watchers {
		fn(cfg)
	}
}

// DeepMerge overlays src onto dst field by field: a zero-valued dst field
// always takes src's value, and a non-zero dst field only takes src's
// value when src itself is non-zero. This is what lets Load start from
// DefaultConfig and apply a YAML file that only sets a handful of fields
// without the unset fields reverting to Go's zero values.
//
// This is pure reflect-walking over struct/map/slice/scalar shapes; it
// carries no SGNS-specific identifiers to adapt, which is why it stays
// general-purpose rather than being rewritten against the Config type
// directly. Manager.Load is the only caller.
func DeepMerge(dst, src any) {
	dstVal := reflect.ValueOf(dst)
	srcVal := reflect.ValueOf(src)

	if dstVal.Kind() != reflect.Ptr || srcVal.Kind() != reflect.Ptr {
		return
	}

	mergeValues(dstVal.Elem(), srcVal.Elem())
}

func mergeValues(dst, src reflect.Value) {
	if !dst.CanSet() || !src.IsValid() {
		return
	}

	switch dst.Kind() {
	case reflect.Struct:
		mergeStruct(dst, src)
	case reflect.Map:
		mergeMap(dst, src)
	case reflect.Slice:
		mergeSlice(dst, src)
	default:
		mergeScalar(dst, src)
	}
}

func mergeStruct(dst, src reflect.Value) {
	for i := 0; i < dst.NumField(); i++ {
		mergeValues(dst.Field(i), src.Field(i))
	}
}

func mergeMap(dst, src reflect.Value) {
	if src.IsNil() {
		return
	}

	if dst.IsNil() {
		dst.Set(reflect.MakeMap(dst.Type()))
	}

	for _, key := range src.MapKeys() {
		srcVal := src.MapIndex(key)
		dstVal := dst.MapIndex(key)

		if !dstVal.IsValid() {
			dst.SetMapIndex(key, srcVal)
			continue
		}

		if srcVal.Kind() == reflect.Map || srcVal.Kind() == reflect.Struct {
			newDst := reflect.New(dstVal.Type()).Elem()
			newDst.Set(dstVal)
			mergeValues(newDst, srcVal)
			dst.SetMapIndex(key, newDst)
		} else {
			dst.SetMapIndex(key, srcVal)
		}
	}
}

func mergeSlice(dst, src reflect.Value) {
	if src.Len() > 0 {
		dst.Set(src)
	}
}

func mergeScalar(dst, src reflect.Value) {
	if isZeroValue(dst) || !isZeroValue(src) {
		dst.Set(src)
	}
}

func isZeroValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
