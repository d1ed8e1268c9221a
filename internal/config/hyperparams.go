// Package config loads model hyperparameters from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/transformer/internal/nn"
)

// Hyperparams describes one encoder/decoder layer stack.
//
// Example file:
//
//	d_model: 512
//	num_heads: 8
//	hidden_units: 2048
//	dropout_keep_prob: 0.9
//	label_smoothing: 0.1
//	max_len: 100
//	causality: true
//	seed: 42
type Hyperparams struct {
	ModelDim        int     `yaml:"d_model"`
	NumHeads        int     `yaml:"num_heads"`
	HiddenUnits     int     `yaml:"hidden_units"`
	DropoutKeepProb float32 `yaml:"dropout_keep_prob"`
	LabelSmoothing  float32 `yaml:"label_smoothing"`
	MaxLen          int     `yaml:"max_len"`
	Causality       bool    `yaml:"causality"`
	Epsilon         float32 `yaml:"epsilon"`
	Seed            *int64  `yaml:"seed,omitempty"`
}

// Default returns the base Transformer hyperparameters.
func Default() Hyperparams {
	return Hyperparams{
		ModelDim:        512,
		NumHeads:        8,
		HiddenUnits:     2048,
		DropoutKeepProb: 1,
		LabelSmoothing:  nn.DefaultSmoothing,
		MaxLen:          nn.MaxPositions,
		Epsilon:         nn.DefaultEpsilon,
	}
}

// Load decodes YAML from r on top of Default. Unknown keys are rejected.
func Load(r io.Reader) (Hyperparams, error) {
	hp := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&hp); err != nil && !errors.Is(err, io.EOF) {
		return Hyperparams{}, fmt.Errorf("decode hyperparameters: %w", err)
	}

	if err := hp.Validate(); err != nil {
		return Hyperparams{}, err
	}
	return hp, nil
}

// LoadFile reads hyperparameters from a YAML file.
func LoadFile(path string) (Hyperparams, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return Hyperparams{}, fmt.Errorf("open hyperparameters: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Validate checks the values against what the layers accept.
func (h Hyperparams) Validate() error {
	if h.MaxLen <= 0 || h.MaxLen > nn.MaxPositions {
		return fmt.Errorf("%w: max_len must be in [1, %d], got %d", nn.ErrConfig, nn.MaxPositions, h.MaxLen)
	}
	if h.LabelSmoothing < 0 || h.LabelSmoothing > 1 {
		return fmt.Errorf("%w: label_smoothing must be in [0, 1], got %v", nn.ErrConfig, h.LabelSmoothing)
	}
	if err := h.Attention().Validate(h.ModelDim); err != nil {
		return err
	}
	return h.FeedForward().Validate(h.ModelDim)
}

// Attention returns the attention sublayer configuration.
func (h Hyperparams) Attention() nn.AttentionConfig {
	return nn.AttentionConfig{
		NumUnits:        h.ModelDim,
		NumHeads:        h.NumHeads,
		DropoutKeepProb: h.DropoutKeepProb,
		Causality:       h.Causality,
		Seed:            h.Seed,
		Epsilon:         h.Epsilon,
	}
}

// FeedForward returns the feed-forward sublayer configuration.
func (h Hyperparams) FeedForward() nn.FeedForwardConfig {
	return nn.FeedForwardConfig{
		NumUnits: [2]int{h.HiddenUnits, h.ModelDim},
		Epsilon:  h.Epsilon,
	}
}
