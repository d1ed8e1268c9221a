package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/transformer/internal/nn"
)

func TestLoad_OverridesDefaults(t *testing.T) {
	hp, err := Load(strings.NewReader(`
d_model: 64
num_heads: 4
hidden_units: 256
dropout_keep_prob: 0.9
causality: true
seed: 7
`))
	require.NoError(t, err)

	assert.Equal(t, 64, hp.ModelDim)
	assert.Equal(t, 4, hp.NumHeads)
	assert.Equal(t, 256, hp.HiddenUnits)
	assert.InDelta(t, 0.9, hp.DropoutKeepProb, 1e-6)
	assert.True(t, hp.Causality)
	require.NotNil(t, hp.Seed)
	assert.Equal(t, int64(7), *hp.Seed)

	// Untouched keys keep their defaults.
	assert.Equal(t, nn.MaxPositions, hp.MaxLen)
	assert.Equal(t, nn.DefaultSmoothing, hp.LabelSmoothing)

	att := hp.Attention()
	assert.Equal(t, 64, att.NumUnits)
	assert.True(t, att.Causality)
	assert.Equal(t, [2]int{256, 64}, hp.FeedForward().NumUnits)
}

func TestLoad_Empty(t *testing.T) {
	hp, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), hp)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{"unknown key", "d_modle: 64\n", nil},
		{"heads do not divide", "d_model: 10\nnum_heads: 3\n", nn.ErrShape},
		{"max len too long", "max_len: 2048\n", nn.ErrConfig},
		{"bad keep prob", "dropout_keep_prob: 0\n", nn.ErrConfig},
		{"bad smoothing", "label_smoothing: 1.5\n", nn.ErrConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.yaml))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hparams.yaml")
	require.NoError(t, os.WriteFile(path, []byte("d_model: 32\nnum_heads: 2\nhidden_units: 64\n"), 0o600))

	hp, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 32, hp.ModelDim)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
