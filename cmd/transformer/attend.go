package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/born-ml/transformer/backend/cpu"
	"github.com/born-ml/transformer/internal/config"
	"github.com/born-ml/transformer/nn"
	"github.com/born-ml/transformer/tensor"
)

// hyperparamFlags holds command line overrides of config.Hyperparams.
type hyperparamFlags struct {
	configPath string
	hp         config.Hyperparams
	seed       int64
}

func (f *hyperparamFlags) register(fs *pflag.FlagSet) {
	def := config.Default()
	fs.StringVar(&f.configPath, "config", "", "YAML hyperparameter file")
	fs.IntVar(&f.hp.ModelDim, "d-model", def.ModelDim, "model width")
	fs.IntVar(&f.hp.NumHeads, "heads", def.NumHeads, "attention heads")
	fs.IntVar(&f.hp.HiddenUnits, "hidden", def.HiddenUnits, "feed-forward hidden units")
	fs.Float32Var(&f.hp.DropoutKeepProb, "keep-prob", def.DropoutKeepProb, "attention dropout keep probability")
	fs.BoolVar(&f.hp.Causality, "causal", def.Causality, "mask future positions")
	fs.Int64Var(&f.seed, "seed", 0, "seed for weights, inputs and dropout")
}

// resolve starts from the config file (or defaults) and applies the flags
// the user set explicitly.
func (f *hyperparamFlags) resolve(fs *pflag.FlagSet) (config.Hyperparams, error) {
	hp := config.Default()
	if f.configPath != "" {
		var err error
		if hp, err = config.LoadFile(f.configPath); err != nil {
			return config.Hyperparams{}, err
		}
	}

	if fs.Changed("d-model") {
		hp.ModelDim = f.hp.ModelDim
	}
	if fs.Changed("heads") {
		hp.NumHeads = f.hp.NumHeads
	}
	if fs.Changed("hidden") {
		hp.HiddenUnits = f.hp.HiddenUnits
	}
	if fs.Changed("keep-prob") {
		hp.DropoutKeepProb = f.hp.DropoutKeepProb
	}
	if fs.Changed("causal") {
		hp.Causality = f.hp.Causality
	}
	if fs.Changed("seed") {
		seed := f.seed
		hp.Seed = &seed
	}
	if hp.Seed == nil {
		seed := time.Now().UnixNano()
		hp.Seed = &seed
	}

	return hp, hp.Validate()
}

func newAttendCommand(logger *slog.Logger) *cobra.Command {
	var (
		flags  hyperparamFlags
		batch  int
		length int
		pad    int
	)

	cmd := &cobra.Command{
		Use:   "attend",
		Short: "Run positional encoding, self-attention and feed-forward on random inputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hp, err := flags.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			if batch <= 0 || length <= 0 || length > hp.MaxLen {
				return fmt.Errorf("%w: need --batch > 0 and 0 < --len <= %d", nn.ErrConfig, hp.MaxLen)
			}
			if pad < 0 || pad > length {
				return fmt.Errorf("%w: --pad must be in [0, %d], got %d", nn.ErrConfig, length, pad)
			}

			logger.Debug("hyperparameters",
				"d_model", hp.ModelDim, "heads", hp.NumHeads, "hidden", hp.HiddenUnits,
				"keep_prob", hp.DropoutKeepProb, "causal", hp.Causality, "seed", *hp.Seed)

			return runAttend(cmd, logger, hp, batch, length, pad)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().IntVar(&batch, "batch", 2, "batch size")
	cmd.Flags().IntVar(&length, "len", 10, "sequence length")
	cmd.Flags().IntVar(&pad, "pad", 0, "length of the last batch row (0 means unpadded)")
	return cmd
}

func runAttend(cmd *cobra.Command, logger *slog.Logger, hp config.Hyperparams, batch, length, pad int) error {
	backend := cpu.New()
	store := nn.NewParamStore(backend, *hp.Seed)
	enc := store.Root(nn.Create).Sub("encoder")

	start := time.Now()

	pe, err := nn.NewPositionalEncoding(hp.ModelDim, false, backend)
	if err != nil {
		return err
	}
	mha, err := nn.NewMultiHeadAttention(enc.Sub(nn.DefaultAttentionScope), hp.ModelDim, hp.ModelDim, hp.Attention())
	if err != nil {
		return err
	}
	ff, err := nn.NewFeedForward(enc.Sub(nn.DefaultFeedForwardScope), hp.ModelDim, hp.FeedForward())
	if err != nil {
		return err
	}
	logger.Debug("layers built", "parameters", store.Len(), "elapsed", time.Since(start))

	lengths := make([]int, batch)
	for i := range lengths {
		lengths[i] = length
	}
	if pad > 0 {
		lengths[batch-1] = pad
	}
	mask, err := nn.PaddingMask(lengths, length, backend)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(*hp.Seed)) //nolint:gosec // synthetic inputs
	x := tensor.Randn(tensor.Shape{batch, length, hp.ModelDim}, rng, backend)
	pos, err := pe.Forward(tensor.Shape{batch, length})
	if err != nil {
		return err
	}
	x = x.Add(pos)

	res, err := mha.ForwardWithWeights(x, x, mask, mask)
	if err != nil {
		return err
	}
	out, err := ff.Forward(res.Output)
	if err != nil {
		return err
	}
	logger.Info("forward pass done", "elapsed", time.Since(start))

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "parameters:   %d\n", store.Len())
	fmt.Fprintf(w, "weights:      %v\n", res.Weights.Shape())
	fmt.Fprintf(w, "output:       %v\n", out.Shape())

	// Row sums of the first head of the last batch row: 1 for real queries, 0 for padding.
	last := batch - 1
	sums := make([]float32, length)
	for q := 0; q < length; q++ {
		for k := 0; k < length; k++ {
			sums[q] += res.Weights.At(last, q, k)
		}
	}
	writeRows(w, sums, length, "row sums")
	return nil
}
