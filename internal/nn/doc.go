// Package nn implements the transformer building blocks: layer normalization,
// sinusoidal positional encoding, masked multi-head attention, the
// position-wise feed-forward sublayer and label smoothing.
//
// Learned weights live in an explicit ParamStore. Layers are constructed from
// a Scope, which names their parameters with hierarchical keys and decides
// whether construction creates new parameters or binds to existing ones:
//
//	store := nn.NewParamStore(cpu.New(), 42)
//	enc := store.Root(nn.Create).Sub("encoder")
//	mha, err := nn.NewMultiHeadAttention(enc.Sub("multihead_attention"), 512, 512, nn.DefaultAttentionConfig())
//
// A second layer built from the same path in Reuse mode shares the weights.
package nn
