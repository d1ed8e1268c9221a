package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/born-ml/transformer/backend/cpu"
	"github.com/born-ml/transformer/nn"
	"github.com/born-ml/transformer/tensor"
)

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print backend and CPU information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			backend := cpu.New()
			features := cpu.Features()
			if len(features) == 0 {
				features = []string{"none"}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "backend:       %s (%s)\n", backend.Name(), backend.Device())
			fmt.Fprintf(out, "arch:          %s/%s, %d CPUs\n", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
			fmt.Fprintf(out, "cpu features:  %s\n", strings.Join(features, ", "))
			fmt.Fprintf(out, "max positions: %d\n", nn.MaxPositions)
		},
	}
}

func newPosEncCommand() *cobra.Command {
	var (
		length int
		units  int
		scale  bool
	)

	cmd := &cobra.Command{
		Use:   "posenc",
		Short: "Print the first rows of the sinusoidal positional encoding table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pe, err := nn.NewPositionalEncoding(units, scale, cpu.New())
			if err != nil {
				return err
			}
			enc, err := pe.Forward(tensor.Shape{1, length})
			if err != nil {
				return err
			}

			writeRows(cmd.OutOrStdout(), enc.Data(), units, "pos")
			return nil
		},
	}

	cmd.Flags().IntVar(&length, "len", 4, "number of positions to print")
	cmd.Flags().IntVar(&units, "units", 8, "encoding width")
	cmd.Flags().BoolVar(&scale, "scale", false, "multiply by sqrt(units)")
	return cmd
}

func newSmoothCommand() *cobra.Command {
	var (
		classes int
		epsilon float32
	)

	cmd := &cobra.Command{
		Use:   "smooth",
		Short: "Smooth the one-hot identity targets of a vocabulary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if classes <= 0 {
				return fmt.Errorf("%w: --classes must be positive, got %d", nn.ErrConfig, classes)
			}

			backend := cpu.New()
			oneHot := tensor.Zeros[float32](tensor.Shape{1, classes, classes}, backend)
			for i := 0; i < classes; i++ {
				oneHot.Set(1, 0, i, i)
			}

			smoothed, err := nn.LabelSmoothing(oneHot, epsilon)
			if err != nil {
				return err
			}

			writeRows(cmd.OutOrStdout(), smoothed.Data(), classes, "class")
			return nil
		},
	}

	cmd.Flags().IntVar(&classes, "classes", 3, "vocabulary size")
	cmd.Flags().Float32Var(&epsilon, "epsilon", nn.DefaultSmoothing, "smoothing rate")
	return cmd
}

// writeRows prints data as rows of width values, prefixed by label and row index.
func writeRows(w io.Writer, data []float32, width int, label string) {
	for i, row := range lo.Chunk(data, width) {
		cells := lo.Map(row, func(v float32, _ int) string {
			return fmt.Sprintf("%8.4f", v)
		})
		fmt.Fprintf(w, "%s %3d: %s\n", label, i, strings.Join(cells, " "))
	}
}
