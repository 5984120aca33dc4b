package cli

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-hedm/filter"
	"github.com/robert-malhotra/go-hedm/hedm"
)

// ColumnStats summarizes one column.
type ColumnStats struct {
	Name string  `json:"name" yaml:"name"`
	Min  float64 `json:"min" yaml:"min"`
	Max  float64 `json:"max" yaml:"max"`
	Mean float64 `json:"mean" yaml:"mean"`
}

// StatsResult is the output of the stats command.
type StatsResult struct {
	File    string        `json:"file" yaml:"file"`
	Rows    int           `json:"rows" yaml:"rows"`
	Columns []ColumnStats `json:"columns" yaml:"columns"`
	// EulerNorm is the mean p-norm of the (Euler1, Euler2, Euler3) triplets,
	// absent when any Euler column is missing.
	EulerNorm *float64 `json:"euler_norm,omitempty" yaml:"euler_norm,omitempty"`
	P         float32  `json:"p" yaml:"p"`
}

// WriteText renders a table of column statistics.
func (res StatsResult) WriteText(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "file:        %s\n", res.File)
	fmt.Fprintf(&b, "rows:        %d\n", res.Rows)
	fmt.Fprintf(&b, "  %-10s %12s %12s %12s\n", "column", "min", "max", "mean")
	for _, c := range res.Columns {
		fmt.Fprintf(&b, "  %-10s %12.6g %12.6g %12.6g\n", c.Name, c.Min, c.Max, c.Mean)
	}
	if res.EulerNorm != nil {
		fmt.Fprintf(&b, "euler norm:  %.6g (p=%g)\n", *res.EulerNorm, res.P)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &readFlags{}
	var p float32
	cmd := &cobra.Command{
		Use:   "stats <file>",
		Short: "Summarize the data columns of a scan",
		Long: `Read a scan and print min, max and mean of every loaded column, plus the
mean p-norm of the Euler angle triplets when all three Euler columns are
present.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(rootOpts, flags, cmd, args[0], p)
		},
	}
	flags.register(cmd, true)
	cmd.Flags().Float32Var(&p, "p", 2, "exponent of the Euler p-norm")
	return cmd
}

func runStats(opts *RootOptions, flags *readFlags, cmd *cobra.Command, file string, p float32) error {
	formatter := opts.formatter(cmd)
	req, err := opts.request(cmd, flags)
	if err != nil {
		return err
	}
	if len(req.Arrays) == 0 {
		req.ReadAll = true
	}

	r := opts.newReader(file, req)
	if err := r.ReadFile(); err != nil {
		return readFailure(formatter, file, err)
	}
	defer r.Reset()

	res, err := computeStats(file, r.Columns(), p)
	if err != nil {
		return WrapExitError(ExitCommandError, "computing euler norm", err)
	}
	return formatter.Success(res)
}

func computeStats(file string, cols hedm.Columns, p float32) (StatsResult, error) {
	res := StatsResult{File: file, Rows: cols.Len(), Columns: []ColumnStats{}, P: p}
	for _, name := range cols.Names() {
		res.Columns = append(res.Columns, columnStats(cols, name))
	}

	e1, ok1 := cols.Float32(hedm.ColumnEuler1)
	e2, ok2 := cols.Float32(hedm.ColumnEuler2)
	e3, ok3 := cols.Float32(hedm.ColumnEuler3)
	if !ok1 || !ok2 || !ok3 {
		return res, nil
	}
	triplets := make([]float32, 0, 3*len(e1))
	for i := range e1 {
		triplets = append(triplets, e1[i], e2[i], e3[i])
	}
	mean, err := filter.MeanNorm(triplets, 3, p)
	if err != nil {
		return StatsResult{}, err
	}
	res.EulerNorm = &mean
	return res, nil
}

func columnStats(cols hedm.Columns, name string) ColumnStats {
	s := ColumnStats{Name: name, Min: math.Inf(1), Max: math.Inf(-1)}
	n := cols.Len()
	var sum float64
	for i := range n {
		v, _ := cols.Value(name, i)
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
		sum += v
	}
	if n == 0 {
		s.Min, s.Max = 0, 0
		return s
	}
	s.Mean = sum / float64(n)
	return s
}
