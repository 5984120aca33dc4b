package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-hedm/hedm"
)

// ExportResult is the output of the export command.
type ExportResult struct {
	File       string   `json:"file" yaml:"file"`
	Output     string   `json:"output" yaml:"output"`
	Rows       int      `json:"rows" yaml:"rows"`
	Columns    []string `json:"columns" yaml:"columns"`
	Compressed bool     `json:"compressed" yaml:"compressed"`
}

func (res ExportResult) String() string {
	kind := "csv"
	if res.Compressed {
		kind = "zstd csv"
	}
	return fmt.Sprintf("wrote %d rows x %d columns to %s (%s)", res.Rows, len(res.Columns), res.Output, kind)
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &readFlags{}
	var output string
	var compress bool
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export data columns as CSV",
		Long: `Read a scan and write its data columns as CSV, one row per grid point.
All known columns are exported unless --arrays selects a subset. With --zstd
the CSV is zstd-compressed.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, flags, cmd, args[0], output, compress)
		},
	}
	flags.register(cmd, true)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (- for stdout)")
	cmd.Flags().BoolVar(&compress, "zstd", false, "compress the output with zstd")
	cmd.MarkFlagRequired("output")
	return cmd
}

func runExport(opts *RootOptions, flags *readFlags, cmd *cobra.Command, file, output string, compress bool) (err error) {
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

	var w io.Writer = cmd.OutOrStdout()
	if output != "-" {
		out, err := os.Create(output)
		if err != nil {
			return WrapExitError(ExitCommandError, "creating output", err)
		}
		defer func() {
			if cerr := out.Close(); cerr != nil && err == nil {
				err = WrapExitError(ExitFailure, "closing output", cerr)
			}
		}()
		w = out
	}

	if compress {
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return WrapExitError(ExitFailure, "creating zstd writer", err)
		}
		if err := WriteCSV(enc, r.Columns()); err != nil {
			enc.Close()
			return WrapExitError(ExitFailure, "writing csv", err)
		}
		if err := enc.Close(); err != nil {
			return WrapExitError(ExitFailure, "flushing zstd", err)
		}
	} else if err := WriteCSV(w, r.Columns()); err != nil {
		return WrapExitError(ExitFailure, "writing csv", err)
	}

	if output == "-" {
		return nil
	}
	return formatter.Success(ExportResult{
		File:       file,
		Output:     output,
		Rows:       r.NumberOfElements(),
		Columns:    r.Columns().Names(),
		Compressed: compress,
	})
}

// WriteCSV writes the present columns with a header row.
func WriteCSV(w io.Writer, cols hedm.Columns) error {
	cw := csv.NewWriter(w)
	names := cols.Names()
	if err := cw.Write(names); err != nil {
		return err
	}
	record := make([]string, len(names))
	for i := range cols.Len() {
		for j, name := range names {
			record[j] = formatCell(cols, name, i)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCell(cols hedm.Columns, name string, i int) string {
	if v, ok := cols.Int32(name); ok {
		return strconv.FormatInt(int64(v[i]), 10)
	}
	if v, ok := cols.Float32(name); ok {
		return strconv.FormatFloat(float64(v[i]), 'g', -1, 32)
	}
	return ""
}
