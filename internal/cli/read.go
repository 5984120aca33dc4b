package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-hedm/hedm"
)

// ReadResult is the output of the read command.
type ReadResult struct {
	File     string         `json:"file" yaml:"file"`
	Group    string         `json:"group" yaml:"group"`
	Rows     int            `json:"rows" yaml:"rows"`
	Phases   int            `json:"phases" yaml:"phases"`
	Columns  []ColumnResult `json:"columns" yaml:"columns"`
	Warnings []string       `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// ColumnResult describes one loaded column.
type ColumnResult struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
	Len  int    `json:"len" yaml:"len"`
}

// WriteText renders the result for humans.
func (res ReadResult) WriteText(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "file:        %s\n", res.File)
	fmt.Fprintf(&b, "group:       %s\n", res.Group)
	fmt.Fprintf(&b, "rows:        %d\n", res.Rows)
	fmt.Fprintf(&b, "phases:      %d\n", res.Phases)
	fmt.Fprintf(&b, "columns:     %d\n", len(res.Columns))
	for _, c := range res.Columns {
		fmt.Fprintf(&b, "  %-10s %-7s %d\n", c.Name, c.Type, c.Len)
	}
	writeWarnings(&b, res.Warnings)
	_, err := io.WriteString(w, b.String())
	return err
}

// NewReadCommand creates the read command.
func NewReadCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &readFlags{}
	cmd := &cobra.Command{
		Use:   "read <file>",
		Short: "Read header and data columns of a scan",
		Long: `Read the header and the selected data columns of a scan and list the
columns that were loaded. Columns whose dataset is missing are still listed:
they are zero-filled and reported as warnings.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(rootOpts, flags, cmd, args[0])
		},
	}
	flags.register(cmd, true)
	return cmd
}

func runRead(opts *RootOptions, flags *readFlags, cmd *cobra.Command, file string) error {
	formatter := opts.formatter(cmd)
	req, err := opts.request(cmd, flags)
	if err != nil {
		return err
	}

	r := opts.newReader(file, req)
	if err := r.ReadFile(); err != nil {
		return readFailure(formatter, file, err)
	}
	return formatter.Success(newReadResult(r))
}

func newReadResult(r *hedm.Reader) ReadResult {
	cols := r.Columns()
	res := ReadResult{
		File:     r.FileName(),
		Group:    r.GroupPath(),
		Rows:     r.NumberOfElements(),
		Phases:   len(r.Phases()),
		Columns:  []ColumnResult{},
		Warnings: warningStrings(r.Warnings()),
	}
	for _, name := range cols.Names() {
		spec, _ := hedm.LookupColumn(name)
		res.Columns = append(res.Columns, ColumnResult{
			Name: name,
			Type: spec.Kind.String(),
			Len:  cols.Len(),
		})
	}
	return res
}
