package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-hedm/hedm"
)

// HeaderResult is the output of the header command.
type HeaderResult struct {
	File           string        `json:"file" yaml:"file"`
	Group          string        `json:"group" yaml:"group"`
	XResolution    float32       `json:"x_resolution" yaml:"x_resolution"`
	YResolution    float32       `json:"y_resolution" yaml:"y_resolution"`
	XDimension     int           `json:"x_dimension" yaml:"x_dimension"`
	YDimension     int           `json:"y_dimension" yaml:"y_dimension"`
	Phases         []PhaseResult `json:"phases" yaml:"phases"`
	OriginalHeader string        `json:"original_header,omitempty" yaml:"original_header,omitempty"`
	Warnings       []string      `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// PhaseResult is one phase in HeaderResult.
type PhaseResult struct {
	Index            int        `json:"index" yaml:"index"`
	LatticeConstants [6]float32 `json:"lattice_constants" yaml:"lattice_constants,flow"`
	BasisAtoms       string     `json:"basis_atoms" yaml:"basis_atoms"`
	Symmetry         string     `json:"symmetry" yaml:"symmetry"`
}

func newHeaderResult(r *hedm.Reader) HeaderResult {
	h := r.Header()
	res := HeaderResult{
		File:           r.FileName(),
		Group:          r.GroupPath(),
		XResolution:    h.XResolution,
		YResolution:    h.YResolution,
		XDimension:     h.XDimension,
		YDimension:     h.YDimension,
		Phases:         []PhaseResult{},
		OriginalHeader: h.OriginalHeader,
		Warnings:       warningStrings(r.Warnings()),
	}
	for _, p := range r.Phases() {
		res.Phases = append(res.Phases, PhaseResult(p))
	}
	return res
}

// WriteText renders the header for humans.
func (h HeaderResult) WriteText(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "file:        %s\n", h.File)
	fmt.Fprintf(&b, "group:       %s\n", h.Group)
	fmt.Fprintf(&b, "resolution:  %v x %v\n", h.XResolution, h.YResolution)
	fmt.Fprintf(&b, "dimensions:  %d x %d\n", h.XDimension, h.YDimension)
	fmt.Fprintf(&b, "phases:      %d\n", len(h.Phases))
	for _, p := range h.Phases {
		fmt.Fprintf(&b, "  [%d] %-4s symmetry=%s lattice=%v\n", p.Index, p.BasisAtoms, p.Symmetry, p.LatticeConstants)
	}
	if h.OriginalHeader != "" {
		b.WriteString("original header:\n")
		for _, line := range strings.Split(strings.TrimRight(h.OriginalHeader, "\n"), "\n") {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}
	writeWarnings(&b, h.Warnings)
	_, err := io.WriteString(w, b.String())
	return err
}

// NewHeaderCommand creates the header command.
func NewHeaderCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &readFlags{}
	cmd := &cobra.Command{
		Use:   "header <file>",
		Short: "Print the header and phases of a scan",
		Long: `Read only the Header group of a scan: resolution, dimensions, phases and
the original free-text header. The Data group is never opened.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeader(rootOpts, flags, cmd, args[0])
		},
	}
	flags.register(cmd, false)
	return cmd
}

func runHeader(opts *RootOptions, flags *readFlags, cmd *cobra.Command, file string) error {
	formatter := opts.formatter(cmd)
	req, err := opts.request(cmd, flags)
	if err != nil {
		return err
	}

	r := opts.newReader(file, req)
	if err := r.ReadHeaderOnly(); err != nil {
		return readFailure(formatter, file, err)
	}
	formatter.VerboseLog("read %d phase(s) from %s", len(r.Phases()), file)
	return formatter.Success(newHeaderResult(r))
}

func warningStrings(ws []hedm.Warning) []string {
	var out []string
	for _, w := range ws {
		out = append(out, w.String())
	}
	return out
}

func writeWarnings(b *strings.Builder, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintf(b, "warnings:    %d\n", len(warnings))
	for _, w := range warnings {
		fmt.Fprintf(b, "  %s\n", w)
	}
}
