package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/robert-malhotra/go-hedm/hedm"
)

// BatchEntry is the header summary of one file.
type BatchEntry struct {
	File       string `json:"file" yaml:"file"`
	OK         bool   `json:"ok" yaml:"ok"`
	Code       int    `json:"code,omitempty" yaml:"code,omitempty"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
	XDimension int    `json:"x_dimension" yaml:"x_dimension"`
	YDimension int    `json:"y_dimension" yaml:"y_dimension"`
	Phases     int    `json:"phases" yaml:"phases"`
	Warnings   int    `json:"warnings" yaml:"warnings"`
}

// BatchResult is the output of the batch command, in input order.
type BatchResult struct {
	Files  []BatchEntry `json:"files" yaml:"files"`
	Failed int          `json:"failed" yaml:"failed"`
}

// WriteText renders one line per file.
func (res BatchResult) WriteText(w io.Writer) error {
	var b strings.Builder
	for _, e := range res.Files {
		if e.OK {
			fmt.Fprintf(&b, "ok    %s  %dx%d  phases=%d", e.File, e.XDimension, e.YDimension, e.Phases)
			if e.Warnings > 0 {
				fmt.Fprintf(&b, "  warnings=%d", e.Warnings)
			}
			b.WriteByte('\n')
			continue
		}
		fmt.Fprintf(&b, "FAIL  %s  [%d] %s\n", e.File, e.Code, e.Error)
	}
	fmt.Fprintf(&b, "%d file(s), %d failed\n", len(res.Files), res.Failed)
	_, err := io.WriteString(w, b.String())
	return err
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &readFlags{}
	var jobs int
	cmd := &cobra.Command{
		Use:   "batch <file>...",
		Short: "Read the headers of many scans in parallel",
		Long: `Read the header of every file with the same request, using one reader per
file and up to --jobs reads at a time. Results are listed in input order;
the command fails if any file failed.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(rootOpts, flags, cmd, args, jobs)
		},
	}
	flags.register(cmd, false)
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.GOMAXPROCS(0), "maximum concurrent reads")
	return cmd
}

func runBatch(opts *RootOptions, flags *readFlags, cmd *cobra.Command, files []string, jobs int) error {
	formatter := opts.formatter(cmd)
	req, err := opts.request(cmd, flags)
	if err != nil {
		return err
	}
	if jobs < 1 {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid --jobs %d", jobs))
	}

	entries := make([]BatchEntry, len(files))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(jobs)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			entries[i] = readBatchEntry(opts, file, req.Options())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return WrapExitError(ExitFailure, "batch interrupted", err)
	}

	res := BatchResult{Files: entries}
	var first *BatchEntry
	for i := range entries {
		if !entries[i].OK {
			res.Failed++
			if first == nil {
				first = &entries[i]
			}
		}
	}
	if err := formatter.Success(res); err != nil {
		return err
	}
	if first != nil {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d file(s) failed, first %s [%d]: %s",
			res.Failed, len(entries), first.File, first.Code, first.Error))
	}
	return nil
}

func readBatchEntry(opts *RootOptions, file string, readOpts []hedm.Option) BatchEntry {
	readOpts = append(readOpts,
		hedm.WithStore(opts.store()),
		hedm.WithLogger(opts.log().WithFile(file)),
	)
	r := hedm.NewReader(file, readOpts...)
	e := BatchEntry{File: file}
	if err := r.ReadHeaderOnly(); err != nil {
		e.Code = int(hedm.CodeOf(err))
		e.Error = err.Error()
		return e
	}
	e.OK = true
	e.XDimension = r.XDimension()
	e.YDimension = r.YDimension()
	e.Phases = len(r.Phases())
	e.Warnings = len(r.Warnings())
	return e
}
