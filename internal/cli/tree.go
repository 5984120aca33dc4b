package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-hedm/store"
)

// TreeEntry is one object in the tree output.
type TreeEntry struct {
	Path  string `json:"path" yaml:"path"`
	Kind  string `json:"kind" yaml:"kind"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// TreeResult is the output of the tree command.
type TreeResult struct {
	File    string      `json:"file" yaml:"file"`
	Entries []TreeEntry `json:"entries" yaml:"entries"`
}

// WriteText prints one object per line, indented by depth. Groups end
// with a slash.
func (res TreeResult) WriteText(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", res.File)
	for _, e := range res.Entries {
		parts := store.SplitPath(e.Path)
		if len(parts) == 0 {
			continue
		}
		name := parts[len(parts)-1]
		if e.Kind == store.KindGroup.String() {
			name += "/"
		}
		fmt.Fprintf(&b, "%s%s", strings.Repeat("  ", len(parts)), name)
		if e.Error != "" {
			fmt.Fprintf(&b, "  ERROR: %s", e.Error)
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// NewTreeCommand creates the tree command.
func NewTreeCommand(rootOpts *RootOptions) *cobra.Command {
	var root string
	cmd := &cobra.Command{
		Use:           "tree <file>",
		Short:         "Print the group and dataset hierarchy of a file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(rootOpts, cmd, args[0], root)
		},
	}
	cmd.Flags().StringVar(&root, "root", "/", "group to start from")
	return cmd
}

func runTree(opts *RootOptions, cmd *cobra.Command, file, root string) error {
	formatter := opts.formatter(cmd)

	f, err := opts.store().Open(file)
	if err != nil {
		_ = formatter.Error("open", err.Error(), nil)
		return WrapExitError(ExitFailure, "opening "+file, err)
	}
	defer f.Close()

	g, err := f.OpenGroup(root)
	if err != nil {
		_ = formatter.Error("open", err.Error(), nil)
		return WrapExitError(ExitFailure, "opening "+root, err)
	}
	defer g.Close()

	res := TreeResult{File: file, Entries: []TreeEntry{}}
	err = store.Walk(g, func(path string, kind store.Kind, err error) error {
		e := TreeEntry{Path: path, Kind: kind.String()}
		if err != nil {
			e.Error = err.Error()
		}
		res.Entries = append(res.Entries, e)
		return nil
	})
	if err != nil {
		return WrapExitError(ExitFailure, "walking "+file, err)
	}
	return formatter.Success(res)
}
