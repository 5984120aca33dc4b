package cli

import (
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-hedm/hedm"
	"github.com/robert-malhotra/go-hedm/internal/config"
)

// readFlags are the read-request flags shared by the reading commands.
type readFlags struct {
	group      string
	arrays     []string
	all        bool
	phaseOrder string
}

func (f *readFlags) register(cmd *cobra.Command, columns bool) {
	cmd.Flags().StringVarP(&f.group, "group", "g", "", "internal group path of the scan")
	cmd.Flags().StringVar(&f.phaseOrder, "phase-order", "store", "phase order (store|index)")
	if columns {
		cmd.Flags().StringSliceVar(&f.arrays, "arrays", nil, "columns to read")
		cmd.Flags().BoolVar(&f.all, "all", false, "read every column")
	}
}

// request merges the --config file with the flags; flags that were set win.
func (o *RootOptions) request(cmd *cobra.Command, f *readFlags) (*config.Request, error) {
	req := &config.Request{}
	if o.Config != "" {
		loaded, err := config.Load(o.Config)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "loading request", err)
		}
		req = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("group") || req.Group == "" {
		req.Group = f.group
	}
	if flags.Changed("arrays") {
		req.Arrays = f.arrays
	}
	if flags.Changed("all") {
		req.ReadAll = f.all
	}
	if flags.Changed("phase-order") || req.PhaseOrder == "" {
		req.PhaseOrder = f.phaseOrder
	}
	if err := config.Validate(req); err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid request", err)
	}
	return req, nil
}

func (o *RootOptions) newReader(file string, req *config.Request) *hedm.Reader {
	opts := append(req.Options(),
		hedm.WithStore(o.store()),
		hedm.WithLogger(o.log().WithFile(file)),
	)
	return hedm.NewReader(file, opts...)
}
