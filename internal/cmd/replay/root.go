// Package replay contains the Cobra CLI commands for rewind.
package replay

import (
	"github.com/spf13/cobra"

	"github.com/rzbill/rewind/internal/config"
	logpkg "github.com/rzbill/rewind/pkg/log"
)

// NewRoot constructs the root Cobra command. It registers the replay and
// tail commands, with flag defaults drawn from cfg.
func NewRoot(cfg config.Config, logger logpkg.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "rewind",
		Short: "Replay and backtrack over line sources",
		Long:  "rewind records a single-pass source into an in-memory history and replays it on demand: backtrack, walk back, forget, drain.",
	}
	root.AddCommand(newReplayCommand(logger))
	root.AddCommand(newTailCommand(cfg, logger))
	return root
}
