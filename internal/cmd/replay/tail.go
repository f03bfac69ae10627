package replay

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rzbill/rewind"
	"github.com/rzbill/rewind/internal/config"
	"github.com/rzbill/rewind/pkg/log"
	"github.com/rzbill/rewind/source"
)

// newTailCommand constructs the `tail` command: follow a file through a
// shared recorder, with K cloned cursors consuming the same history
// concurrently. Each worker logs what it observes; the source itself is
// pulled once per line no matter how many workers run.
func newTailCommand(cfg config.Config, logger log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Follow a file through a shared recorder with N workers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("path")
			workers, _ := cmd.Flags().GetInt("workers")
			pollMs, _ := cmd.Flags().GetInt("poll-ms")
			fromStart, _ := cmd.Flags().GetBool("from-start")
			if path == "" {
				return fmt.Errorf("--path is required")
			}
			if workers <= 0 {
				workers = 1
			}

			ctx := cmd.Context()
			src, err := source.Tail(ctx, path, source.TailOptions{
				FromStart:    fromStart,
				PollInterval: time.Duration(pollMs) * time.Millisecond,
				Logger:       logger.With(log.Component("tail")),
			})
			if err != nil {
				return err
			}

			rec := rewind.NewShared[string](src)
			root := rec.Copying()

			g, _ := errgroup.WithContext(ctx)
			for i := 0; i < workers; i++ {
				w := i
				cur := root.Clone()
				g.Go(func() error {
					wl := logger.With(log.Int("worker", w))
					for {
						p := cur.RefPoint()
						line, ok := cur.Next()
						if !ok {
							return nil
						}
						wl.Info("observed", log.Uint64("point", uint64(p)), log.Str("text", line))
					}
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			logger.Info("tail stopped", log.Int("recorded", rec.Len()))
			return nil
		},
	}
	cmd.Flags().String("path", "", "File to follow")
	cmd.Flags().Int("workers", cfg.Workers, "Concurrent cursor clones")
	cmd.Flags().Int("poll-ms", cfg.TailPollMs, "Poll fallback interval in ms")
	cmd.Flags().Bool("from-start", false, "Read the file from the beginning")
	return cmd
}
