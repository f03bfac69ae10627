package replay

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rzbill/rewind"
	"github.com/rzbill/rewind/pkg/log"
	"github.com/rzbill/rewind/source"
)

// newReplayCommand constructs the `replay` command: stream a file (or
// stdin) through a recorder, then demonstrate walkback and backtrack over
// the recorded history.
func newReplayCommand(logger log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Stream a file through a recorder, then re-emit from history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, _ := cmd.Flags().GetString("input")
			repeat, _ := cmd.Flags().GetInt("repeat")
			last, _ := cmd.Flags().GetInt("last")
			filterExpr, _ := cmd.Flags().GetString("filter")

			in, closer, err := openInput(input)
			if err != nil {
				return err
			}
			defer closer()

			lines := source.Lines(in)
			var src rewind.Source[string] = lines
			if filterExpr != "" {
				flt, err := source.NewCELFilter(filterExpr)
				if err != nil {
					return fmt.Errorf("invalid --filter: %w", err)
				}
				src = source.FilterLines(lines, flt)
			}

			rec := rewind.NewRecorder(src)
			cur := rec.Copying()
			for {
				v, ok := cur.Next()
				if !ok {
					break
				}
				fmt.Println(v)
			}
			if err := lines.Err(); err != nil {
				return fmt.Errorf("read %s: %w", input, err)
			}
			logger.Info("source exhausted", log.Int("recorded", rec.Len()))

			if last > 0 {
				wb := cur.WalkBack()
				fmt.Printf("-- last %d, newest first --\n", last)
				for i := 0; i < last; i++ {
					v, ok := wb.Next()
					if !ok {
						break
					}
					fmt.Println(v)
				}
			}

			if repeat > 0 {
				cur.StartAgain()
				fmt.Printf("-- replaying first %d --\n", repeat)
				for i := 0; i < repeat; i++ {
					v, ok := cur.Next()
					if !ok {
						break
					}
					fmt.Println(v)
				}
			}
			return nil
		},
	}
	cmd.Flags().String("input", "-", "Input file path, or - for stdin")
	cmd.Flags().Int("repeat", 0, "After the pass, re-emit the first N recorded lines")
	cmd.Flags().Int("last", 0, "After the pass, print the last N lines in reverse")
	cmd.Flags().String("filter", "", "CEL expression over {line, text, size, json, now_ms}")
	return cmd
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
