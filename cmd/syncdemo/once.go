package main

import (
	"fmt"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/NetPo4ki/go-syncx/syncx"
)

func newOnceCmd(root *rootArgs) *cobra.Command {
	var callers int

	cmd := &cobra.Command{
		Use:   "once",
		Short: "Race callers through a Once and count executions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				once  syncx.Once
				runs  atomic.Int32
				wg    syncx.WaitGroup
				ready syncx.WaitGroup
			)
			ready.Add(1)
			for range callers {
				wg.Go(func() {
					ready.Wait()
					once.Do(func() {
						runs.Add(1)
						root.logger.Info("initialized")
					})
				})
			}
			ready.Done()
			wg.Wait()

			fmt.Fprintf(cmd.OutOrStdout(), "%d callers, action ran %d time(s)\n", callers, runs.Load())
			return nil
		},
	}

	cmd.Flags().IntVar(&callers, "callers", 8, "number of concurrent callers")

	return cmd
}
