package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/NetPo4ki/go-syncx/syncx"
)

func newBarrierCmd(root *rootArgs) *cobra.Command {
	var (
		workers int
		work    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "barrier",
		Short: "Block on a WaitGroup until every worker calls Done",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if workers < 0 {
				return fmt.Errorf("workers must not be negative, got %d", workers)
			}

			var wg syncx.WaitGroup
			wg.Add(workers)

			released := make(chan time.Time, 1)
			go func() {
				wg.Wait()
				released <- time.Now()
			}()

			start := time.Now()
			for i := range workers {
				go func() {
					defer wg.Done()
					time.Sleep(time.Duration(i+1) * work)
					root.logger.Debug("worker done", "worker", i)
				}()
			}

			at := <-released
			fmt.Fprintf(cmd.OutOrStdout(), "%d workers joined after %s\n", workers, at.Sub(start))
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 3, "number of workers")
	cmd.Flags().DurationVar(&work, "work", 10*time.Millisecond, "per-worker work step")

	return cmd
}
