package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/NetPo4ki/go-syncx/chanx"
	"github.com/NetPo4ki/go-syncx/observe/logobs"
	"github.com/NetPo4ki/go-syncx/syncx"
)

var (
	errItemsMismatch = errors.New("received items do not match sent items")
	errInvalidCounts = errors.New("producers and consumers must be positive, items non-negative")
)

type pipelineArgs struct {
	capacity  int
	producers int
	consumers int
	items     int
}

func newPipelineCmd(root *rootArgs) *cobra.Command {
	args := &pipelineArgs{}

	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Run producers and consumers over one bounded channel",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := runPipeline(cmd.Context(), root, args)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "moved %d items (sum %d) in %s\n", res.count, res.sum, res.elapsed)
			return nil
		},
	}

	cmd.Flags().IntVar(&args.capacity, "capacity", chanx.DefaultCapacity, "channel capacity, 0 for rendezvous")
	cmd.Flags().IntVar(&args.producers, "producers", 2, "number of producers")
	cmd.Flags().IntVar(&args.consumers, "consumers", 2, "number of consumers")
	cmd.Flags().IntVar(&args.items, "items", 1000, "items per producer")

	return cmd
}

type pipelineResult struct {
	count   int
	sum     int
	elapsed time.Duration
}

func runPipeline(ctx context.Context, root *rootArgs, args *pipelineArgs) (pipelineResult, error) {
	if args.producers <= 0 || args.consumers <= 0 || args.items < 0 {
		return pipelineResult{}, errInvalidCounts
	}

	ch := chanx.New[int](
		chanx.WithCapacity(args.capacity),
		chanx.WithName("pipeline"),
		chanx.WithObserver(multiObserver{root.metrics, logobs.New(root.logger)}),
	)
	total := args.producers * args.items

	var (
		mu    syncx.Mutex
		count int
		sum   int
		start = time.Now()
	)

	g, _ := errgroup.WithContext(ctx)
	for p := range args.producers {
		g.Go(func() error {
			for i := range args.items {
				ch.Send(p*args.items + i)
			}
			root.logger.Debug("producer done", "producer", p)
			return nil
		})
	}

	// Consumers split the known total, since the channel cannot be closed.
	for c := range args.consumers {
		share := total / args.consumers
		if c < total%args.consumers {
			share++
		}
		g.Go(func() error {
			localSum := 0
			for range share {
				localSum += ch.Receive()
			}
			mu.Lock()
			count += share
			sum += localSum
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return pipelineResult{}, err
	}
	if want := total * (total - 1) / 2; sum != want || count != total {
		return pipelineResult{}, fmt.Errorf("%w: got %d items summing to %d, want %d summing to %d",
			errItemsMismatch, count, sum, total, want)
	}
	return pipelineResult{count: count, sum: sum, elapsed: time.Since(start)}, nil
}

// multiObserver fans channel events out to several observers.
type multiObserver []chanx.Observer

func (m multiObserver) SendBlocked(name string) {
	for _, o := range m {
		o.SendBlocked(name)
	}
}

func (m multiObserver) ReceiveBlocked(name string) {
	for _, o := range m {
		o.ReceiveBlocked(name)
	}
}

func (m multiObserver) Sent(name string, wait time.Duration) {
	for _, o := range m {
		o.Sent(name, wait)
	}
}

func (m multiObserver) Received(name string, wait time.Duration) {
	for _, o := range m {
		o.Received(name, wait)
	}
}
