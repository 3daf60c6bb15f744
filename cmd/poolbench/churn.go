package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/tyrannosaur/keypool/pool"
)

var (
	churnOps   int
	churnSeed  int64
	churnImpl  string
	churnStart uint64
	churnBias  float64
)

func init() {
	cmd := newChurnCmd()
	cmd.Flags().IntVarP(&churnOps, "ops", "n", 100000, "Number of operations to run")
	cmd.Flags().Int64Var(&churnSeed, "seed", 1, "Random seed for the workload")
	cmd.Flags().StringVar(&churnImpl, "impl", "slice", "Allocator implementation: slice or btree")
	cmd.Flags().Uint64Var(&churnStart, "start", 0, "Lowest issuable key")
	cmd.Flags().
		Float64Var(&churnBias, "bias", 0.6, "Probability that an operation is an allocate")
	rootCmd.AddCommand(cmd)
}

func newChurnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "churn",
		Short: "Run a random allocate/release workload",
		Long: `The churn command allocates and releases keys at random and reports
how the free list behaved: how many keys were reused versus minted, how
often spans merged, and how fragmented the pool got.

Example:
  poolbench churn -n 1000000
  poolbench churn --impl btree --bias 0.5 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChurn()
		},
	}
}

type churnReport struct {
	Impl    string     `json:"impl"`
	Ops     int        `json:"ops"`
	Held    int        `json:"held"`
	Spans   int        `json:"spans"`
	Elapsed string     `json:"elapsed"`
	Stats   pool.Stats `json:"stats"`
}

func newAllocator(impl string, start uint64) (pool.Allocator, error) {
	switch impl {
	case "slice":
		return pool.New(start), nil
	case "btree":
		return pool.NewTree(start), nil
	}
	return nil, fmt.Errorf("unknown allocator implementation %q (want slice or btree)", impl)
}

func runChurn() error {
	p, err := newAllocator(churnImpl, churnStart)
	if err != nil {
		return err
	}
	defer p.Close()

	rng := rand.New(rand.NewSource(churnSeed))
	held := make([]uint64, 0, 4096)

	begin := time.Now()
	for range churnOps {
		if len(held) == 0 || rng.Float64() < churnBias {
			key, allocErr := p.Allocate()
			if allocErr != nil {
				return allocErr
			}
			held = append(held, key)
			continue
		}
		i := rng.Intn(len(held))
		if relErr := p.Release(held[i]); relErr != nil {
			return relErr
		}
		held[i] = held[len(held)-1]
		held = held[:len(held)-1]
	}
	elapsed := time.Since(begin)

	report := churnReport{
		Impl:    churnImpl,
		Ops:     churnOps,
		Held:    len(held),
		Spans:   p.Spans(),
		Elapsed: elapsed.String(),
		Stats:   p.Stats(),
	}

	if jsonOut {
		return printJSON(report)
	}

	st := report.Stats
	printInfo("churn: %d ops in %s (%s allocator)\n", report.Ops, report.Elapsed, report.Impl)
	printInfo("  held keys:  %d\n", report.Held)
	printInfo("  free spans: %d (peak %d)\n", report.Spans, st.PeakSpans)
	printInfo("  allocate:   %d calls (%d reused, %d minted)\n", st.AllocCalls, st.Reused, st.Minted)
	printInfo("  release:    %d calls (%d merged forward, %d merged backward)\n",
		st.ReleaseCalls, st.MergesNext, st.MergesPrev)
	return nil
}
