package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/heap/gc"
	"github.com/joshuapare/heapkit/heap/typeinfo"
	"github.com/joshuapare/heapkit/internal/buf"
)

var (
	statsObjects int
	statsListLen int
)

func init() {
	cmd := newStatsCmd()
	cmd.Flags().IntVar(&statsObjects, "objects", 10000, "Number of list heads to allocate")
	cmd.Flags().IntVar(&statsListLen, "list-len", 8, "Nodes per list")
	rootCmd.AddCommand(cmd)
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Run a tracing-collector workload and print statistics",
		Long: `The stats command allocates linked lists of typed nodes, roots half of
them, collects, and prints the resulting collector statistics.

Example:
  memctl stats
  memctl stats --objects 100000 --list-len 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats()
		},
	}
}

// nodeType registers the workload's list node shape: 8 bytes of payload
// value followed by a next ref.
func nodeType(reg *typeinfo.Registry) *typeinfo.Type {
	node := &typeinfo.Type{Name: "Node", Size: 12}
	node.Fields = []typeinfo.Field{
		typeinfo.Primitive("value", 0, 8),
		typeinfo.Pointer("next", 8, node),
	}
	reg.Register(node)
	return node
}

func runStats() error {
	reg := typeinfo.NewRegistry()
	node := nodeType(reg)

	c := gc.New(reg, &gc.Config{Logger: logger()})
	defer c.Close()

	for i := 0; i < statsObjects; i++ {
		head, err := allocList(c, node, statsListLen, uint64(i))
		if err != nil {
			return err
		}
		// Root every other list; the rest is garbage for the collector.
		if i%2 == 0 {
			c.AddRoot(head)
		}
	}

	freed := c.CollectForce()
	s := c.Stats()

	p := message.NewPrinter(language.English)
	p.Printf("freed objects:    %d\n", freed)
	p.Printf("live objects:     %d\n", s.Objects)
	p.Printf("bytes allocated:  %d\n", s.BytesAllocated)
	p.Printf("span bytes:       %d\n", s.HeapBytes)
	p.Printf("next threshold:   %d\n", s.NextThreshold)
	p.Printf("pointer slots:    %d\n", s.PointerSlots)
	for i, used := range s.PoolUsed {
		if used > 0 {
			p.Printf("pool %4d B:      %d bytes carved\n", alloc.PoolSizes[i], used)
		}
	}
	return nil
}

// allocList builds a length-n singly linked list of typed nodes and returns
// the head ref.
func allocList(c *gc.Collector, node *typeinfo.Type, n int, seed uint64) (heap.Ref, error) {
	var next heap.Ref
	for i := 0; i < n; i++ {
		ref, err := c.AllocTypedZero(node.Size, node)
		if err != nil {
			return heap.NilRef, err
		}
		data := c.Load(ref)
		buf.PutU64LE(data[0:], seed+uint64(i))
		buf.PutU32LE(data[8:], next)
		next = ref
	}
	return next, nil
}
