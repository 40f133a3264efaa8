package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/gc"
	"github.com/joshuapare/heapkit/heap/typeinfo"
	"github.com/joshuapare/heapkit/internal/buf"
)

var dumpLatin1 bool

func init() {
	cmd := newDumpCmd()
	cmd.Flags().BoolVar(&dumpLatin1, "latin1", false, "Decode string payloads as Latin-1 instead of UTF-8")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Build a small demo heap and dump every tracked object",
		Long: `The dump command allocates a small graph of typed objects - named nodes
with string payloads and links - and walks the collector's object list,
printing each object's ref, type, size, and decoded fields.

Example:
  memctl dump
  memctl dump --latin1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump()
		},
	}
}

func runDump() error {
	reg := typeinfo.NewRegistry()
	named := &typeinfo.Type{Name: "Named", Size: 16}
	named.Fields = []typeinfo.Field{
		typeinfo.Primitive("id", 0, 8),
		typeinfo.String("name", 8),
		typeinfo.Pointer("next", 12, named),
	}
	reg.Register(named)

	c := gc.New(reg, &gc.Config{Logger: logger()})
	defer c.Close()

	var next heap.Ref
	for i, name := range []string{"tail", "middle", "head"} {
		str, err := c.Alloc(uint32(len(name) + 1))
		if err != nil {
			return err
		}
		copy(c.Load(str), name)

		ref, err := c.AllocTypedZero(named.Size, named)
		if err != nil {
			return err
		}
		data := c.Load(ref)
		buf.PutU64LE(data[0:], uint64(i))
		buf.PutU32LE(data[8:], str)
		buf.PutU32LE(data[12:], next)
		next = ref
	}
	c.AddRoot(next)

	c.Each(func(info gc.ObjectInfo) bool {
		fmt.Println(formatObject(c, info))
		return true
	})
	return nil
}

// formatObject renders one object line: ref, type, size, and fields for
// typed objects.
func formatObject(c *gc.Collector, info gc.ObjectInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%#08x %6d B", info.Ref, info.Size)
	if info.Type == nil {
		b.WriteString("  (untyped)")
		return b.String()
	}
	fmt.Fprintf(&b, "  %s {", info.Type.Name)
	data := c.Load(info.Ref)
	for i := range info.Type.Fields {
		f := &info.Type.Fields[i]
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", f.Name, formatField(c, f, data))
	}
	b.WriteString("}")
	return b.String()
}

// formatField renders one field value from an object payload.
func formatField(c *gc.Collector, f *typeinfo.Field, data []byte) string {
	slot, ok := buf.Slice(data, int(f.Offset), int(f.Size))
	if !ok {
		return "?"
	}
	switch f.Kind {
	case typeinfo.KindPrimitive:
		if f.Size == 8 {
			return fmt.Sprintf("%d", buf.U64LE(slot))
		}
		return fmt.Sprintf("%d", buf.U32LE(slot))
	case typeinfo.KindPointer, typeinfo.KindArray:
		ref := buf.U32LE(slot)
		if ref == heap.NilRef {
			return "nil"
		}
		return fmt.Sprintf("%#08x", ref)
	case typeinfo.KindString:
		ref := buf.U32LE(slot)
		if ref == heap.NilRef {
			return "nil"
		}
		return fmt.Sprintf("%q", decodeString(c.Load(ref)))
	case typeinfo.KindEmbedded:
		return "{...}"
	default:
		return "?"
	}
}

// decodeString renders a string backing buffer, stopping at the first NUL.
// Payloads are UTF-8 by default; --latin1 decodes legacy single-byte text
// instead.
func decodeString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	if dumpLatin1 {
		if s, err := charmap.ISO8859_1.NewDecoder().Bytes(b); err == nil {
			return string(s)
		}
	}
	return string(b)
}
