package buf

import "testing"

func TestEndianHelpers(t *testing.T) {
	data := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}

	if got := U32LE(data); got != 0x67452301 {
		t.Fatalf("U32LE = 0x%x, want 0x67452301", got)
	}
	if got := U64LE(data); got != 0xefcdab8967452301 {
		t.Fatalf("U64LE = 0x%x, want 0xefcdab8967452301", got)
	}

	short := []byte{0xAA}
	if U32LE(short) != 0 || U64LE(short) != 0 {
		t.Fatalf("short reads should return 0")
	}
}

func TestEndianStores(t *testing.T) {
	b := make([]byte, 8)
	PutU32LE(b, 0x67452301)
	if got := U32LE(b); got != 0x67452301 {
		t.Fatalf("PutU32LE round trip = 0x%x", got)
	}
	PutU64LE(b, 0xefcdab8967452301)
	if got := U64LE(b); got != 0xefcdab8967452301 {
		t.Fatalf("PutU64LE round trip = 0x%x", got)
	}

	short := []byte{0xAA, 0xBB}
	PutU32LE(short, 1)
	PutU64LE(short, 1)
	if short[0] != 0xAA || short[1] != 0xBB {
		t.Fatalf("short stores should be no-ops, got %v", short)
	}
}
