package buf

import (
	"math"
	"testing"
)

func Test_U16LE(t *testing.T) {
	if got := U16LE([]byte{0x34, 0x12}); got != 0x1234 {
		t.Errorf("U16LE: got 0x%X, want 0x1234", got)
	}
	if got := U16LE([]byte{0x34}); got != 0 {
		t.Errorf("U16LE short buffer: got %d, want 0", got)
	}
}

func Test_U32LE(t *testing.T) {
	if got := U32LE([]byte{0x78, 0x56, 0x34, 0x12}); got != 0x12345678 {
		t.Errorf("U32LE: got 0x%X, want 0x12345678", got)
	}
	if got := U32LE([]byte{1, 2}); got != 0 {
		t.Errorf("U32LE short buffer: got %d, want 0", got)
	}
}

func Test_U64LE(t *testing.T) {
	b := []byte{1, 0, 0, 0, 0, 0, 0, 0x80}
	if got := U64LE(b); got != 0x8000000000000001 {
		t.Errorf("U64LE: got 0x%X", got)
	}
}

func Test_PutU32LE_RoundTrip(t *testing.T) {
	b := make([]byte, 4)
	PutU32LE(b, 0xDEADBEEF)
	if got := U32LE(b); got != 0xDEADBEEF {
		t.Errorf("round trip: got 0x%X", got)
	}
	// Short buffer must not panic.
	PutU32LE(b[:2], 1)
}

func Test_AddOverflowSafe(t *testing.T) {
	if v, ok := AddOverflowSafe(3, 4); !ok || v != 7 {
		t.Errorf("3+4: got %d ok=%v", v, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxInt, 1); ok {
		t.Error("MaxInt+1 should overflow")
	}
	if _, ok := AddOverflowSafe(math.MinInt, -1); ok {
		t.Error("MinInt-1 should overflow")
	}
}

func Test_CString(t *testing.T) {
	if got := CString([]byte{'b', 'i', 'o', 's', 0, 0, 0}); got != "bios" {
		t.Errorf("CString: got %q", got)
	}
	if got := CString([]byte{'e', 'c'}); got != "ec" {
		t.Errorf("CString without NUL: got %q", got)
	}
}
