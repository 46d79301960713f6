package flash

import (
	"bytes"
	"errors"
	"testing"
)

func testImage(n int) Image {
	img := make(Image, n)
	for i := range img {
		img[i] = byte(i)
	}
	return img
}

var testLayout = Layout{
	"a": {Start: 0, End: 3},
	"b": {Start: 4, End: 7},
	"c": {Start: 8, End: 15},
}

func Test_GetSection(t *testing.T) {
	img := testImage(16)

	got, err := GetSection(img, testLayout, "b")
	if err != nil {
		t.Fatalf("GetSection: %v", err)
	}
	if !bytes.Equal(got, []byte{4, 5, 6, 7}) {
		t.Errorf("section b: got %v", got)
	}

	// Returned slice is a copy, not a view.
	got[0] = 0xFF
	if img[4] != 4 {
		t.Error("GetSection returned a view into the image")
	}
}

func Test_GetSection_UnknownName(t *testing.T) {
	_, err := GetSection(testImage(16), testLayout, "nope")
	if !errors.Is(err, ErrUnknownSection) {
		t.Errorf("want ErrUnknownSection, got %v", err)
	}
}

func Test_GetSection_RangeBeyondImage(t *testing.T) {
	_, err := GetSection(testImage(8), testLayout, "c")
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("want ErrInvalidRange, got %v", err)
	}
}

func Test_GetSection_DegenerateRange(t *testing.T) {
	l := Layout{"x": {Start: 5, End: 5}}
	_, err := GetSection(testImage(16), l, "x")
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("want ErrInvalidRange for start==end, got %v", err)
	}
}

func Test_PutSection_RoundTrip(t *testing.T) {
	img := testImage(16)
	data := []byte{9, 9, 9, 9}

	out, err := PutSection(img, testLayout, "a", data)
	if err != nil {
		t.Fatalf("PutSection: %v", err)
	}
	back, err := GetSection(out, testLayout, "a")
	if err != nil {
		t.Fatalf("GetSection: %v", err)
	}
	if !bytes.Equal(back, data) {
		t.Errorf("round trip: got %v", back)
	}
}

func Test_PutSection_LeavesRestUntouched(t *testing.T) {
	img := testImage(16)
	out, err := PutSection(img, testLayout, "b", []byte{0, 0, 0, 0})
	if err != nil {
		t.Fatalf("PutSection: %v", err)
	}
	for i := 0; i < 16; i++ {
		if i >= 4 && i <= 7 {
			continue
		}
		if out[i] != img[i] {
			t.Errorf("byte %d changed: %d -> %d", i, img[i], out[i])
		}
	}
	// Source image must be intact.
	if !img.Equal(testImage(16)) {
		t.Error("PutSection mutated the source image")
	}
}

func Test_PutSection_LengthMismatch(t *testing.T) {
	_, err := PutSection(testImage(16), testLayout, "a", []byte{1, 2, 3})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("want ErrLengthMismatch, got %v", err)
	}
}

func Test_Layout_Names_StartOrder(t *testing.T) {
	names := testLayout.Names()
	want := []string{"a", "b", "c"}
	if len(names) != len(want) {
		t.Fatalf("names: got %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d]: got %q, want %q", i, names[i], want[i])
		}
	}
}
