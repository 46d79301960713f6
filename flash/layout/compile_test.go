package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/flashkit/flash"
)

func Test_Compile_TwoPartitions(t *testing.T) {
	l, err := Compile("a=4,b=*|c=*", 16)
	require.NoError(t, err)

	want := flash.Layout{
		"a": {Start: 0, End: 3},
		"b": {Start: 4, End: 7},
		"c": {Start: 8, End: 15},
	}
	assert.Equal(t, want, l)
}

func Test_Compile_SparePositionAgnostic(t *testing.T) {
	// Spare first, fixed section after it.
	l, err := Compile("*,rw=0x4", 16)
	require.NoError(t, err)
	assert.Equal(t, flash.Layout{"rw": {Start: 12, End: 15}}, l)
}

func Test_Compile_BareNameIsSpare(t *testing.T) {
	l, err := Compile("ro|rw", 16)
	require.NoError(t, err)
	assert.Equal(t, flash.Layout{
		"ro": {Start: 0, End: 7},
		"rw": {Start: 8, End: 15},
	}, l)
}

func Test_Compile_HexAndDecimalSizes(t *testing.T) {
	l, err := Compile("hdr=0x10,key=16,body", 64)
	require.NoError(t, err)
	assert.Equal(t, flash.Layout{
		"hdr":  {Start: 0, End: 15},
		"key":  {Start: 16, End: 31},
		"body": {Start: 32, End: 63},
	}, l)
}

func Test_Compile_WhitespaceInsignificant(t *testing.T) {
	terse, err := Compile("a=4,b|c", 32)
	require.NoError(t, err)
	spaced, err := Compile(" a = 4 ,\n\tb | c ", 32)
	require.NoError(t, err)
	assert.Equal(t, terse, spaced)
}

func Test_Compile_UnnamedSectionConsumesSpace(t *testing.T) {
	l, err := Compile("a=4,*=4,b", 16)
	require.NoError(t, err)
	// '*' advances the offset but never appears in the layout.
	assert.Equal(t, flash.Layout{
		"a": {Start: 0, End: 3},
		"b": {Start: 8, End: 15},
	}, l)
}

func Test_Compile_UnnamedSpare(t *testing.T) {
	l, err := Compile("ro=4,*", 16)
	require.NoError(t, err)
	assert.Equal(t, flash.Layout{"ro": {Start: 0, End: 3}}, l)
}

func Test_Compile_TrailingComma(t *testing.T) {
	l, err := Compile("a=4,b,", 16)
	require.NoError(t, err)
	assert.Len(t, l, 2)
}

func Test_Compile_ContiguousNonOverlappingSpan(t *testing.T) {
	l, err := Compile("a=2,b=2,c|d=4,e", 32)
	require.NoError(t, err)

	// Within each 16-byte block, the declared ranges tile it exactly.
	covered := make([]int, 32)
	for _, r := range l {
		for i := r.Start; i <= r.End; i++ {
			covered[i]++
		}
	}
	for i, c := range covered {
		assert.Equalf(t, 1, c, "byte %d covered %d times", i, c)
	}
}

func Test_Compile_NoSpare(t *testing.T) {
	_, err := Compile("a=4,b=4", 16)
	assert.ErrorIs(t, err, ErrSpareCount)
}

func Test_Compile_TwoSpares(t *testing.T) {
	_, err := Compile("a,b", 16)
	assert.ErrorIs(t, err, ErrSpareCount)
}

func Test_Compile_EmptyDescription(t *testing.T) {
	_, err := Compile("", 16)
	assert.ErrorIs(t, err, ErrSpareCount)
}

func Test_Compile_Overflow(t *testing.T) {
	_, err := Compile("a=12,b=8,c", 16)
	assert.ErrorIs(t, err, ErrOverflow)
}

func Test_Compile_ZeroSpareRejected(t *testing.T) {
	// Fixed sections fill the block exactly; the spare would be empty.
	_, err := Compile("a=16,b", 16)
	assert.ErrorIs(t, err, ErrOverflow)
}

func Test_Compile_ZeroSize(t *testing.T) {
	_, err := Compile("a=0,b", 16)
	assert.ErrorIs(t, err, ErrParse)
}

func Test_Compile_UnparsableSize(t *testing.T) {
	_, err := Compile("a=xyz,b", 16)
	assert.ErrorIs(t, err, ErrParse)
}

func Test_Compile_EmptyName(t *testing.T) {
	_, err := Compile("=4,b", 16)
	assert.ErrorIs(t, err, ErrParse)
}

func Test_Compile_DuplicateName(t *testing.T) {
	_, err := Compile("x=4,*|x=4,*", 32)
	assert.ErrorIs(t, err, ErrParse)
}

func Test_Compile_IndivisibleSize(t *testing.T) {
	_, err := Compile("a|b", 15)
	assert.ErrorIs(t, err, ErrIndivisible)
}
