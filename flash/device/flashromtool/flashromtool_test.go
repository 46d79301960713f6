package flashromtool

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/flashkit/flash"
	"github.com/joshuapare/flashkit/flash/device"
)

// fakeRunner records invocations and plays back canned behavior.
type fakeRunner struct {
	calls  [][]string
	output []byte
	err    error

	// onRead, when set, fills the -r target file so ReadWhole has bytes to
	// pick up.
	onRead []byte
	// checkWrite, when set, inspects the staged files of a -w invocation.
	checkWrite func(t *testing.T, args []string)
	t          *testing.T
}

func (f *fakeRunner) Run(name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.err != nil {
		return f.output, f.err
	}
	for i, a := range args {
		if a == "-r" && f.onRead != nil {
			if err := os.WriteFile(args[i+1], f.onRead, 0o600); err != nil {
				return nil, err
			}
		}
		if a == "-w" && f.checkWrite != nil {
			f.checkWrite(f.t, args)
		}
	}
	return f.output, nil
}

var wpLayout = flash.Layout{
	"ro": {Start: 0x0, End: 0xFFF},
	"rw": {Start: 0x1000, End: 0x1FFF},
}

func Test_Size_ParsesLastLine(t *testing.T) {
	r := &fakeRunner{output: []byte("flashrom v1.2\n8388608\n")}
	tool := New(WithRunner(r), WithToolPath("/opt/flashrom"))

	n, err := tool.Size()
	require.NoError(t, err)
	assert.Equal(t, 8388608, n)
	assert.Equal(t, []string{"/opt/flashrom", "--get-size"}, r.calls[0])
}

func Test_Size_Garbage(t *testing.T) {
	tool := New(WithRunner(&fakeRunner{output: []byte("no size here")}))
	_, err := tool.Size()
	assert.Error(t, err)
}

func Test_SelectTarget_RunsShellCommand(t *testing.T) {
	r := &fakeRunner{}
	tool := New(WithRunner(r), WithTargets(map[string]string{
		"bios": "iotools mmio_write32 0xfed1f410 0460",
		"ec":   "",
	}))

	require.NoError(t, tool.SelectTarget("bios"))
	require.Len(t, r.calls, 1)
	assert.Equal(t, "/bin/sh", r.calls[0][0])
	assert.Contains(t, r.calls[0][2], "iotools")

	// Empty command: nothing to run.
	require.NoError(t, tool.SelectTarget("ec"))
	assert.Len(t, r.calls, 1)

	err := tool.SelectTarget("nvram")
	assert.ErrorIs(t, err, device.ErrUnknownTarget)
}

func Test_ReadWhole(t *testing.T) {
	r := &fakeRunner{onRead: []byte{1, 2, 3, 4}}
	tool := New(WithRunner(r), WithTempDir(t.TempDir()))

	img, err := tool.ReadWhole()
	require.NoError(t, err)
	assert.EqualValues(t, []byte{1, 2, 3, 4}, []byte(img))
}

func Test_ReadWhole_ToolFailure(t *testing.T) {
	r := &fakeRunner{err: errors.New("chip not found")}
	tool := New(WithRunner(r), WithTempDir(t.TempDir()))
	_, err := tool.ReadWhole()
	assert.Error(t, err)
}

func Test_WritePartial_SectionFlags(t *testing.T) {
	r := &fakeRunner{t: t}
	r.checkWrite = func(t *testing.T, args []string) {
		joined := strings.Join(args, " ")
		assert.Contains(t, joined, "-l ")
		assert.Contains(t, joined, "-i rw")
		assert.NotContains(t, joined, "-i ro")
	}
	tool := New(WithRunner(r), WithTempDir(t.TempDir()))

	img := make(flash.Image, 0x2000)
	require.NoError(t, tool.WritePartial(img, wpLayout, []string{"rw"}))
	require.Len(t, r.calls, 1)
}

func Test_WritePartial_UnknownSection(t *testing.T) {
	tool := New(WithRunner(&fakeRunner{}), WithTempDir(t.TempDir()))
	err := tool.WritePartial(make(flash.Image, 0x2000), wpLayout, []string{"zz"})
	assert.ErrorIs(t, err, flash.ErrUnknownSection)
}

func Test_WritePartial_WholeImageRejectsLayout(t *testing.T) {
	tool := New(WithRunner(&fakeRunner{}), WithTempDir(t.TempDir()))
	err := tool.WritePartial(make(flash.Image, 0x2000), wpLayout, nil)
	assert.Error(t, err)
}

func Test_WritePartial_WholeImage(t *testing.T) {
	r := &fakeRunner{t: t}
	tool := New(WithRunner(r), WithTempDir(t.TempDir()))

	require.NoError(t, tool.WritePartial(make(flash.Image, 16), nil, nil))
	joined := strings.Join(r.calls[0], " ")
	assert.Contains(t, joined, "-w ")
	assert.NotContains(t, joined, "-l ")
}

func Test_EnableWriteProtect(t *testing.T) {
	r := &fakeRunner{}
	tool := New(WithRunner(r))

	require.NoError(t, tool.EnableWriteProtect(wpLayout, "ro"))
	require.Len(t, r.calls, 2)
	assert.Equal(t, []string{DefaultToolPath, "--wp-range", "0x000000", "0x001000"}, r.calls[0])
	assert.Equal(t, []string{DefaultToolPath, "--wp-enable"}, r.calls[1])
}

func Test_LayoutFile_SortedAndFormatted(t *testing.T) {
	got := LayoutFile(wpLayout)
	want := "0x00000000:0x00000FFF ro\n0x00001000:0x00001FFF rw\n"
	assert.Equal(t, want, got)
}
