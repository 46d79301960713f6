// Package flashromtool adapts an external flashrom(8)-style programmer
// binary to the device.Device interface. The tool only speaks files, so
// every read and write round-trips through a temporary image file, and
// partial writes are described to it with a generated layout file:
//
//	0x00000000:0x00000FFF ro
//	0x00001000:0x0000FFFF rw
//
// passed as "-l <layout> -i ro -i rw -w <image>".
package flashromtool

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/joshuapare/flashkit/flash"
	"github.com/joshuapare/flashkit/flash/device"
)

// DefaultToolPath is where flashrom usually lives on target systems.
const DefaultToolPath = "/usr/sbin/flashrom"

// Runner executes a command and returns its combined output. The default
// runner shells out; tests substitute a fake.
type Runner interface {
	Run(name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// Option configures a Tool.
type Option func(*Tool)

// WithRunner substitutes the command runner. Tests use this to avoid
// invoking a real programmer.
func WithRunner(r Runner) Option {
	return func(t *Tool) { t.runner = r }
}

// WithToolPath points at a non-default programmer binary.
func WithToolPath(path string) Option {
	return func(t *Tool) { t.path = path }
}

// WithTargets supplies the shell commands that steer the bus toward each
// named target (for example BBS register pokes selecting BIOS vs EC flash).
// An empty command string means the target needs no steering.
func WithTargets(targets map[string]string) Option {
	return func(t *Tool) { t.targets = targets }
}

// WithTempDir places the temporary image and layout files under dir instead
// of the system default.
func WithTempDir(dir string) Option {
	return func(t *Tool) { t.tmpDir = dir }
}

// Tool drives the external programmer. It implements device.Device.
type Tool struct {
	path    string
	runner  Runner
	targets map[string]string
	tmpDir  string
}

// New creates a Tool with the given options.
func New(opts ...Option) *Tool {
	t := &Tool{
		path:   DefaultToolPath,
		runner: execRunner{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Size implements device.Device by asking the tool for the chip size. The
// size is the last line of output, a decimal byte count.
func (t *Tool) Size() (int, error) {
	out, err := t.runner.Run(t.path, "--get-size")
	if err != nil {
		return 0, fmt.Errorf("flashromtool: get size: %w", err)
	}
	lines := strings.Fields(strings.TrimSpace(string(out)))
	if len(lines) == 0 {
		return 0, fmt.Errorf("flashromtool: get size: empty output")
	}
	size, err := strconv.Atoi(lines[len(lines)-1])
	if err != nil {
		return 0, fmt.Errorf("flashromtool: get size output %q: %w", lines[len(lines)-1], err)
	}
	return size, nil
}

// SelectTarget implements device.Device by running the target's steering
// command through the shell.
func (t *Tool) SelectTarget(name string) error {
	cmd, ok := t.targets[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, device.ErrUnknownTarget)
	}
	if cmd == "" {
		return nil
	}
	if out, err := t.runner.Run("/bin/sh", "-c", cmd); err != nil {
		return fmt.Errorf("flashromtool: select %q: %w (output: %s)", name, err, out)
	}
	return nil
}

// ReadWhole implements device.Device.
func (t *Tool) ReadWhole() (flash.Image, error) {
	tmp, cleanup, err := t.tempFile("rd_")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if out, err := t.runner.Run(t.path, "-r", tmp); err != nil {
		return nil, fmt.Errorf("flashromtool: read: %w (output: %s)", err, out)
	}
	data, err := os.ReadFile(tmp)
	if err != nil {
		return nil, fmt.Errorf("flashromtool: read back temp image: %w", err)
	}
	return flash.Image(data), nil
}

// WritePartial implements device.Device. With sections given, the layout is
// serialized to a temp file and each section passed as an -i flag; with no
// sections and no layout the whole image is written.
func (t *Tool) WritePartial(img flash.Image, l flash.Layout, sections []string) error {
	imgFile, cleanupImg, err := t.tempFile("wr_")
	if err != nil {
		return err
	}
	defer cleanupImg()
	if err := os.WriteFile(imgFile, img, 0o600); err != nil {
		return fmt.Errorf("flashromtool: stage image: %w", err)
	}

	args := []string{}
	if len(sections) > 0 {
		layoutFile, cleanupLayout, err := t.tempFile("lay")
		if err != nil {
			return err
		}
		defer cleanupLayout()
		if err := os.WriteFile(layoutFile, []byte(LayoutFile(l)), 0o600); err != nil {
			return fmt.Errorf("flashromtool: stage layout: %w", err)
		}
		args = append(args, "-l", layoutFile)
		for _, name := range sections {
			if _, ok := l[name]; !ok {
				return fmt.Errorf("section %q: %w", name, flash.ErrUnknownSection)
			}
			args = append(args, "-i", name)
		}
	} else if len(l) > 0 {
		return fmt.Errorf("flashromtool: whole-image write does not take a layout")
	}
	args = append(args, "-w", imgFile)

	if out, err := t.runner.Run(t.path, args...); err != nil {
		return fmt.Errorf("flashromtool: write: %w (output: %s)", err, out)
	}
	return nil
}

// EnableWriteProtect turns on hardware write protection over the named
// section's range. The part rejects all further writes to that range until
// protection is lifted out of band.
func (t *Tool) EnableWriteProtect(l flash.Layout, section string) error {
	r, ok := l[section]
	if !ok {
		return fmt.Errorf("section %q: %w", section, flash.ErrUnknownSection)
	}
	rangeArgs := []string{
		"--wp-range",
		fmt.Sprintf("0x%06X", r.Start),
		fmt.Sprintf("0x%06X", r.Len()),
	}
	if out, err := t.runner.Run(t.path, rangeArgs...); err != nil {
		return fmt.Errorf("flashromtool: wp-range: %w (output: %s)", err, out)
	}
	if out, err := t.runner.Run(t.path, "--wp-enable"); err != nil {
		return fmt.Errorf("flashromtool: wp-enable: %w (output: %s)", err, out)
	}
	return nil
}

// LayoutFile renders a layout in the tool's file format, one
// "0xSTART:0xEND name" line per section, sorted by start offset.
func LayoutFile(l flash.Layout) string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return l[names[i]].Start < l[names[j]].Start
	})

	var b strings.Builder
	for _, name := range names {
		r := l[name]
		fmt.Fprintf(&b, "0x%08X:0x%08X %s\n", r.Start, r.End, name)
	}
	return b.String()
}

// tempFile creates an empty temp file and returns its path and a cleanup
// func removing it.
func (t *Tool) tempFile(prefix string) (string, func(), error) {
	f, err := os.CreateTemp(t.tmpDir, prefix+"*")
	if err != nil {
		return "", nil, fmt.Errorf("flashromtool: temp file: %w", err)
	}
	path := f.Name()
	f.Close()
	return path, func() { os.Remove(filepath.Clean(path)) }, nil
}
