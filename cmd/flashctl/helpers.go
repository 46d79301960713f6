package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/joshuapare/flashkit/flash"
	"github.com/joshuapare/flashkit/flash/device"
	"github.com/joshuapare/flashkit/flash/engine"
	"github.com/joshuapare/flashkit/flash/verify"
)

// loadEngine opens the image file as a device and initializes an engine
// over it. An empty desc relies on the embedded flash map.
func loadEngine(path, desc, skipList string) (*engine.Engine, error) {
	dev, err := device.NewFile(path)
	if err != nil {
		return nil, err
	}
	skip, err := verify.ParseSkipRegions(skipList)
	if err != nil {
		return nil, err
	}

	e := engine.New(dev, engine.WithLogger(newLogger()))
	err = e.Initialize(context.Background(), "file", engine.InitOptions{
		LayoutDesc:  desc,
		SkipRegions: skip,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize over %s: %w", path, err)
	}
	return e, nil
}

// layoutRow is the JSON shape for one section.
type layoutRow struct {
	Name  string `json:"name"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Size  int    `json:"size"`
}

// layoutRows flattens a layout into start-ordered rows.
func layoutRows(l flash.Layout) []layoutRow {
	rows := make([]layoutRow, 0, len(l))
	for _, name := range l.Names() {
		r := l[name]
		rows = append(rows, layoutRow{Name: name, Start: r.Start, End: r.End, Size: r.Len()})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Start < rows[j].Start })
	return rows
}

// printLayout renders a layout as text or JSON per the global flag.
func printLayout(l flash.Layout) error {
	if jsonOut {
		return printJSON(layoutRows(l))
	}
	for _, row := range layoutRows(l) {
		printInfo("0x%08X:0x%08X  %-20s %d bytes\n", row.Start, row.End, row.Name, row.Size)
	}
	return nil
}
