// Package catalog describes the instruments available to playback: a
// name and the set of notes each one can produce. The built-in catalog
// matches the bundled sound set; users can swap it for a TOML file.
package catalog

import (
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
)

// Catalog maps instrument names to the notes they provide.
type Catalog struct {
	instruments map[string][]string
}

// Builtin returns the default catalog shipped with the player.
func Builtin() *Catalog {
	return &Catalog{instruments: map[string][]string{
		"piano":  {"C1", "C2", "C3", "C4", "C5", "C6", "C7"},
		"synth":  {"Kick", "Snare", "HiHat", "Crash", "Tom"},
		"guitar": {"E2", "A2", "D3", "G3", "B3", "E4"},
	}}
}

type catalogFile struct {
	Instruments map[string][]string `toml:"instruments"`
}

// LoadFile reads a catalog from a TOML file of the form:
//
//	[instruments]
//	piano = ["C3", "C4", "C5"]
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes TOML catalog data.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(f.Instruments) == 0 {
		return nil, fmt.Errorf("catalog defines no instruments")
	}
	return &Catalog{instruments: f.Instruments}, nil
}

// Instruments returns the instrument names in sorted order.
func (c *Catalog) Instruments() []string {
	names := make([]string, 0, len(c.instruments))
	for name := range c.instruments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Notes returns the notes an instrument provides, or nil if unknown.
func (c *Catalog) Notes(instrument string) []string {
	return c.instruments[instrument]
}

// Has reports whether the instrument exists in the catalog.
func (c *Catalog) Has(instrument string) bool {
	_, ok := c.instruments[instrument]
	return ok
}

// HasNote reports whether the instrument provides the note.
func (c *Catalog) HasNote(instrument, note string) bool {
	for _, n := range c.instruments[instrument] {
		if n == note {
			return true
		}
	}
	return false
}
