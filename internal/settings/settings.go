// Package settings holds the process-wide coating defaults and resolves
// them against per-shape overrides.
package settings

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"coatpath/internal/shape"
)

// Coating is the process-wide default set. It is immutable for the duration
// of one computation batch.
type Coating struct {
	LineSpacing   float64            `toml:"line_spacing" json:"line_spacing"`
	CoatingWidth  float64            `toml:"coating_width" json:"coating_width"`
	FillPattern   shape.FillPattern  `toml:"fill_pattern" json:"fill_pattern"`
	OutlineOffset float64            `toml:"outline_offset" json:"outline_offset"`
	OutlinePasses int                `toml:"outline_passes" json:"outline_passes"`
	OutlineStart  shape.OutlineStart `toml:"outline_start" json:"outline_start"`
}

// Default returns the built-in process defaults.
func Default() Coating {
	return Coating{
		LineSpacing:   2.0,
		CoatingWidth:  1.0,
		FillPattern:   shape.PatternAuto,
		OutlineOffset: 1.0,
		OutlinePasses: 1,
		OutlineStart:  shape.StartCenter,
	}
}

// LoadTOML reads coating settings from a TOML file, filling unset fields
// from the built-in defaults.
func LoadTOML(path string) (Coating, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Coating{}, err
	}

	c := Default()
	if err := toml.Unmarshal(data, &c); err != nil {
		return Coating{}, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	return c, nil
}

// Resolved is the parameter set a planner works from after override
// resolution. Planners never consult Coating or the shape's raw coating
// fields again once resolved.
type Resolved struct {
	LineSpacing   float64
	CoatingWidth  float64
	FillPattern   shape.FillPattern
	OutlineOffset float64
	OutlinePasses int
	OutlineStart  shape.OutlineStart
}

// Effective resolves a shape's coating parameters against the process
// defaults. Called once per shape at the start of planning; a zero or empty
// shape field inherits the corresponding default.
func Effective(s *shape.Shape, c Coating) Resolved {
	r := Resolved{
		LineSpacing:   s.LineSpacing,
		CoatingWidth:  s.CoatingWidth,
		FillPattern:   s.FillPattern,
		OutlineOffset: s.OutlineOffset,
		OutlinePasses: s.OutlinePasses,
		OutlineStart:  s.OutlineStart,
	}
	if r.LineSpacing == 0 {
		r.LineSpacing = c.LineSpacing
	}
	if r.CoatingWidth == 0 {
		r.CoatingWidth = c.CoatingWidth
	}
	if r.FillPattern == "" {
		r.FillPattern = c.FillPattern
	}
	if r.OutlineOffset == 0 {
		r.OutlineOffset = c.OutlineOffset
	}
	if r.OutlinePasses == 0 {
		r.OutlinePasses = c.OutlinePasses
	}
	if r.OutlinePasses < 1 {
		r.OutlinePasses = 1
	}
	if r.OutlineStart == "" {
		r.OutlineStart = c.OutlineStart
	}
	return r
}
