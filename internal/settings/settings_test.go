package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coatpath/internal/shape"
)

func TestEffective_InheritsDefaults(t *testing.T) {
	c := Default()
	s := shape.Shape{Kind: shape.Rectangle, CoatingType: shape.CoatFill}

	r := Effective(&s, c)
	assert.Equal(t, c.LineSpacing, r.LineSpacing)
	assert.Equal(t, c.CoatingWidth, r.CoatingWidth)
	assert.Equal(t, c.FillPattern, r.FillPattern)
	assert.Equal(t, c.OutlineOffset, r.OutlineOffset)
	assert.Equal(t, c.OutlinePasses, r.OutlinePasses)
	assert.Equal(t, c.OutlineStart, r.OutlineStart)
}

func TestEffective_ShapeOverridesWin(t *testing.T) {
	c := Default()
	s := shape.Shape{
		Kind:          shape.Rectangle,
		CoatingType:   shape.CoatFill,
		LineSpacing:   7,
		CoatingWidth:  3,
		FillPattern:   shape.PatternConcentric,
		OutlinePasses: 4,
		OutlineStart:  shape.StartOutside,
		OutlineOffset: 2.5,
	}

	r := Effective(&s, c)
	assert.Equal(t, 7.0, r.LineSpacing)
	assert.Equal(t, 3.0, r.CoatingWidth)
	assert.Equal(t, shape.PatternConcentric, r.FillPattern)
	assert.Equal(t, 4, r.OutlinePasses)
	assert.Equal(t, shape.StartOutside, r.OutlineStart)
	assert.Equal(t, 2.5, r.OutlineOffset)
}

func TestEffective_PassesFloorAtOne(t *testing.T) {
	c := Default()
	c.OutlinePasses = -3
	s := shape.Shape{Kind: shape.Rectangle, CoatingType: shape.CoatOutline}

	r := Effective(&s, c)
	assert.Equal(t, 1, r.OutlinePasses)
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coating.toml")
	data := []byte("line_spacing = 5.5\nfill_pattern = \"concentric\"\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	c, err := LoadTOML(path)
	require.NoError(t, err)
	assert.Equal(t, 5.5, c.LineSpacing)
	assert.Equal(t, shape.PatternConcentric, c.FillPattern)
	assert.Equal(t, Default().CoatingWidth, c.CoatingWidth, "unset fields keep defaults")
}

func TestLoadTOML_Missing(t *testing.T) {
	_, err := LoadTOML(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
