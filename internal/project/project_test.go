package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coatpath/internal/shape"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.coatproj")

	proj := New("conformal pass A")
	proj.Shapes = []shape.Shape{
		{
			ID:   "pcb-area",
			Kind: shape.Rectangle, Width: 120, Height: 80,
			CoatingType: shape.CoatFill,
			FillPattern: shape.PatternAuto,
		},
		{
			ID:   "connector-keepout",
			Kind: shape.Circle, X: 20, Y: 20, Radius: 6,
			CoatingType: shape.CoatMasking,
		},
	}
	require.NoError(t, proj.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "conformal pass A", loaded.Name)
	require.Len(t, loaded.Shapes, 2)
	assert.Equal(t, proj.Shapes[0].ID, loaded.Shapes[0].ID)
	assert.Equal(t, proj.Shapes[1].Radius, loaded.Shapes[1].Radius)
	assert.False(t, loaded.Modified.IsZero())
}

func TestLoad_RejectsInvalidShapeTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.coatproj")
	data := []byte(`{"version":1,"name":"x","shapes":[{"kind":"hexagon","coating_type":"fill"}]}`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	_, err := Load(path)
	require.Error(t, err)
	var kindErr *shape.UnsupportedKindError
	assert.ErrorAs(t, err, &kindErr, "contract violations surface at load time")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.coatproj"))
	assert.Error(t, err)
}
