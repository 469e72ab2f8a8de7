package export

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sealcase/sealcase/pkg/kernel"
)

// quadMesh returns two triangles forming a unit square in the XY plane,
// with +Z face normals.
func quadMesh() *kernel.Mesh {
	return &kernel.Mesh{
		Vertices: []float32{
			0, 0, 0, 1, 0, 0, 1, 1, 0,
			0, 0, 0, 1, 1, 0, 0, 1, 0,
		},
		Normals: []float32{
			0, 0, 1, 0, 0, 1, 0, 0, 1,
			0, 0, 1, 0, 0, 1, 0, 0, 1,
		},
		Indices: []uint32{0, 1, 2, 3, 4, 5},
		Name:    "quad",
	}
}

func TestWriteSTLLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSTL(bufio.NewWriter(&buf), quadMesh()))

	data := buf.Bytes()
	require.Len(t, data, 84+2*50, "header plus two 50-byte triangle records")

	count := binary.LittleEndian.Uint32(data[80:84])
	require.Equal(t, uint32(2), count)

	// First triangle record: normal then three vertices.
	nz := math.Float32frombits(binary.LittleEndian.Uint32(data[84+8 : 84+12]))
	require.Equal(t, float32(1), nz)
	v1x := math.Float32frombits(binary.LittleEndian.Uint32(data[84+12 : 84+16]))
	require.Equal(t, float32(0), v1x)
	v2x := math.Float32frombits(binary.LittleEndian.Uint32(data[84+24 : 84+28]))
	require.Equal(t, float32(1), v2x)

	// Attribute byte count is zero.
	require.Equal(t, byte(0), data[84+48])
	require.Equal(t, byte(0), data[84+49])
}

func TestWriteSTLRejectsEmptyMesh(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, WriteSTL(bufio.NewWriter(&buf), &kernel.Mesh{}))
	require.Error(t, WriteSTL(bufio.NewWriter(&buf), nil))
}

func TestWriteSTLRejectsNaN(t *testing.T) {
	m := quadMesh()
	m.Vertices[0] = float32(math.NaN())
	var buf bytes.Buffer
	err := WriteSTL(bufio.NewWriter(&buf), m)
	require.Error(t, err)
	require.Contains(t, err.Error(), "NaN")
}

func TestSaveSTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "part.stl")
	require.NoError(t, SaveSTL(path, quadMesh()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, data, 84+2*50)
	require.Equal(t, uint32(2), binary.LittleEndian.Uint32(data[80:84]))
}
