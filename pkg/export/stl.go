// Package export writes kernel meshes to interchange formats for
// slicers and viewers.
package export

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/chewxy/math32"

	"github.com/sealcase/sealcase/pkg/kernel"
)

// WriteSTL writes a mesh in binary STL format.
func WriteSTL(w *bufio.Writer, m *kernel.Mesh) error {
	if m == nil || m.IsEmpty() {
		return errors.New("export: empty mesh")
	}
	nt := m.TriangleCount()
	header := stlHeader{Count: uint32(nt)}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}

	var buf [50]byte
	for i := 0; i < nt; i++ {
		t := stlTriangleAt(m, i)
		if err := t.validate(); err != nil {
			return fmt.Errorf("export: triangle %d: %w", i, err)
		}
		t.put(buf[:])
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}
	return w.Flush()
}

// SaveSTL writes a mesh to a binary STL file at path.
func SaveSTL(path string, m *kernel.Mesh) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSTL(bufio.NewWriter(file), m); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// stlHeader defines the binary STL file header.
type stlHeader struct {
	_     [80]uint8 // header text, unused
	Count uint32    // number of triangles
}

// stlTriangle is the 50-byte on-disk triangle record.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
	_       uint16 // attribute byte count
}

// stlTriangleAt assembles the record for mesh triangle i. The mesh
// stores one face normal per corner; the first corner's is used.
func stlTriangleAt(m *kernel.Mesh, i int) stlTriangle {
	var t stlTriangle
	t.Vertex1, t.Vertex2, t.Vertex3 = m.Triangle(i)
	i0 := m.Indices[i*3]
	copy(t.Normal[:], m.Normals[i0*3:i0*3+3])
	return t
}

func (t stlTriangle) put(b []byte) {
	if len(b) < 50 {
		panic("need length 50 to marshal stlTriangle")
	}
	put3F32(b, t.Normal)
	put3F32(b[12:], t.Vertex1)
	put3F32(b[24:], t.Vertex2)
	put3F32(b[36:], t.Vertex3)
	b[48] = 0
	b[49] = 0
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(f[2]))
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}

func (t stlTriangle) validate() error {
	if bad3F32(t.Normal) {
		return errors.New("inf/NaN normal")
	}
	if bad3F32(t.Vertex1) || bad3F32(t.Vertex2) || bad3F32(t.Vertex3) {
		return errors.New("inf/NaN vertex")
	}
	return nil
}
