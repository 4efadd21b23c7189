package gx

const (
	// MaxVertices is the capacity of vertex RAM.
	MaxVertices = 6188
	// MaxPolygons is the capacity of polygon RAM.
	MaxPolygons = 2048
	// MaxPolygonVertices bounds the vertex count of a clipped polygon.
	MaxPolygonVertices = 10
)

// Vertex is a transformed vertex. Clip holds the homogeneous clip space
// position; the screen fields are filled in once the owning polygon has
// been clipped.
type Vertex struct {
	Clip     [4]int32
	Colour   [3]int32 // 6 bits per channel
	TexCoord [2]int32 // 12.4 texels
	Clipped  bool     // produced by clipping

	X, Y  int32 // screen position, Y from the top
	Depth uint32
	W     int32
}

// Polygon is an assembled, clipped polygon in a Buffer.
type Polygon struct {
	First, Count int
	Attr         PolygonAttr
	Tex          TexImageParam
	PaletteBase  uint32
	Top, Bottom  int32
	Translucent  bool
	FrontFacing  bool
}

// Buffer is one of the two vertex/polygon RAM banks.
type Buffer struct {
	Vertices []Vertex
	Polygons []Polygon

	// latched from SWAP_BUFFERS
	ManualSort bool
	WBuffer    bool
}

func newBuffer() Buffer {
	return Buffer{
		Vertices: make([]Vertex, 0, MaxVertices),
		Polygons: make([]Polygon, 0, MaxPolygons),
	}
}

// PolygonVertices returns the vertices of p.
func (b *Buffer) PolygonVertices(p *Polygon) []Vertex {
	return b.Vertices[p.First : p.First+p.Count]
}

func (b *Buffer) reset() {
	b.Vertices = b.Vertices[:0]
	b.Polygons = b.Polygons[:0]
}

// fits reports whether a polygon of n vertices can be stored.
func (b *Buffer) fits(n int) bool {
	return len(b.Polygons) < MaxPolygons && len(b.Vertices)+n <= MaxVertices
}
