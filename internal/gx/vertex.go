package gx

// Texture coordinate transformation modes of TEXIMAGE_PARAM.
const (
	texTransformNone uint8 = iota
	texTransformTexCoord
	texTransformNormal
	texTransformVertex
)

func (e *Engine) texCoordinate(param uint32) {
	s, t := int32(int16(param)), int32(int16(param>>16))
	e.rawTexCoord = [2]int32{s, t}
	if e.texParam.TransformMode() == texTransformTexCoord {
		m := &e.tex
		e.texCoord[0] = int32((int64(s)*int64(m[0][0]) + int64(t)*int64(m[1][0]) + int64(m[2][0]) + int64(m[3][0])) >> 12)
		e.texCoord[1] = int32((int64(s)*int64(m[0][1]) + int64(t)*int64(m[1][1]) + int64(m[2][1]) + int64(m[3][1])) >> 12)
		return
	}
	e.texCoord = e.rawTexCoord
}

// sourceTransform derives texture coordinates from a normal or vertex
// vector; shift converts the product back to 12.4 texels.
func (e *Engine) sourceTransform(v [3]int32, shift uint) {
	m := &e.tex
	for i := 0; i < 2; i++ {
		sum := int64(v[0])*int64(m[0][i]) + int64(v[1])*int64(m[1][i]) + int64(v[2])*int64(m[2][i])
		e.texCoord[i] = int32(sum>>shift) + e.rawTexCoord[i]
	}
}

func (e *Engine) vertex(x, y, z int32) {
	e.last = [3]int32{x, y, z}
	if !e.inRun {
		return
	}
	if e.texParam.TransformMode() == texTransformVertex {
		e.sourceTransform(e.last, 20)
	}
	v := Vertex{
		Clip:     e.clipMatrix().Transform([4]int32{x, y, z, One}),
		Colour:   e.colour,
		TexCoord: e.texCoord,
	}
	e.assemble(v)
}

// begin starts a new primitive run, latching the polygon attributes. Any
// incomplete primitive of the previous run is discarded.
func (e *Engine) begin(primitive uint8) {
	e.endRun()
	e.attr = e.pendingAttr
	e.primitive = primitive
	e.inRun = true
}

func (e *Engine) endRun() {
	e.inRun = false
	e.runLen = 0
	e.odd = false
}

// InRun reports whether a primitive run is open.
func (e *Engine) InRun() bool {
	return e.inRun
}

// assemble adds a vertex to the open run, emitting polygons as they
// complete. Strips share their trailing vertices with the next polygon.
func (e *Engine) assemble(v Vertex) {
	e.run[e.runLen] = v
	e.runLen++
	switch e.primitive {
	case Triangles:
		if e.runLen == 3 {
			e.emit(e.run[0], e.run[1], e.run[2])
			e.runLen = 0
		}
	case Quads:
		if e.runLen == 4 {
			e.emit(e.run[0], e.run[1], e.run[2], e.run[3])
			e.runLen = 0
		}
	case TriangleStrip:
		if e.runLen == 3 {
			// every other triangle is wound the other way
			if e.odd {
				e.emit(e.run[1], e.run[0], e.run[2])
			} else {
				e.emit(e.run[0], e.run[1], e.run[2])
			}
			e.odd = !e.odd
			e.run[0], e.run[1] = e.run[1], e.run[2]
			e.runLen = 2
		}
	case QuadStrip:
		if e.runLen == 4 {
			e.emit(e.run[0], e.run[1], e.run[3], e.run[2])
			e.run[0], e.run[1] = e.run[2], e.run[3]
			e.runLen = 2
		}
	}
}
