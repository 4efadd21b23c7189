package gx

// boxTest reports in GXSTAT whether any face of the box is at least
// partly inside the view volume. The box is given as x, y, z and width,
// height, depth in 4.12.
func (e *Engine) boxTest(p []uint32) {
	x, y := int32(int16(p[0])), int32(int16(p[0]>>16))
	z, w := int32(int16(p[1])), int32(int16(p[1]>>16))
	h, d := int32(int16(p[2])), int32(int16(p[2]>>16))

	m := e.clipMatrix()
	var corners [8]Vertex
	for i := range corners {
		cx, cy, cz := x, y, z
		if i&1 != 0 {
			cx += w
		}
		if i&2 != 0 {
			cy += h
		}
		if i&4 != 0 {
			cz += d
		}
		corners[i].Clip = m.Transform([4]int32{cx, cy, cz, One})
	}

	faces := [6][4]int{
		{0, 1, 3, 2}, {4, 5, 7, 6}, // near and far z
		{0, 1, 5, 4}, {2, 3, 7, 6}, // y
		{0, 2, 6, 4}, {1, 3, 7, 5}, // x
	}
	var a, b clipScratch
	e.Status.BoxResult = false
	for _, f := range faces {
		face := []Vertex{corners[f[0]], corners[f[1]], corners[f[2]], corners[f[3]]}
		if len(clipPolygon(face, true, &a, &b)) > 0 {
			e.Status.BoxResult = true
			return
		}
	}
}

// posTest transforms a point by the clip matrix into POS_RESULT. The
// point also becomes the last vertex for relative vertex commands.
func (e *Engine) posTest(p []uint32) {
	x, y, z := int32(int16(p[0])), int32(int16(p[0]>>16)), int32(int16(p[1]))
	e.last = [3]int32{x, y, z}
	e.posResult = e.clipMatrix().Transform([4]int32{x, y, z, One})
}

// vecTest transforms a direction by the direction matrix into
// VEC_RESULT as 4.12 values.
func (e *Engine) vecTest(param uint32) {
	x, y, z := unpack10(param)
	r := e.direction.Transform3([3]int32{x << 3, y << 3, z << 3})
	for i := range r {
		e.vecResult[i] = int16(r[i])
	}
}

// PosResult returns word i of POS_RESULT.
func (e *Engine) PosResult(i int) uint32 {
	return uint32(e.posResult[i&3])
}

// VecResult returns halfword i of VEC_RESULT.
func (e *Engine) VecResult(i int) uint16 {
	if i > 2 {
		return 0
	}
	return uint16(e.vecResult[i])
}

// ClipMatrixResult returns word i of CLIPMTX_RESULT.
func (e *Engine) ClipMatrixResult(i int) uint32 {
	m := e.clipMatrix()
	return uint32(m[i/4&3][i%4])
}

// DirectionMatrixResult returns word i of VECMTX_RESULT.
func (e *Engine) DirectionMatrixResult(i int) uint32 {
	if i > 8 {
		return 0
	}
	return uint32(e.direction[i/3][i%3])
}
