package gx

// plane is one side of the view volume: w + sign*coordinate >= 0.
type plane struct {
	axis int
	sign int64
}

// the far plane is first so that far-plane rejection sees the input
var frustum = [6]plane{
	{2, -1}, // far
	{2, 1},  // near
	{0, -1}, // right
	{0, 1},  // left
	{1, -1}, // top
	{1, 1},  // bottom
}

func (p plane) distance(v *Vertex) int64 {
	return int64(v.Clip[3]) + p.sign*int64(v.Clip[p.axis])
}

type clipScratch [MaxPolygonVertices + 2]Vertex

// Clip clips a convex polygon against the view volume and returns the
// surviving vertices, at most MaxPolygonVertices. Vertices inside every
// plane are returned unchanged and in order. Polygons crossing the far
// plane are rejected entirely unless renderFar is set.
func Clip(in []Vertex, renderFar bool) []Vertex {
	var a, b clipScratch
	return clipPolygon(in, renderFar, &a, &b)
}

func clipPolygon(in []Vertex, renderFar bool, a, b *clipScratch) []Vertex {
	if !renderFar {
		for i := range in {
			if frustum[0].distance(&in[i]) < 0 {
				return nil
			}
		}
	}
	cur := in
	dst := a
	for _, p := range frustum {
		out := clipPlane(cur, p, dst)
		if len(out) == 0 {
			return nil
		}
		cur = out
		if dst == a {
			dst = b
		} else {
			dst = a
		}
	}
	return cur
}

// clipPlane walks the vertex ring keeping inside vertices and emitting an
// interpolated vertex at every crossing.
func clipPlane(in []Vertex, p plane, out *clipScratch) []Vertex {
	n := 0
	emit := func(v Vertex) {
		if n < MaxPolygonVertices {
			out[n] = v
			n++
		}
	}
	for i := range in {
		cur := &in[i]
		prev := &in[(i+len(in)-1)%len(in)]
		dc, dp := p.distance(cur), p.distance(prev)
		if dc >= 0 {
			if dp < 0 && dc > 0 {
				emit(interpolate(cur, prev, dc, dp))
			}
			emit(*cur)
		} else if dp > 0 {
			emit(interpolate(prev, cur, dp, dc))
		}
	}
	return out[:n]
}

// interpolate returns the point on the edge from inside vertex a to
// outside vertex b where the plane distance reaches zero. Every attribute
// is interpolated by the same factor da/(da-db).
func interpolate(a, b *Vertex, da, db int64) Vertex {
	den := da - db
	lerp := func(x, y int32) int32 {
		return x + int32((int64(y)-int64(x))*da/den)
	}
	v := Vertex{Clipped: true}
	for i := 0; i < 4; i++ {
		v.Clip[i] = lerp(a.Clip[i], b.Clip[i])
	}
	for i := 0; i < 3; i++ {
		v.Colour[i] = lerp(a.Colour[i], b.Colour[i])
	}
	for i := 0; i < 2; i++ {
		v.TexCoord[i] = lerp(a.TexCoord[i], b.TexCoord[i])
	}
	return v
}
