package gx

import "github.com/thelolagemann/gomeds/pkg/utils"

type light struct {
	dir    [3]int32 // 1.0.9, in view space
	half   [3]int32
	colour [3]int32 // 5 bits per channel
}

func rgb5(c uint32) [3]int32 {
	return [3]int32{int32(c & 0x1F), int32(c >> 5 & 0x1F), int32(c >> 10 & 0x1F)}
}

func (e *Engine) difAmb(param uint32) {
	e.diffuse = rgb5(param)
	e.ambient = rgb5(param >> 16)
	if param&(1<<15) != 0 {
		e.colour = rgb6(uint16(param & 0x7FFF))
	}
}

func (e *Engine) speEmi(param uint32) {
	e.specular = rgb5(param)
	e.emission = rgb5(param >> 16)
	e.useShininess = param&(1<<15) != 0
}

func (e *Engine) setShininess(p []uint32) {
	for i, w := range p {
		for b := 0; b < 4; b++ {
			e.shininess[i*4+b] = uint8(w >> (8 * b))
		}
	}
}

func (e *Engine) lightVector(param uint32) {
	x, y, z := unpack10(param)
	l := &e.lights[param>>30]
	l.dir = e.direction.Transform3([3]int32{x, y, z})
	// half way between the light and the line of sight (0,0,-1)
	l.half = [3]int32{l.dir[0] / 2, l.dir[1] / 2, (l.dir[2] - 512) / 2}
}

func (e *Engine) lightColour(param uint32) {
	e.lights[param>>30].colour = rgb5(param)
}

func dot(a, b [3]int32) int32 {
	return (a[0]*b[0] + a[1]*b[1] + a[2]*b[2]) >> 9
}

func (e *Engine) normal(param uint32) {
	x, y, z := unpack10(param)
	if e.texParam.TransformMode() == texTransformNormal {
		e.sourceTransform([3]int32{x, y, z}, 17)
	}

	enabled := e.attr.Lights()
	if enabled == 0 {
		return
	}
	n := e.direction.Transform3([3]int32{x, y, z})

	c := e.emission
	for i := 0; i < 4; i++ {
		if enabled&(1<<i) == 0 {
			continue
		}
		l := &e.lights[i]
		diffuse := utils.Clamp(0, -dot(l.dir, n), 511)
		shine := utils.Clamp(0, -dot(l.half, n), 511)
		shine = shine * shine >> 9
		if e.useShininess {
			shine = int32(e.shininess[shine>>2]) << 1
		}
		for ch := 0; ch < 3; ch++ {
			c[ch] += e.specular[ch] * l.colour[ch] * shine >> 14
			c[ch] += e.diffuse[ch] * l.colour[ch] * diffuse >> 14
			c[ch] += e.ambient[ch] * l.colour[ch] >> 5
		}
	}
	var packed uint16
	for ch := 0; ch < 3; ch++ {
		packed |= uint16(utils.Clamp(0, c[ch], 31)) << (5 * ch)
	}
	e.colour = rgb6(packed)
}
