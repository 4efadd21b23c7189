package gx

import "github.com/thelolagemann/gomeds/pkg/bits"

// clipMatrix returns position × projection, recomputing it if either
// input changed.
func (e *Engine) clipMatrix() *Matrix {
	if e.clipDirty {
		e.clip = Mul(e.position, e.projection)
		e.clipDirty = false
	}
	return &e.clip
}

func (e *Engine) stackError() {
	if !e.Status.StackError {
		e.log.Debugf("gx: matrix stack overflow in mode %d", e.mode)
	}
	e.Status.StackError = true
}

func (e *Engine) push() {
	var ok bool
	switch e.mode {
	case ModeProjection:
		ok = e.projStack.push(e.projection)
	case ModeTexture:
		ok = e.texStack.push(e.tex)
	default:
		ok = e.posStack.push(e.position)
		e.dirStack.push(e.direction)
	}
	if !ok {
		e.stackError()
	}
}

func (e *Engine) pop(param uint32) {
	var ok bool
	switch e.mode {
	case ModeProjection:
		e.projection, ok = e.projStack.pop(1)
	case ModeTexture:
		e.tex, ok = e.texStack.pop(1)
	default:
		n := int(bits.SignExtend(param&0x3F, 6))
		e.position, ok = e.posStack.pop(n)
		e.direction, _ = e.dirStack.pop(n)
	}
	if !ok {
		e.stackError()
	}
	e.clipDirty = true
}

func (e *Engine) store(param uint32) {
	switch e.mode {
	case ModeProjection:
		*e.projStack.slot(0) = e.projection
	case ModeTexture:
		*e.texStack.slot(0) = e.tex
	default:
		i := int(param & 0x1F)
		if i == 31 {
			e.stackError()
		}
		*e.posStack.slot(i) = e.position
		*e.dirStack.slot(i) = e.direction
	}
}

func (e *Engine) restore(param uint32) {
	switch e.mode {
	case ModeProjection:
		e.projection = *e.projStack.slot(0)
	case ModeTexture:
		e.tex = *e.texStack.slot(0)
	default:
		i := int(param & 0x1F)
		if i == 31 {
			e.stackError()
		}
		e.position = *e.posStack.slot(i)
		e.direction = *e.dirStack.slot(i)
	}
	e.clipDirty = true
}

// targets returns the matrices a load or multiply in the current mode
// applies to.
func (e *Engine) targets() []*Matrix {
	switch e.mode {
	case ModeProjection:
		return []*Matrix{&e.projection}
	case ModePosition:
		return []*Matrix{&e.position}
	case ModePositionVector:
		return []*Matrix{&e.position, &e.direction}
	default:
		return []*Matrix{&e.tex}
	}
}

func (e *Engine) load(m Matrix) {
	for _, t := range e.targets() {
		*t = m
	}
	e.clipDirty = true
}

func (e *Engine) mult(m Matrix) {
	for _, t := range e.targets() {
		*t = Mul(m, *t)
	}
	e.clipDirty = true
}

func (e *Engine) scale(x, y, z int32) {
	// the direction matrix keeps unit length normals
	t := e.targets()[0]
	t.Scale(x, y, z)
	e.clipDirty = true
}

func (e *Engine) translate(x, y, z int32) {
	for _, t := range e.targets() {
		t.Translate(x, y, z)
	}
	e.clipDirty = true
}

// Position returns the current position matrix.
func (e *Engine) Position() Matrix { return e.position }

// Projection returns the current projection matrix.
func (e *Engine) Projection() Matrix { return e.projection }

// Direction returns the current direction matrix.
func (e *Engine) Direction() Matrix { return e.direction }

// StackLevel returns the position/vector stack pointer.
func (e *Engine) StackLevel() int { return e.posStack.sp }
