package gx

// One is 1.0 in 20.12 fixed point.
const One = 1 << 12

// Matrix is a 4x4 matrix of 20.12 fixed point values. Vectors are rows,
// so a point p is transformed as p × M and the translation lives in the
// last row.
type Matrix [4][4]int32

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{
		{One, 0, 0, 0},
		{0, One, 0, 0},
		{0, 0, One, 0},
		{0, 0, 0, One},
	}
}

// Mul returns a × b.
func Mul(a, b Matrix) Matrix {
	var m Matrix
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum int64
			for k := 0; k < 4; k++ {
				sum += int64(a[i][k]) * int64(b[k][j])
			}
			m[i][j] = int32(sum >> 12)
		}
	}
	return m
}

// Transform returns v × m for a homogeneous vector.
func (m *Matrix) Transform(v [4]int32) [4]int32 {
	var out [4]int32
	for j := 0; j < 4; j++ {
		var sum int64
		for i := 0; i < 4; i++ {
			sum += int64(v[i]) * int64(m[i][j])
		}
		out[j] = int32(sum >> 12)
	}
	return out
}

// Transform3 returns the 3x3 part of m applied to v.
func (m *Matrix) Transform3(v [3]int32) [3]int32 {
	var out [3]int32
	for j := 0; j < 3; j++ {
		var sum int64
		for i := 0; i < 3; i++ {
			sum += int64(v[i]) * int64(m[i][j])
		}
		out[j] = int32(sum >> 12)
	}
	return out
}

// Translate adds v × m (the first three rows) to the translation row.
func (m *Matrix) Translate(x, y, z int32) {
	for j := 0; j < 4; j++ {
		sum := int64(x)*int64(m[0][j]) + int64(y)*int64(m[1][j]) + int64(z)*int64(m[2][j])
		m[3][j] += int32(sum >> 12)
	}
}

// Scale scales the first three rows.
func (m *Matrix) Scale(x, y, z int32) {
	for j := 0; j < 4; j++ {
		m[0][j] = int32(int64(m[0][j]) * int64(x) >> 12)
		m[1][j] = int32(int64(m[1][j]) * int64(y) >> 12)
		m[2][j] = int32(int64(m[2][j]) * int64(z) >> 12)
	}
}

// load4x4 builds a matrix from 16 parameters in row order.
func load4x4(p []uint32) Matrix {
	var m Matrix
	for i := 0; i < 16; i++ {
		m[i/4][i%4] = int32(p[i])
	}
	return m
}

// load4x3 builds a matrix from 12 parameters; the last column is 0,0,0,1.
func load4x3(p []uint32) Matrix {
	var m Matrix
	for i := 0; i < 12; i++ {
		m[i/3][i%3] = int32(p[i])
	}
	m[3][3] = One
	return m
}

// load3x3 builds a matrix from 9 parameters with no translation.
func load3x3(p []uint32) Matrix {
	var m Matrix
	for i := 0; i < 9; i++ {
		m[i/3][i%3] = int32(p[i])
	}
	m[3][3] = One
	return m
}

// stack is a fixed capacity matrix stack.
type stack struct {
	slots []Matrix
	sp    int
}

func newStack(capacity int) stack {
	return stack{slots: make([]Matrix, capacity)}
}

// push stores m and advances the pointer, reporting false when the stack
// is already full.
func (s *stack) push(m Matrix) bool {
	if s.sp >= len(s.slots) {
		return false
	}
	s.slots[s.sp] = m
	s.sp++
	return true
}

// pop moves the pointer back by n (which may be negative) and returns the
// matrix it then points at. The pointer is clamped to the stack, in which
// case ok is false.
func (s *stack) pop(n int) (m Matrix, ok bool) {
	s.sp -= n
	ok = true
	if s.sp < 0 {
		s.sp, ok = 0, false
	} else if s.sp > len(s.slots) {
		s.sp, ok = len(s.slots), false
	}
	i := s.sp
	if i == len(s.slots) {
		i--
	}
	return s.slots[i], ok
}

// slot returns a pointer to slot i, or nil when i is out of range.
func (s *stack) slot(i int) *Matrix {
	if i < 0 || i >= len(s.slots) {
		return nil
	}
	return &s.slots[i]
}

func (s *stack) reset() {
	s.sp = 0
}
