package fifo

// Command is a decoded geometry command and its parameters.
type Command struct {
	Op     Opcode
	Params [maxParams]uint32
	N      uint8
}

// Param returns the i'th parameter, or 0 if it was never supplied.
func (c *Command) Param(i int) uint32 {
	if i >= int(c.N) {
		return 0
	}
	return c.Params[i]
}

// entries is the number of FIFO entries the command occupies; every
// parameter word takes one entry and a command without parameters still
// takes one.
func (c *Command) entries() int {
	if c.N == 0 {
		return 1
	}
	return int(c.N)
}
