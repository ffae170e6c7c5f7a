package wide

// Checked carries a value through a chain of operations and remembers whether
// any step overflowed. The zero value is a clean zero.
type Checked struct {
	v        Uint
	overflow bool
}

// Check starts a chain at v.
func Check(v Uint) Checked {
	return Checked{v: v}
}

// WithOverflow marks the chain as overflowed when ov is true.
func (c Checked) WithOverflow(ov bool) Checked {
	c.overflow = c.overflow || ov
	return c
}

// Add adds v.
func (c Checked) Add(v Uint) Checked {
	r, ov := c.v.Add(v)
	return Checked{v: r, overflow: c.overflow || ov}
}

// AddChecked adds another chain, merging its overflow state.
func (c Checked) AddChecked(o Checked) Checked {
	return c.Add(o.v).WithOverflow(o.overflow)
}

// Sub subtracts v.
func (c Checked) Sub(v Uint) Checked {
	r, ov := c.v.Sub(v)
	return Checked{v: r, overflow: c.overflow || ov}
}

// SubChecked subtracts another chain, merging its overflow state.
func (c Checked) SubChecked(o Checked) Checked {
	return c.Sub(o.v).WithOverflow(o.overflow)
}

// Mul multiplies by m.
func (c Checked) Mul(m uint32) Checked {
	r, ov := c.v.Mul(m)
	return Checked{v: r, overflow: c.overflow || ov}
}

// Div divides by d.
func (c Checked) Div(d uint32) Checked {
	return Checked{v: c.v.Div(d), overflow: c.overflow}
}

// Inc adds one.
func (c Checked) Inc() Checked {
	return c.Add(1)
}

// Dec subtracts one.
func (c Checked) Dec() Checked {
	return c.Sub(1)
}

// Value returns the current, possibly wrapped, value.
func (c Checked) Value() Uint {
	return c.v
}

// Overflow reports whether any step overflowed.
func (c Checked) Overflow() bool {
	return c.overflow
}

// Result returns the value, or ErrOverflow if any step overflowed.
func (c Checked) Result() (Uint, error) {
	if c.overflow {
		return c.v, ErrOverflow
	}
	return c.v, nil
}
