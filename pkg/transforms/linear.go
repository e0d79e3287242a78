package transforms

// Linear is the affine map z -> z*Multiply + Add.
//
// With a real Multiply it maps canvas positions onto the plane: Multiply is
// the plane distance between pixels and Add the plane point at the origin.
type Linear struct {
	Multiply complex128
	Add      complex128
}

func (l Linear) Next(z complex128) complex128 {
	return z*l.Multiply + l.Add
}

// Screen returns the map from canvas position (x, y) to the plane point
// (left + x*scale, top + y*scale).
func Screen(scale, left, top float64) Linear {
	return Linear{
		Multiply: complex(scale, 0),
		Add:      complex(left, top),
	}
}
