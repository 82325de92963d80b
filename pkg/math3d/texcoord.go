package math3d

// TexCoord is a texture coordinate. W starts at 1 and is replaced by the
// inverse of the vertex's clip-space W during projection, at which point U
// and V are stored pre-divided by that same W.
type TexCoord struct {
	U, V, W float64
}

// UV creates a texture coordinate with W = 1.
func UV(u, v float64) TexCoord {
	return TexCoord{u, v, 1}
}

// Lerp interpolates U, V and W by t.
func (a TexCoord) Lerp(b TexCoord, t float64) TexCoord {
	return TexCoord{
		a.U + (b.U-a.U)*t,
		a.V + (b.V-a.V)*t,
		a.W + (b.W-a.W)*t,
	}
}

// PerspectiveDivide returns the coordinate prepared for perspective-correct
// interpolation against a vertex whose clip-space W is w.
func (a TexCoord) PerspectiveDivide(w float64) TexCoord {
	return TexCoord{a.U / w, a.V / w, 1 / w}
}
