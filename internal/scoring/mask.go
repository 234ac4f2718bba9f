package scoring

// Mask is a binary image used for ink and edge features.
type Mask struct {
	W, H int
	Bits []bool
}

// NewMask allocates an empty mask.
func NewMask(w, h int) *Mask {
	return &Mask{W: w, H: h, Bits: make([]bool, w*h)}
}

// At reports whether the pixel at (x, y) is set.
func (m *Mask) At(x, y int) bool { return m.Bits[y*m.W+x] }

// Set marks the pixel at (x, y).
func (m *Mask) Set(x, y int, v bool) { m.Bits[y*m.W+x] = v }

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (m *Mask) Clone() *Mask {
	out := &Mask{W: m.W, H: m.H, Bits: make([]bool, len(m.Bits))}
	copy(out.Bits, m.Bits)
	return out
}

// Union returns the pixelwise OR of two same-size masks.
func Union(a, b *Mask) *Mask {
	out := NewMask(a.W, a.H)
	for i := range out.Bits {
		out.Bits[i] = a.Bits[i] || b.Bits[i]
	}
	return out
}

// Xor returns the pixelwise mismatch of two same-size masks.
func Xor(a, b *Mask) *Mask {
	out := NewMask(a.W, a.H)
	for i := range out.Bits {
		out.Bits[i] = a.Bits[i] != b.Bits[i]
	}
	return out
}

// labelComponents assigns a positive label to each 4-connected component
// of set pixels and returns the pixel area of every label. Label 0 is
// background; areas[l-1] is the area of label l.
func labelComponents(m *Mask) (labels []int32, areas []int) {
	labels = make([]int32, len(m.Bits))
	var queue []int
	next := int32(0)

	for start, set := range m.Bits {
		if !set || labels[start] != 0 {
			continue
		}
		next++
		area := 0
		labels[start] = next
		queue = append(queue[:0], start)
		for len(queue) > 0 {
			i := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			area++
			x, y := i%m.W, i/m.W
			if x > 0 && m.Bits[i-1] && labels[i-1] == 0 {
				labels[i-1] = next
				queue = append(queue, i-1)
			}
			if x < m.W-1 && m.Bits[i+1] && labels[i+1] == 0 {
				labels[i+1] = next
				queue = append(queue, i+1)
			}
			if y > 0 && m.Bits[i-m.W] && labels[i-m.W] == 0 {
				labels[i-m.W] = next
				queue = append(queue, i-m.W)
			}
			if y < m.H-1 && m.Bits[i+m.W] && labels[i+m.W] == 0 {
				labels[i+m.W] = next
				queue = append(queue, i+m.W)
			}
		}
		areas = append(areas, area)
	}
	return labels, areas
}

// removeSmallObjects clears every 4-connected component whose area is
// strictly below minSize. Anti-aliasing speckle suppression.
func removeSmallObjects(m *Mask, minSize int) {
	if minSize <= 1 {
		return
	}
	labels, areas := labelComponents(m)
	for i, l := range labels {
		if l != 0 && areas[l-1] < minSize {
			m.Bits[i] = false
		}
	}
}

// dilate grows the mask with a Euclidean disk of the given radius. Radius 1
// is the plus-shaped neighborhood, which tolerates one pixel of edge jitter.
func dilate(m *Mask, radius int) *Mask {
	if radius <= 0 {
		return m
	}
	type offset struct{ dx, dy int }
	var offs []offset
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				offs = append(offs, offset{dx, dy})
			}
		}
	}

	out := NewMask(m.W, m.H)
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if !m.Bits[y*m.W+x] {
				continue
			}
			for _, o := range offs {
				nx, ny := x+o.dx, y+o.dy
				if nx >= 0 && nx < m.W && ny >= 0 && ny < m.H {
					out.Bits[ny*m.W+nx] = true
				}
			}
		}
	}
	return out
}
