package internal

// Padding defines spacing on all four sides of an element.
type Padding struct {
	Top    int32
	Right  int32
	Bottom int32
	Left   int32
}

func UniformPadding(value int32) Padding {
	return Padding{Top: value, Right: value, Bottom: value, Left: value}
}

// Scaled returns p multiplied by the current layout scale.
func (p Padding) Scaled() Padding {
	s := GetScaleFactor()
	return Padding{
		Top:    int32(float32(p.Top) * s),
		Right:  int32(float32(p.Right) * s),
		Bottom: int32(float32(p.Bottom) * s),
		Left:   int32(float32(p.Left) * s),
	}
}

// Scale multiplies a layout length by the current scale.
func Scale(v int32) int32 {
	return int32(float32(v) * GetScaleFactor())
}

// VisibleWindow returns the first index of a window of size rows that keeps
// selected visible, scrolling as little as possible from start.
func VisibleWindow(start, selected, size, total int) int {
	if size <= 0 || total <= size {
		return 0
	}
	if selected < start {
		start = selected
	}
	if selected >= start+size {
		start = selected - size + 1
	}
	if start > total-size {
		start = total - size
	}
	if start < 0 {
		start = 0
	}
	return start
}
