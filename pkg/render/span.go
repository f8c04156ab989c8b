package render

// span is a half-open pixel window [x0, x1) x [y0, y1).
type span struct {
	x0, y0, x1, y1 int
}

func fullSpan(width, height int) span {
	return span{0, 0, width, height}
}

func (s span) clip(o span) span {
	return span{
		x0: max(s.x0, o.x0),
		y0: max(s.y0, o.y0),
		x1: min(s.x1, o.x1),
		y1: min(s.y1, o.y1),
	}
}

func (s span) empty() bool {
	return s.x0 >= s.x1 || s.y0 >= s.y1
}
