package core

import "testing"

func TestAspectRatio(t *testing.T) {
	cases := []struct {
		w, h int
		want float32
	}{
		{1080, 720, 1.5},
		{720, 0, 0},
		{0, 0, 0},
	}
	for _, c := range cases {
		w := &Window{Width: c.w, Height: c.h}
		if got := w.AspectRatio(); got != c.want {
			t.Errorf("%dx%d: expected %v, got %v", c.w, c.h, c.want, got)
		}
	}
}
