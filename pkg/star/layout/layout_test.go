package layout

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/starbar/pkg/star/compose"
	"github.com/matzehuels/starbar/pkg/star/fill"
	"github.com/matzehuels/starbar/pkg/star/settings"
	"github.com/matzehuels/starbar/pkg/star/shape"
)

// fixedMeasurer reports 6 points per rune and a constant height.
func fixedMeasurer(height float64) TextMeasurer {
	return MeasureFunc(func(text string, _ settings.Font) shape.Size {
		return shape.Sz(6*float64(len([]rune(text))), height)
	})
}

func units(n int, size float64) []compose.Unit {
	us := make([]compose.Unit, n)
	for i := range us {
		us[i] = compose.Unit{Size: shape.Sz(size, size)}
	}
	return us
}

func TestRow(t *testing.T) {
	tests := []struct {
		n            int
		w, m         float64
		wantW, wantH float64
	}{
		{5, 20, 5, 120, 20},
		{1, 20, 5, 20, 20},
		{3, 10, 0, 30, 10},
		{0, 20, 5, 0, 0},
	}

	for _, tt := range tests {
		origins, size := Row(units(tt.n, tt.w), tt.m)
		if len(origins) != tt.n {
			t.Fatalf("len(origins) = %d, want %d", len(origins), tt.n)
		}
		for i, o := range origins {
			want := shape.Pt(float64(i)*(tt.w+tt.m), 0)
			if o != want {
				t.Errorf("n=%d origin[%d] = %v, want %v", tt.n, i, o, want)
			}
		}
		if size != shape.Sz(tt.wantW, tt.wantH) {
			t.Errorf("n=%d size = %v, want %vx%v", tt.n, size, tt.wantW, tt.wantH)
		}
	}
}

func TestRowMixedHeights(t *testing.T) {
	us := []compose.Unit{
		{Size: shape.Sz(10, 10)},
		{Size: shape.Sz(20, 30)},
		{Size: shape.Sz(5, 5)},
	}
	origins, size := Row(us, 2)
	want := []shape.Point{shape.Pt(0, 0), shape.Pt(12, 0), shape.Pt(34, 0)}
	if diff := cmp.Diff(want, origins); diff != "" {
		t.Errorf("origins (-want +got):\n%s", diff)
	}
	if size != shape.Sz(39, 30) {
		t.Errorf("size = %v, want 39x30", size)
	}
}

func TestAppendText(t *testing.T) {
	tests := []struct {
		name      string
		row, text shape.Size
		margin    float64
		want      shape.Point
	}{
		{"shorter", shape.Sz(120, 20), shape.Sz(30, 10), 5, shape.Pt(125, 5)},
		{"same height", shape.Sz(50, 20), shape.Sz(30, 20), 0, shape.Pt(50, 0)},
		{"taller", shape.Sz(50, 10), shape.Sz(30, 20), 5, shape.Pt(55, -5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AppendText(tt.row, tt.text, tt.margin); got != tt.want {
				t.Errorf("AppendText() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoundingSize(t *testing.T) {
	tests := []struct {
		name  string
		items []shape.Rect
		want  shape.Size
	}{
		{"none", nil, shape.Size{}},
		{"one", []shape.Rect{{X0: 0, Y0: 0, X1: 20, Y1: 20}}, shape.Sz(20, 20)},
		{
			"row and text",
			[]shape.Rect{{X0: 0, Y0: 0, X1: 20, Y1: 20}, {X0: 25, Y0: 0, X1: 45, Y1: 20}, {X0: 50, Y0: 5, X1: 80, Y1: 15}},
			shape.Sz(80, 20),
		},
		{
			"offset origin",
			[]shape.Rect{{X0: 10, Y0: 10, X1: 20, Y1: 20}, {X0: 30, Y0: 5, X1: 40, Y1: 25}},
			shape.Sz(30, 20),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BoundingSize(tt.items); got != tt.want {
				t.Errorf("BoundingSize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	s := settings.Default()
	r := Build(s, 3.5, "", nil)

	if len(r.Stars) != 5 {
		t.Fatalf("len(Stars) = %d, want 5", len(r.Stars))
	}
	if r.Text != nil {
		t.Error("Text set without a label")
	}
	wantLevels := []float64{1, 1, 1, 0, 0}
	if diff := cmp.Diff(wantLevels, r.Levels); diff != "" {
		t.Errorf("levels (-want +got):\n%s", diff)
	}
	// 5*20 + 4*5
	if r.Size != shape.Sz(120, 20) {
		t.Errorf("Size = %v, want 120x20", r.Size)
	}
	for i, st := range r.Stars {
		if want := shape.Pt(float64(i)*25, 0); st.Origin != want {
			t.Errorf("star %d origin = %v, want %v", i, st.Origin, want)
		}
	}
}

func TestBuildWithText(t *testing.T) {
	s := settings.Default()
	r := Build(s, 4, "(42)", fixedMeasurer(10))

	if r.Text == nil {
		t.Fatal("Text = nil")
	}
	if r.Text.Origin != shape.Pt(125, 5) {
		t.Errorf("text origin = %v, want (125,5)", r.Text.Origin)
	}
	if r.Text.Value != "(42)" || r.Text.Color != s.TextColor {
		t.Errorf("text = %+v", r.Text)
	}
	if r.Size != shape.Sz(149, 20) {
		t.Errorf("Size = %v, want 149x20", r.Size)
	}
}

func TestBuildTallText(t *testing.T) {
	s := settings.Default()
	s.StarSize = 10
	s.StarMargin = 0
	s.TotalStars = 2
	r := Build(s, 1, "ab", fixedMeasurer(30))

	if r.Text.Origin != shape.Pt(25, 0) {
		t.Errorf("text origin = %v, want (25,0)", r.Text.Origin)
	}
	for i, st := range r.Stars {
		if st.Origin.Y != 10 {
			t.Errorf("star %d y = %v, want 10", i, st.Origin.Y)
		}
	}
	if r.Size != shape.Sz(37, 30) {
		t.Errorf("Size = %v, want 37x30", r.Size)
	}
}

func TestBuildWidthFormula(t *testing.T) {
	for n := 1; n <= 12; n++ {
		s := settings.Default()
		s.TotalStars = n
		s.StarSize = 17
		s.StarMargin = 3.5
		r := Build(s, float64(n)/2, "", nil)

		want := float64(n)*17 + float64(n-1)*3.5
		if math.Abs(r.Size.Width-want) > 1e-9 {
			t.Errorf("n=%d width = %v, want %v", n, r.Size.Width, want)
		}
		if len(r.Stars) != n {
			t.Errorf("n=%d stars = %d", n, len(r.Stars))
		}
	}
}

func TestBuildPrecise(t *testing.T) {
	s := settings.Default()
	s.FillMode = fill.Precise
	s.FillCorrection = 40
	r := Build(s, 3.2, "", nil)

	want := []float64{0.8, 0.8, 0.8, 0.32, 0.2}
	if diff := cmp.Diff(want, r.Levels, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("levels (-want +got):\n%s", diff)
	}
	kinds := []compose.Kind{compose.Partial, compose.Partial, compose.Partial, compose.Partial, compose.Partial}
	for i, st := range r.Stars {
		if st.Unit.Kind() != kinds[i] {
			t.Errorf("star %d kind = %v", i, st.Unit.Kind())
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	s := settings.Default()
	s.FillMode = fill.Precise
	a := Build(s, 2.7, "hello", fixedMeasurer(14))
	b := Build(s, 2.7, "hello", fixedMeasurer(14))
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Build not deterministic:\n%s", diff)
	}
}

func TestItems(t *testing.T) {
	s := settings.Default()
	r := Build(s, 1, "x", fixedMeasurer(10))
	items := r.Items()
	if len(items) != 6 {
		t.Fatalf("len(Items) = %d, want 6", len(items))
	}
	if items[5] != r.Text.Bounds() {
		t.Errorf("last item = %+v, want text bounds", items[5])
	}
}
