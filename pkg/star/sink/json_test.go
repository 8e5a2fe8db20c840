package sink

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(halfLayout("3.5"), WithJSONSettings(halfSettings()))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if out.TotalStars != 5 || len(out.Stars) != 5 {
		t.Fatalf("stars = %d/%d, want 5", out.TotalStars, len(out.Stars))
	}
	if out.Rating != 3.5 || out.FillMode != "half" {
		t.Errorf("rating/mode = %v/%q", out.Rating, out.FillMode)
	}
	if out.Correction == nil || *out.Correction != 0 {
		t.Errorf("fill_correction = %v, want 0", out.Correction)
	}

	wantKinds := []string{"filled", "filled", "filled", "partial", "empty"}
	for i, st := range out.Stars {
		if st.Kind != wantKinds[i] {
			t.Errorf("star %d kind = %q, want %q", i, st.Kind, wantKinds[i])
		}
		if st.X != float64(i)*25 {
			t.Errorf("star %d x = %v", i, st.X)
		}
	}
	partial := out.Stars[3]
	if partial.Level != 0.5 || len(partial.Layers) != 2 || partial.Layers[1].ClipWidth != 10 {
		t.Errorf("partial star = %+v", partial)
	}
	if !strings.HasPrefix(partial.Layers[0].Path, "M") || partial.Layers[0].Fill != "transparent" {
		t.Errorf("base layer = %+v", partial.Layers[0])
	}

	if out.Text == nil || out.Text.Value != "3.5" || out.Text.X != 125 {
		t.Errorf("text = %+v", out.Text)
	}
}

func TestRenderJSONWithoutSettings(t *testing.T) {
	data, err := RenderJSON(halfLayout(""), WithCompactJSON())
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if strings.Contains(s, "\n") {
		t.Error("compact output contains newlines")
	}
	if strings.Contains(s, "fill_mode") || strings.Contains(s, `"text"`) {
		t.Errorf("unexpected optional fields: %s", s)
	}
}
