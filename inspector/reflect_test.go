package inspector

import (
	"testing"

	"github.com/pthm-cable/wormsoup/components"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag    string
		widget Widget
		opts   map[string]string
	}{
		{"", WidgetAuto, map[string]string{}},
		{"bar,max:18", WidgetBar, map[string]string{"max": "18"}},
		{"label,fmt:%.1fs", WidgetLabel, map[string]string{"fmt": "%.1fs"}},
		{"count", WidgetCount, map[string]string{}},
		{"skip", WidgetSkip, map[string]string{}},
		{"mystery", WidgetAuto, map[string]string{}},
	}
	for _, tt := range tests {
		widget, opts := ParseTag(tt.tag)
		if widget != tt.widget {
			t.Errorf("ParseTag(%q) widget = %v, want %v", tt.tag, widget, tt.widget)
		}
		if len(opts) != len(tt.opts) {
			t.Errorf("ParseTag(%q) options = %v, want %v", tt.tag, opts, tt.opts)
			continue
		}
		for k, v := range tt.opts {
			if opts[k] != v {
				t.Errorf("ParseTag(%q) option %s = %q, want %q", tt.tag, k, opts[k], v)
			}
		}
	}
}

func TestExtractWormFields(t *testing.T) {
	w := components.Worm{
		ID:       7,
		Type:     components.Orbiter,
		Width:    9,
		Speed:    2,
		Segments: make([]components.Segment, 12),
		Limbs:    make([]components.Limb, 3),
		IsBoss:   true,
	}

	fields := ExtractFields(&w)
	byName := make(map[string]Field, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}

	if _, ok := byName["Phase"]; ok {
		t.Error("Phase is tagged skip and should not be extracted")
	}
	if f := byName["Width"]; f.Widget != WidgetBar || GetMax(f.Options) != 18 {
		t.Errorf("Width field = %+v, want bar with max 18", f)
	}
	if f := byName["IsBoss"]; f.Widget != WidgetBool {
		t.Errorf("IsBoss widget = %v, want bool", f.Widget)
	}
	if f := byName["Segments"]; f.Widget != WidgetCount || Len(f.Value) != 12 {
		t.Errorf("Segments field = widget %v len %d, want count of 12", f.Widget, Len(f.Value))
	}
	if f := byName["Limbs"]; Len(f.Value) != 3 {
		t.Errorf("Limbs length = %d, want 3", Len(f.Value))
	}
	if got := FormatValue(byName["Type"].Value, ""); got != "ORBITER" {
		t.Errorf("Type formats as %q, want ORBITER", got)
	}
}

func TestExtractDashFields(t *testing.T) {
	d := components.BossDash{Phase: components.DashDashing, Countdown: 2.5}
	fields := ExtractFields(d)
	for _, f := range fields {
		switch f.Name {
		case "Velocity":
			t.Error("Velocity is tagged skip and should not be extracted")
		case "Phase":
			if got := FormatValue(f.Value, f.Options["fmt"]); got != "dashing" {
				t.Errorf("Phase formats as %q, want dashing", got)
			}
		case "Countdown":
			if got := FormatValue(f.Value, f.Options["fmt"]); got != "2.5s" {
				t.Errorf("Countdown formats as %q, want 2.5s", got)
			}
		}
	}
}

func TestExtractFieldsNonStruct(t *testing.T) {
	if fields := ExtractFields(42); fields != nil {
		t.Errorf("ExtractFields(int) = %v, want nil", fields)
	}
}

func TestGetFloatSlice(t *testing.T) {
	if v, ok := GetFloatSlice([3]float64{1, 2, 3}); !ok || len(v) != 3 || v[2] != 3 {
		t.Errorf("GetFloatSlice(array) = %v, %v", v, ok)
	}
	if _, ok := GetFloatSlice([]components.Limb{{}}); ok {
		t.Error("GetFloatSlice should reject struct slices")
	}
	if Len(3.0) != -1 {
		t.Error("Len of a scalar should be -1")
	}
}
