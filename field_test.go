package curved

import (
	"errors"
	"testing"
)

func TestFieldValue_Accessors(t *testing.T) {
	if v, ok := FloatValue(1.5).Float(); !ok || v != 1.5 {
		t.Errorf("Float = %v %v", v, ok)
	}
	if _, ok := FloatValue(1.5).Int(); ok {
		t.Error("a float is not an int")
	}
	if v, ok := IntValue(3).Int(); !ok || v != 3 {
		t.Errorf("Int = %v %v", v, ok)
	}
	if v, ok := BoolValue(true).Bool(); !ok || !v {
		t.Errorf("Bool = %v %v", v, ok)
	}
	if v, ok := StringValue("x").Text(); !ok || v != "x" {
		t.Errorf("Text = %q %v", v, ok)
	}
	if v, ok := Vector2Value(Vec2{1, 2}).Vector2(); !ok || v != (Vec2{1, 2}) {
		t.Errorf("Vector2 = %v %v", v, ok)
	}
	c := Color{0.1, 0.2, 0.3, 0.4}
	if v, ok := ColorValue(c).Color(); !ok || v != c {
		t.Errorf("Color = %v %v", v, ok)
	}

	tests := []struct {
		v    FieldValue
		want int
	}{
		{Vector2Value(Vec2{1, 2}), 2},
		{Vector3Value(1, 2, 3), 3},
		{Vector4Value(1, 2, 3, 4), 4},
		{ColorValue(c), 4},
		{FloatValue(1), 0},
	}
	for _, tt := range tests {
		if _, n, _ := tt.v.Vector(); n != tt.want {
			t.Errorf("%s: %d components, want %d", tt.v.Type, n, tt.want)
		}
	}
}

func TestEnumValue_Clamps(t *testing.T) {
	opts := []string{"a", "b", "c"}
	tests := []struct {
		index int
		want  int
		name  string
	}{
		{-4, 0, "a"},
		{1, 1, "b"},
		{9, 2, "c"},
	}
	for _, tt := range tests {
		i, name, ok := EnumValue(tt.index, opts).Enum()
		if !ok || i != tt.want || name != tt.name {
			t.Errorf("EnumValue(%d) = %d %q %v, want %d %q", tt.index, i, name, ok, tt.want, tt.name)
		}
	}
	if i, _, ok := EnumValue(1, nil).Enum(); !ok || i != -1 {
		t.Errorf("empty enum = %d %v, want -1", i, ok)
	}
}

func TestForm_FindSet(t *testing.T) {
	var f Form
	f.Add("time", FloatValue(1))
	f.Add("mode", EnumValue(0, []string{"auto", "linear"}))

	if v := f.Find("nope"); !v.IsMissing() || v.Path != "nope" {
		t.Errorf("Find missing = %+v", v)
	}
	if err := f.Set("time", FloatValue(2)); err != nil {
		t.Fatal(err)
	}
	if x, err := f.Float("time"); err != nil || x != 2 {
		t.Errorf("time = %v %v", x, err)
	}

	if err := f.Set("time", IntValue(2)); !errors.Is(err, ErrFieldType) {
		t.Errorf("expected ErrFieldType, got %v", err)
	}
	if err := f.Set("nope", FloatValue(2)); !errors.Is(err, ErrFieldMissing) {
		t.Errorf("expected ErrFieldMissing, got %v", err)
	}
	if _, err := f.Float("nope"); !errors.Is(err, ErrFieldMissing) {
		t.Errorf("expected ErrFieldMissing, got %v", err)
	}
	if _, err := f.Float("mode"); !errors.Is(err, ErrFieldType) {
		t.Errorf("expected ErrFieldType, got %v", err)
	}

	// Enum sets keep the field's options.
	if err := f.Set("mode", EnumValue(5, nil)); err != nil {
		t.Fatal(err)
	}
	if i, name, _ := f.Find("mode").Enum(); i != 0 {
		t.Errorf("mode = %d %q, want 0", i, name)
	}
}

func TestFieldType_String(t *testing.T) {
	if FieldColor.String() != "color" || FieldMissing.String() != "missing" {
		t.Error("unexpected FieldType names")
	}
	if got := FieldType(99).String(); got != "FieldType(99)" {
		t.Errorf("got %q", got)
	}
}
