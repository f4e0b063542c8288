package curved

import (
	"errors"
	"fmt"
)

// FieldType is the closed set of value kinds a form field can hold.
type FieldType uint8

const (
	FieldMissing FieldType = iota // no such field; Path names what was looked up
	FieldFloat
	FieldInt
	FieldBool
	FieldString
	FieldEnum
	FieldVector2
	FieldVector3
	FieldVector4
	FieldColor
)

func (t FieldType) String() string {
	switch t {
	case FieldMissing:
		return "missing"
	case FieldFloat:
		return "float"
	case FieldInt:
		return "int"
	case FieldBool:
		return "bool"
	case FieldString:
		return "string"
	case FieldEnum:
		return "enum"
	case FieldVector2:
		return "vector2"
	case FieldVector3:
		return "vector3"
	case FieldVector4:
		return "vector4"
	case FieldColor:
		return "color"
	}
	return fmt.Sprintf("FieldType(%d)", uint8(t))
}

// Errors returned by Form.Set.
var (
	ErrFieldMissing = errors.New("curved: field missing")
	ErrFieldType    = errors.New("curved: field type mismatch")
)

// FieldValue is a tagged variant holding one form value. Read it with the
// accessor matching Type; other accessors report false.
type FieldValue struct {
	Type FieldType
	// Path is set on Missing values to the name that was looked up.
	Path string

	num     [4]float64
	integer int
	boolean bool
	str     string
	options []string
}

// MissingValue returns the variant used for a field that does not exist.
func MissingValue(path string) FieldValue {
	return FieldValue{Type: FieldMissing, Path: path}
}

// FloatValue wraps a float.
func FloatValue(v float64) FieldValue {
	return FieldValue{Type: FieldFloat, num: [4]float64{v}}
}

// IntValue wraps an int.
func IntValue(v int) FieldValue {
	return FieldValue{Type: FieldInt, integer: v}
}

// BoolValue wraps a bool.
func BoolValue(v bool) FieldValue {
	return FieldValue{Type: FieldBool, boolean: v}
}

// StringValue wraps a string.
func StringValue(v string) FieldValue {
	return FieldValue{Type: FieldString, str: v}
}

// EnumValue wraps a choice among options. An index outside options is
// clamped to the nearest valid one; an empty option list yields index -1.
func EnumValue(index int, options []string) FieldValue {
	if len(options) == 0 {
		index = -1
	} else {
		index = min(max(index, 0), len(options)-1)
	}
	return FieldValue{Type: FieldEnum, integer: index, options: options}
}

// Vector2Value wraps a 2D vector.
func Vector2Value(v Vec2) FieldValue {
	return FieldValue{Type: FieldVector2, num: [4]float64{v.X, v.Y}}
}

// Vector3Value wraps a 3D vector.
func Vector3Value(x, y, z float64) FieldValue {
	return FieldValue{Type: FieldVector3, num: [4]float64{x, y, z}}
}

// Vector4Value wraps a 4D vector.
func Vector4Value(x, y, z, w float64) FieldValue {
	return FieldValue{Type: FieldVector4, num: [4]float64{x, y, z, w}}
}

// ColorValue wraps a color.
func ColorValue(c Color) FieldValue {
	return FieldValue{Type: FieldColor, num: [4]float64{c.R, c.G, c.B, c.A}}
}

// IsMissing reports whether v is the Missing variant.
func (v FieldValue) IsMissing() bool { return v.Type == FieldMissing }

// Float returns the float value.
func (v FieldValue) Float() (float64, bool) {
	return v.num[0], v.Type == FieldFloat
}

// Int returns the int value.
func (v FieldValue) Int() (int, bool) {
	return v.integer, v.Type == FieldInt
}

// Bool returns the bool value.
func (v FieldValue) Bool() (bool, bool) {
	return v.boolean, v.Type == FieldBool
}

// Text returns the string value.
func (v FieldValue) Text() (string, bool) {
	return v.str, v.Type == FieldString
}

// Enum returns the chosen index and the selected option.
func (v FieldValue) Enum() (int, string, bool) {
	if v.Type != FieldEnum || v.integer < 0 {
		return -1, "", v.Type == FieldEnum
	}
	return v.integer, v.options[v.integer], true
}

// Options returns the choices of an enum value.
func (v FieldValue) Options() []string { return v.options }

// Vector2 returns the 2D vector value.
func (v FieldValue) Vector2() (Vec2, bool) {
	return Vec2{v.num[0], v.num[1]}, v.Type == FieldVector2
}

// Vector returns the components of a vector or color value and how many of
// them are meaningful.
func (v FieldValue) Vector() ([4]float64, int, bool) {
	switch v.Type {
	case FieldVector2:
		return v.num, 2, true
	case FieldVector3:
		return v.num, 3, true
	case FieldVector4, FieldColor:
		return v.num, 4, true
	}
	return [4]float64{}, 0, false
}

// Color returns the color value.
func (v FieldValue) Color() (Color, bool) {
	return Color{v.num[0], v.num[1], v.num[2], v.num[3]}, v.Type == FieldColor
}

// Field is a named form entry.
type Field struct {
	Name  string
	Value FieldValue
}

// Form is an ordered set of named fields edited in a modal dialog.
type Form struct {
	Title  string
	Fields []Field
}

// Add appends a field.
func (f *Form) Add(name string, v FieldValue) {
	f.Fields = append(f.Fields, Field{Name: name, Value: v})
}

// Find returns the value of a field, or the Missing variant when there is no
// field with that name.
func (f *Form) Find(name string) FieldValue {
	for _, fl := range f.Fields {
		if fl.Name == name {
			return fl.Value
		}
	}
	return MissingValue(name)
}

// Set replaces the value of an existing field. The new value must have the
// field's type; for enums the option list is kept and only the index changes.
func (f *Form) Set(name string, v FieldValue) error {
	for i := range f.Fields {
		fl := &f.Fields[i]
		if fl.Name != name {
			continue
		}
		if fl.Value.Type != v.Type {
			return fmt.Errorf("%w: %s is %s, got %s", ErrFieldType, name, fl.Value.Type, v.Type)
		}
		if v.Type == FieldEnum {
			v = EnumValue(v.integer, fl.Value.options)
		}
		fl.Value = v
		return nil
	}
	return fmt.Errorf("%w: %s", ErrFieldMissing, name)
}

// Float reads a float field.
func (f *Form) Float(name string) (float64, error) {
	v := f.Find(name)
	if v.IsMissing() {
		return 0, fmt.Errorf("%w: %s", ErrFieldMissing, name)
	}
	x, ok := v.Float()
	if !ok {
		return 0, fmt.Errorf("%w: %s is %s, want float", ErrFieldType, name, v.Type)
	}
	return x, nil
}
