package curved

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrClipImported is returned when writing curves back into a clip that was
// imported from an external file. Only events of imported clips persist.
var ErrClipImported = errors.New("curved: clip is imported")

// CurveFlags mark float curves that drive morph shapes.
type CurveFlags uint8

const (
	CurveMorphFrame CurveFlags = 1 << iota
	CurveMorphWeight
)

// Vector3Curve animates a position, rotation or scale with one curve per
// component. Name is the path of the animated object.
type Vector3Curve struct {
	Name string     `json:"name"`
	X    []Keyframe `json:"x"`
	Y    []Keyframe `json:"y"`
	Z    []Keyframe `json:"z"`
}

// FloatCurve animates a single float property. Names ending in .x/.y/.z/.w
// or .r/.g/.b/.a are components of one vector or color field.
type FloatCurve struct {
	Name  string     `json:"name"`
	Flags CurveFlags `json:"flags,omitempty"`
	Keys  []Keyframe `json:"keys"`
}

// Clip is an animation clip resource.
type Clip struct {
	Name       string           `json:"name"`
	SampleRate int              `json:"sampleRate"`
	Imported   bool             `json:"imported,omitempty"`
	Position   []Vector3Curve   `json:"position,omitempty"`
	Rotation   []Vector3Curve   `json:"rotation,omitempty"`
	Scale      []Vector3Curve   `json:"scale,omitempty"`
	Float      []FloatCurve     `json:"float,omitempty"`
	Events     []AnimationEvent `json:"events,omitempty"`
}

// Vector3Tangents holds the tangent modes of a Vector3Curve, one per key.
type Vector3Tangents struct {
	Name string        `yaml:"name"`
	X    []TangentMode `yaml:"x"`
	Y    []TangentMode `yaml:"y"`
	Z    []TangentMode `yaml:"z"`
}

// FloatTangents holds the tangent modes of a FloatCurve, one per key.
type FloatTangents struct {
	Name  string        `yaml:"name"`
	Modes []TangentMode `yaml:"modes"`
}

// ClipTangents is the editor metadata stored next to a clip: the tangent
// modes of every curve, matched by name.
type ClipTangents struct {
	Position []Vector3Tangents `yaml:"position,omitempty"`
	Rotation []Vector3Tangents `yaml:"rotation,omitempty"`
	Scale    []Vector3Tangents `yaml:"scale,omitempty"`
	Float    []FloatTangents   `yaml:"float,omitempty"`
}

// FieldCurves is the set of curves animating one field.
type FieldCurves struct {
	Type   FieldType
	Curves []CurveInfo
	// Property is set for curves animating a script property, as opposed to
	// imported curves and morph shapes.
	Property bool
}

// ClipInfo is the editable form of a clip: curves grouped by the field they
// animate, keyed by property path.
type ClipInfo struct {
	Name       string
	Imported   bool
	SampleRate int
	Events     []AnimationEvent

	paths  []string
	fields map[string]FieldCurves
}

type suffixInfo struct {
	elem     int
	isVector bool
}

var propertySuffixes = map[string]suffixInfo{
	".x": {0, true}, ".y": {1, true}, ".z": {2, true}, ".w": {3, true},
	".r": {0, false}, ".g": {1, false}, ".b": {2, false}, ".a": {3, false},
}

// NewClipInfo groups the curves of clip by field. Vector3 curves map to
// "<name>/Position", "<name>/Rotation" and "<name>/Scale"; float curves
// sharing a path up to a component suffix merge into one vector or color
// field; morph curves go under "MorphShapes/Frames/" or
// "MorphShapes/Weight/". Every curve gets a distinct color. tangents may be
// nil.
func NewClipInfo(clip *Clip, tangents *ClipTangents) *ClipInfo {
	if tangents == nil {
		tangents = &ClipTangents{}
	}
	info := &ClipInfo{
		Name:       clip.Name,
		Imported:   clip.Imported,
		SampleRate: clip.SampleRate,
		Events:     append([]AnimationEvent(nil), clip.Events...),
		fields:     make(map[string]FieldCurves),
	}

	colorIdx := 0
	newCurve := func(keys []Keyframe, modes []TangentMode) CurveInfo {
		c := CurveInfo{Curve: NewCurve(keys, modes), Color: UniqueColor(colorIdx)}
		colorIdx++
		return c
	}

	loadVector3 := func(curves []Vector3Curve, tans []Vector3Tangents, sub string) {
		for _, vc := range curves {
			var t Vector3Tangents
			for _, te := range tans {
				if te.Name == vc.Name {
					t = te
					break
				}
			}
			info.add(strings.TrimRight(vc.Name, "/")+sub, FieldCurves{
				Type: FieldVector3,
				Curves: []CurveInfo{
					newCurve(vc.X, t.X),
					newCurve(vc.Y, t.Y),
					newCurve(vc.Z, t.Z),
				},
				Property: !info.Imported,
			})
		}
	}
	loadVector3(clip.Position, tangents.Position, "/Position")
	loadVector3(clip.Rotation, tangents.Rotation, "/Rotation")
	loadVector3(clip.Scale, tangents.Scale, "/Scale")

	// Group float curves by path without the component suffix.
	type slot struct {
		curve    int
		isVector bool
	}
	var order []string
	groups := make(map[string]*[4]*slot)
	for i, fc := range clip.Float {
		key, elem, isVector := fc.Name, 0, false
		if len(fc.Name) >= 2 {
			if si, ok := propertySuffixes[fc.Name[len(fc.Name)-2:]]; ok {
				key, elem, isVector = fc.Name[:len(fc.Name)-2], si.elem, si.isVector
			}
		}
		g, ok := groups[key]
		if !ok {
			g = new([4]*slot)
			groups[key] = g
			order = append(order, key)
		}
		g[elem] = &slot{curve: i, isVector: isVector}
	}

	for _, key := range order {
		var slots []*slot
		for _, s := range groups[key] {
			if s != nil {
				slots = append(slots, s)
			}
		}

		fc := FieldCurves{}
		switch len(slots) {
		case 1:
			fc.Type = FieldFloat
		case 2:
			fc.Type = FieldVector2
		case 3:
			fc.Type = FieldVector3
		default:
			if slots[0].isVector {
				fc.Type = FieldVector4
			} else {
				fc.Type = FieldColor
			}
		}

		path, morph := key, false
		for _, s := range slots {
			src := clip.Float[s.curve]
			var modes []TangentMode
			for _, te := range tangents.Float {
				if te.Name == src.Name {
					modes = te.Modes
					break
				}
			}
			fc.Curves = append(fc.Curves, newCurve(src.Keys, modes))

			switch {
			case src.Flags&CurveMorphFrame != 0:
				path, morph = "MorphShapes/Frames/"+key, true
			case src.Flags&CurveMorphWeight != 0:
				path, morph = "MorphShapes/Weight/"+key, true
			}
		}
		fc.Property = !info.Imported && !morph
		info.add(path, fc)
	}
	return info
}

func (c *ClipInfo) add(path string, fc FieldCurves) {
	if _, ok := c.fields[path]; !ok {
		c.paths = append(c.paths, path)
	}
	c.fields[path] = fc
}

// Paths returns the field paths in load order.
func (c *ClipInfo) Paths() []string { return c.paths }

// Field returns the curves of the field at path.
func (c *ClipInfo) Field(path string) (FieldCurves, bool) {
	fc, ok := c.fields[path]
	return fc, ok
}

// SetField adds or replaces the curves of a field.
func (c *ClipInfo) SetField(path string, fc FieldCurves) {
	if c.fields == nil {
		c.fields = make(map[string]FieldCurves)
	}
	c.add(path, fc)
}

// Curves returns every curve of every field, in path order.
func (c *ClipInfo) Curves() []CurveInfo {
	var out []CurveInfo
	for _, p := range c.paths {
		out = append(out, c.fields[p].Curves...)
	}
	return out
}

// IsMorphShapeCurve reports whether path names a morph shape frame or weight
// curve, i.e. ends in "MorphShapes/Frames/<name>" or
// "MorphShapes/Weight/<name>".
func IsMorphShapeCurve(path string) bool {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return false
	}
	entries := strings.Split(trimmed, "/")
	n := len(entries)
	if n < 3 || entries[n-3] != "MorphShapes" {
		return false
	}
	return entries[n-2] == "Weight" || entries[n-2] == "Frames"
}

// Apply converts the edited curves back into a clip and its tangent
// metadata. It fails with ErrClipImported for imported clips.
func (c *ClipInfo) Apply() (*Clip, *ClipTangents, error) {
	if c.Imported {
		return nil, nil, fmt.Errorf("%w: %s", ErrClipImported, c.Name)
	}
	clip := &Clip{
		Name:       c.Name,
		SampleRate: c.SampleRate,
		Events:     append([]AnimationEvent(nil), c.Events...),
	}
	tans := &ClipTangents{}

	keysOf := func(ci CurveInfo) []Keyframe { return append([]Keyframe(nil), ci.Curve.Keyframes()...) }
	modesOf := func(ci CurveInfo) []TangentMode { return append([]TangentMode(nil), ci.Curve.TangentModes()...) }

	for _, path := range c.paths {
		fc := c.fields[path]
		last := path[strings.LastIndex(path, "/")+1:]

		switch last {
		case "Position", "Rotation", "Scale":
			if len(fc.Curves) < 3 {
				return nil, nil, fmt.Errorf("curved: apply clip %s: %s has %d curves, want 3", c.Name, path, len(fc.Curves))
			}
			name := strings.TrimSuffix(path, "/"+last)
			vc := Vector3Curve{Name: name, X: keysOf(fc.Curves[0]), Y: keysOf(fc.Curves[1]), Z: keysOf(fc.Curves[2])}
			vt := Vector3Tangents{Name: name, X: modesOf(fc.Curves[0]), Y: modesOf(fc.Curves[1]), Z: modesOf(fc.Curves[2])}
			switch last {
			case "Position":
				clip.Position = append(clip.Position, vc)
				tans.Position = append(tans.Position, vt)
			case "Rotation":
				clip.Rotation = append(clip.Rotation, vc)
				tans.Rotation = append(tans.Rotation, vt)
			default:
				clip.Scale = append(clip.Scale, vc)
				tans.Scale = append(tans.Scale, vt)
			}
			continue
		}

		addFloat := func(idx int, name string, flags CurveFlags) {
			if idx >= len(fc.Curves) {
				return
			}
			clip.Float = append(clip.Float, FloatCurve{Name: name, Flags: flags, Keys: keysOf(fc.Curves[idx])})
			tans.Float = append(tans.Float, FloatTangents{Name: name, Modes: modesOf(fc.Curves[idx])})
		}

		var suffixes []string
		switch fc.Type {
		case FieldVector2:
			suffixes = []string{".x", ".y"}
		case FieldVector3:
			suffixes = []string{".x", ".y", ".z"}
		case FieldVector4:
			suffixes = []string{".x", ".y", ".z", ".w"}
		case FieldColor:
			suffixes = []string{".r", ".g", ".b", ".a"}
		case FieldFloat, FieldInt, FieldBool:
			name, flags := path, CurveFlags(0)
			if IsMorphShapeCurve(path) {
				entries := strings.Split(strings.Trim(path, "/"), "/")
				if entries[len(entries)-2] == "Weight" {
					flags = CurveMorphWeight
				} else {
					flags = CurveMorphFrame
				}
				name = entries[len(entries)-1]
			}
			addFloat(0, name, flags)
		}
		for i, s := range suffixes {
			addFloat(i, path+s, 0)
		}
	}
	return clip, tans, nil
}

// SetClip loads a clip into the editor: its curves, events and sample rate.
// Imported clips are read-only.
func (e *Editor) SetClip(info *ClipInfo) {
	e.SetReadOnly(info.Imported)
	if info.SampleRate > 0 {
		e.applyFPS(info.SampleRate)
	}
	e.SetEvents(info.Events)
	e.SetCurves(info.Curves())
}

// CommitClip copies the editor's events back into info. Curves are shared
// with the editor and need no copy.
func (e *Editor) CommitClip(info *ClipInfo) {
	info.Events = e.Events()
}

const (
	clipExt     = ".clip.json"
	metadataExt = ".editor.yaml"
)

// Library stores clips in a directory: "<name>.clip.json" holds the clip and
// "<name>.editor.yaml" its tangent metadata.
type Library struct {
	Dir string
}

func (l Library) clipPath(name string) string     { return filepath.Join(l.Dir, name+clipExt) }
func (l Library) metadataPath(name string) string { return filepath.Join(l.Dir, name+metadataExt) }

// List returns the names of the stored clips, sorted.
func (l Library) List() ([]string, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, fmt.Errorf("curved: list clips in %s: %w", l.Dir, err)
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), clipExt) {
			names = append(names, strings.TrimSuffix(entry.Name(), clipExt))
		}
	}
	sort.Strings(names)
	return names, nil
}

// ReadClip reads the clip resource only.
func (l Library) ReadClip(name string) (*Clip, error) {
	data, err := os.ReadFile(l.clipPath(name))
	if err != nil {
		return nil, fmt.Errorf("curved: load clip %s: %w", name, err)
	}
	var clip Clip
	if err := json.Unmarshal(data, &clip); err != nil {
		return nil, fmt.Errorf("curved: parse clip %s: %w", name, err)
	}
	if clip.Name == "" {
		clip.Name = name
	}
	return &clip, nil
}

// ReadTangents reads the tangent metadata of a clip. A missing file yields
// empty metadata.
func (l Library) ReadTangents(name string) (*ClipTangents, error) {
	data, err := os.ReadFile(l.metadataPath(name))
	if errors.Is(err, fs.ErrNotExist) {
		return &ClipTangents{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("curved: load tangents %s: %w", name, err)
	}
	var tans ClipTangents
	if err := yaml.Unmarshal(data, &tans); err != nil {
		return nil, fmt.Errorf("curved: parse tangents %s: %w", name, err)
	}
	return &tans, nil
}

// Load reads a clip and its metadata into an editable ClipInfo.
func (l Library) Load(name string) (*ClipInfo, error) {
	clip, err := l.ReadClip(name)
	if err != nil {
		return nil, err
	}
	tans, err := l.ReadTangents(name)
	if err != nil {
		return nil, err
	}
	info := NewClipInfo(clip, tans)
	Logger().Info("clip loaded",
		slog.String("clip", name),
		slog.Int("fields", len(info.paths)),
		slog.Int("events", len(info.Events)),
		slog.Bool("imported", info.Imported))
	return info, nil
}

// Save writes info back. Imported clips only persist their events; other
// clips write curves, events and tangent metadata.
func (l Library) Save(info *ClipInfo) error {
	if info.Imported {
		clip, err := l.ReadClip(info.Name)
		if err != nil {
			return err
		}
		clip.Events = append([]AnimationEvent(nil), info.Events...)
		if err := l.writeClip(clip); err != nil {
			return err
		}
		Logger().Info("clip events saved", slog.String("clip", info.Name), slog.Int("events", len(info.Events)))
		return nil
	}

	clip, tans, err := info.Apply()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return fmt.Errorf("curved: save clip %s: %w", info.Name, err)
	}
	if err := l.writeClip(clip); err != nil {
		return err
	}
	data, err := yaml.Marshal(tans)
	if err != nil {
		return fmt.Errorf("curved: encode tangents %s: %w", info.Name, err)
	}
	if err := os.WriteFile(l.metadataPath(info.Name), data, 0o644); err != nil {
		return fmt.Errorf("curved: save tangents %s: %w", info.Name, err)
	}
	Logger().Info("clip saved", slog.String("clip", info.Name), slog.Int("fields", len(info.paths)))
	return nil
}

func (l Library) writeClip(clip *Clip) error {
	data, err := json.MarshalIndent(clip, "", "  ")
	if err != nil {
		return fmt.Errorf("curved: encode clip %s: %w", clip.Name, err)
	}
	if err := os.WriteFile(l.clipPath(clip.Name), data, 0o644); err != nil {
		return fmt.Errorf("curved: save clip %s: %w", clip.Name, err)
	}
	return nil
}
