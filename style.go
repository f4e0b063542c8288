package curved

// Style holds the colors used by the editor panels. It is passed to panels
// explicitly; there is no global style registry.
type Style struct {
	Background     Color `yaml:"background"`
	Text           Color `yaml:"text"`
	Tick           Color `yaml:"tick"`
	CenterLine     Color `yaml:"centerLine"`
	FrameMarker    Color `yaml:"frameMarker"`
	Keyframe       Color `yaml:"keyframe"`
	KeyframeActive Color `yaml:"keyframeActive"`
	Tangent        Color `yaml:"tangent"`
	Event          Color `yaml:"event"`
	EventActive    Color `yaml:"eventActive"`
	Sidebar        Color `yaml:"sidebar"`
}

// DefaultStyle returns the dark editor style.
func DefaultStyle() Style {
	return Style{
		Background:     Color{0.16, 0.16, 0.16, 1},
		Text:           Color{0.85, 0.85, 0.85, 1},
		Tick:           Color{0.55, 0.55, 0.55, 1},
		CenterLine:     Color{0.35, 0.35, 0.35, 1},
		FrameMarker:    Color{0.93, 0.2, 0.2, 1},
		Keyframe:       Color{0.1, 0.1, 0.1, 1},
		KeyframeActive: Color{0.95, 0.75, 0.15, 1},
		Tangent:        Color{0.75, 0.75, 0.75, 1},
		Event:          Color{0.6, 0.6, 0.9, 1},
		EventActive:    Color{0.95, 0.75, 0.15, 1},
		Sidebar:        Color{0.2, 0.2, 0.2, 1},
	}
}

// Draw depths shared by the panels. Lower depths are painted on top.
const (
	depthBackground uint8 = 200
	depthTicks      uint8 = 150
	depthCurve      uint8 = 120
	depthTangent    uint8 = 110
	depthKeyframe   uint8 = 100
	depthText       uint8 = 90
	depthMarker     uint8 = 80
)
