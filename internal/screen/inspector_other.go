//go:build !windows

package screen

type systemInspector struct{}

// NewSystemInspector returns an inspector that always reports itself
// unavailable, so the classifier falls back to normal mode.
func NewSystemInspector() Inspector {
	return systemInspector{}
}

func (systemInspector) ActiveWindowBounds() (Rect, bool, error) {
	return Rect{}, false, ErrInspectorUnavailable
}

func (systemInspector) ScreenBounds() (Rect, error) {
	return Rect{}, ErrInspectorUnavailable
}
