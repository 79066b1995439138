package pixwin

// Key is a native key code. Values are forwarded unmodified from the
// windowing subsystem; the named constants match GLFW's codes.
type Key int

const (
	KeyUnknown   Key = -1
	KeySpace     Key = 32
	KeyA         Key = 65
	KeyC         Key = 67
	KeyQ         Key = 81
	KeyS         Key = 83
	KeyV         Key = 86
	KeyEscape    Key = 256
	KeyEnter     Key = 257
	KeyTab       Key = 258
	KeyBackspace Key = 259
	KeyRight     Key = 262
	KeyLeft      Key = 263
	KeyDown      Key = 264
	KeyUp        Key = 265
	KeyF1        Key = 290
	KeyF12       Key = 301
)

// Action is a key or mouse button transition.
type Action int

const (
	Release Action = 0
	Press   Action = 1
	Repeat  Action = 2
)

// String returns a human-readable name for an action.
func (a Action) String() string {
	switch a {
	case Release:
		return "release"
	case Press:
		return "press"
	case Repeat:
		return "repeat"
	default:
		return "?"
	}
}

// ModifierKey is a bit set of held modifier keys.
type ModifierKey int

const (
	ModShift    ModifierKey = 0x0001
	ModControl  ModifierKey = 0x0002
	ModAlt      ModifierKey = 0x0004
	ModSuper    ModifierKey = 0x0008
	ModCapsLock ModifierKey = 0x0010
	ModNumLock  ModifierKey = 0x0020
)

// Has reports whether all bits of m are set.
func (k ModifierKey) Has(m ModifierKey) bool {
	return k&m == m
}

// MouseButton is a native mouse button index.
type MouseButton int

const (
	MouseButtonLeft   MouseButton = 0
	MouseButtonRight  MouseButton = 1
	MouseButtonMiddle MouseButton = 2
)

// KeyName returns a human-readable name for a key.
func KeyName(k Key) string {
	names := map[Key]string{
		KeyUnknown:   "--",
		KeySpace:     "Space",
		KeyA:         "A",
		KeyC:         "C",
		KeyQ:         "Q",
		KeyS:         "S",
		KeyV:         "V",
		KeyEscape:    "Esc",
		KeyEnter:     "Enter",
		KeyTab:       "Tab",
		KeyBackspace: "Backspace",
		KeyRight:     "Right",
		KeyLeft:      "Left",
		KeyDown:      "Down",
		KeyUp:        "Up",
		KeyF1:        "F1",
		KeyF12:       "F12",
	}
	if name, ok := names[k]; ok {
		return name
	}
	return "?"
}
