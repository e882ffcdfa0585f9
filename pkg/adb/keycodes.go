package adb

import "strings"

// Android key codes used by `input keyevent`.
const (
	KeyCodeHome       = 3
	KeyCodeBack       = 4
	KeyCodeDpadUp     = 19
	KeyCodeDpadDown   = 20
	KeyCodeDpadLeft   = 21
	KeyCodeDpadRight  = 22
	KeyCodeDpadCenter = 23
	KeyCodeVolumeUp   = 24
	KeyCodeVolumeDown = 25
	KeyCodePower      = 26
	KeyCodeCamera     = 27
	KeyCodeTab        = 61
	KeyCodeSpace      = 62
	KeyCodeEnter      = 66
	KeyCodeDelete     = 67
	KeyCodeMenu       = 82
	KeyCodeSearch     = 84
	KeyCodeAppSwitch  = 187
	KeyCodePaste      = 279
)

// KeyCode maps a key name to its Android key code, or 0 when unknown.
func KeyCode(key string) int {
	switch strings.ToLower(key) {
	case "enter":
		return KeyCodeEnter
	case "back":
		return KeyCodeBack
	case "home":
		return KeyCodeHome
	case "menu":
		return KeyCodeMenu
	case "delete", "backspace":
		return KeyCodeDelete
	case "tab":
		return KeyCodeTab
	case "space":
		return KeyCodeSpace
	case "volume_up":
		return KeyCodeVolumeUp
	case "volume_down":
		return KeyCodeVolumeDown
	case "power":
		return KeyCodePower
	case "camera":
		return KeyCodeCamera
	case "search":
		return KeyCodeSearch
	case "app_switch", "recents":
		return KeyCodeAppSwitch
	case "paste":
		return KeyCodePaste
	case "dpad_up":
		return KeyCodeDpadUp
	case "dpad_down":
		return KeyCodeDpadDown
	case "dpad_left":
		return KeyCodeDpadLeft
	case "dpad_right":
		return KeyCodeDpadRight
	case "dpad_center":
		return KeyCodeDpadCenter
	default:
		return 0
	}
}
