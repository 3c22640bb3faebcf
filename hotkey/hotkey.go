// Package hotkey provides the global Ctrl+Shift+Space binding that
// toggles recording without focusing the widget.
package hotkey

// Hotkey watches a fixed key combination system-wide.
type Hotkey interface {
	Register() error
	Unregister()
	Keydown() <-chan struct{}
	Keyup() <-chan struct{}
}

// Watch invokes fn on every press until stop is closed. The key-up
// events are drained so slow consumers never wedge the backend.
func Watch(hk Hotkey, stop <-chan struct{}, fn func()) {
	for {
		select {
		case <-stop:
			return
		case <-hk.Keydown():
			fn()
		case <-hk.Keyup():
		}
	}
}
