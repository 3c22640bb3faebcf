package gui

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	tooltipWidth  = 220
	tooltipGap    = 8
	tooltipMargin = 10
)

var tooltipBG = color.NRGBA{R: 44, G: 62, B: 80, A: 255}

type tooltip struct {
	win        fyne.Window
	setOpacity func(alpha float32)
	stop       chan struct{}
}

// apply sets the overlay opacity on the UI thread. A replacement may have
// closed this tooltip's window after the tick was queued, so the stop
// channel is rechecked before touching the native handle.
func (t *tooltip) apply(alpha float64) {
	select {
	case <-t.stop:
		return
	default:
	}
	if t.setOpacity != nil {
		t.setOpacity(float32(alpha))
	}
}

// tooltipManager shows one message overlay at a time above an anchor
// point. Showing a new message replaces the current one.
type tooltipManager struct {
	drv desktop.Driver

	mu      sync.Mutex
	current *tooltip
}

func newTooltipManager(drv desktop.Driver) *tooltipManager {
	return &tooltipManager{drv: drv}
}

// anchor reports the screen rectangle the tooltip should hover above.
type anchor func() (x, y, w int)

// Show displays msg above the anchor, fading in, holding for hold and
// fading out. Safe to call from any goroutine.
func (m *tooltipManager) Show(msg string, hold time.Duration, at anchor) {
	fyne.Do(func() {
		m.mu.Lock()
		if m.current != nil {
			close(m.current.stop)
			m.current.win.Close()
			m.current = nil
		}
		if m.drv == nil {
			m.mu.Unlock()
			return
		}

		win := m.drv.CreateSplashWindow()

		bg := canvas.NewRectangle(tooltipBG)
		bg.CornerRadius = 6
		label := widget.NewLabel(msg)
		label.Wrapping = fyne.TextWrapWord
		label.Alignment = fyne.TextAlignCenter

		win.SetContent(container.NewStack(bg, label))
		win.SetPadded(false)
		win.SetFixedSize(true)

		size := fyne.NewSize(tooltipWidth, tooltipHeight(msg))
		win.Resize(size)
		win.Show()

		t := &tooltip{win: win, stop: make(chan struct{})}
		if glfwWin := glfw.GetCurrentContext(); glfwWin != nil {
			t.setOpacity = glfwWin.SetOpacity
			glfwWin.SetAttrib(glfw.FocusOnShow, glfw.False)
			glfwWin.SetAttrib(glfw.Floating, glfw.True)
			glfwWin.SetOpacity(0)

			ax, ay, aw := at()
			px := ax + (aw-int(size.Width))/2
			py := ay - int(size.Height) - tooltipGap
			if px < tooltipMargin {
				px = tooltipMargin
			}
			if py < tooltipMargin {
				py = tooltipMargin
			}
			glfwWin.SetPos(px, py)
		}
		m.current = t
		m.mu.Unlock()

		go m.animate(t, hold)
	})
}

func (m *tooltipManager) animate(t *tooltip, hold time.Duration) {
	fade := newFader(hold)
	ticker := time.NewTicker(fadeTick)
	defer ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
		}
		alpha, done := fade.Tick()
		fyne.Do(func() { t.apply(alpha) })
		if done {
			break
		}
	}

	fyne.Do(func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		select {
		case <-t.stop:
			return
		default:
		}
		t.win.Close()
		if m.current == t {
			m.current = nil
		}
	})
}

// tooltipHeight estimates the wrapped label height for a fixed width.
func tooltipHeight(msg string) float32 {
	style := fyne.TextStyle{}
	textSize := theme.TextSize()
	full := fyne.MeasureText(msg, textSize, style)
	inner := float32(tooltipWidth) - 2*theme.InnerPadding()
	lines := int(full.Width/inner) + 1
	return float32(lines)*full.Height + 2*theme.InnerPadding() + float32(lines-1)*theme.LineSpacing()
}
