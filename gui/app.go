package gui

import (
	"bytes"
	"image/png"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/zbango/mia/log"
)

const (
	initialOffsetX = 680
	initialOffsetY = 260
)

type App struct {
	fyneApp fyne.App
	window  fyne.Window
	button  *IconButton
	icons   Icons
	tips    *tooltipManager
	glfwWin *glfw.Window

	onToggle func()
	onReady  func()
	posX     int
	posY     int
}

func NewApp(onToggle, onReady func()) *App {
	return &App{onToggle: onToggle, onReady: onReady}
}

func Run(a *App) error {
	a.fyneApp = app.NewWithID("io.mia.widget")
	a.fyneApp.Settings().SetTheme(&darkTheme{})

	a.icons = LoadIcons()

	// Set up system tray using Fyne's built-in support
	if desk, ok := a.fyneApp.(desktop.App); ok {
		menu := fyne.NewMenu("mia",
			fyne.NewMenuItem("Quit", func() {
				a.fyneApp.Quit()
			}),
		)
		desk.SetSystemTrayMenu(menu)
		if res := trayResource(a.icons); res != nil {
			desk.SetSystemTrayIcon(res)
		}
	}

	// Get primary monitor work area for positioning
	var screenW, screenH int
	monitor := glfw.GetPrimaryMonitor()
	if monitor != nil {
		_, _, screenW, screenH = monitor.GetWorkarea()
	} else {
		screenW, screenH = 1920, 1080 // fallback
	}

	// Create frameless splash window on desktop
	var drv desktop.Driver
	if d, ok := a.fyneApp.Driver().(desktop.Driver); ok {
		drv = d
		a.window = d.CreateSplashWindow()
	} else {
		a.window = a.fyneApp.NewWindow("mia")
	}
	a.tips = newTooltipManager(drv)

	a.button = NewIconButton(a.icons.Listen, a.toggle, a.drag, a.Quit)

	a.window.SetContent(a.button)
	a.window.SetFixedSize(true)
	a.window.SetPadded(false)

	size := a.button.MinSize()
	a.window.Resize(size)

	// Bottom-right corner, clear of docks and panels
	a.posX = screenW - initialOffsetX
	a.posY = screenH - initialOffsetY
	if a.posX < tooltipMargin {
		a.posX = tooltipMargin
	}
	if a.posY < tooltipMargin {
		a.posY = tooltipMargin
	}

	fyne.Do(a.present)
	if a.onReady != nil {
		go a.onReady()
	}

	a.fyneApp.Run()
	return nil
}

// present positions and shows the main window. Runs on the UI thread.
func (a *App) present() {
	a.window.Show()
	if glfwWin := glfw.GetCurrentContext(); glfwWin != nil {
		a.glfwWin = glfwWin
		glfwWin.SetPos(a.posX, a.posY)
		glfwWin.SetAttrib(glfw.FocusOnShow, glfw.False)
		glfwWin.SetAttrib(glfw.Floating, glfw.True)
	}
}

func (a *App) Quit() {
	if a.fyneApp != nil {
		a.fyneApp.Quit()
	}
}

func (a *App) toggle() {
	if a.onToggle != nil {
		a.onToggle()
	}
}

// drag moves the borderless window by the pointer delta. Invoked from
// the event dispatch, so glfw calls are safe here.
func (a *App) drag(dx, dy float32) {
	if a.glfwWin == nil {
		return
	}
	x, y := a.glfwWin.GetPos()
	a.glfwWin.SetPos(x+int(dx), y+int(dy))
}

// anchorRect reports the main window rectangle for tooltip placement.
// Called on the UI thread by the tooltip manager.
func (a *App) anchorRect() (x, y, w int) {
	if a.glfwWin != nil {
		x, y = a.glfwWin.GetPos()
		w, _ = a.glfwWin.GetSize()
		return x, y, w
	}
	return a.posX, a.posY, int(a.button.MinSize().Width)
}

// EventSink implementation. Invoked from the session goroutines, so all
// UI work is forwarded through fyne.Do.

func (a *App) RecordingStarted() {
	fyne.Do(func() { a.button.SetIcon(a.icons.Stop) })
}

func (a *App) RecordingStopped() {
	fyne.Do(func() { a.button.SetIcon(a.icons.Listen) })
}

func (a *App) Notify(msg string, hold time.Duration) {
	a.tips.Show(msg, hold, a.anchorRect)
}

func trayResource(icons Icons) fyne.Resource {
	var buf bytes.Buffer
	if err := png.Encode(&buf, icons.Listen); err != nil {
		log.Warnf("tray icon encode failed: %v", err)
		return nil
	}
	return fyne.NewStaticResource("mia.png", buf.Bytes())
}
