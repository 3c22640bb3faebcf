package gui

import (
	"image"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

const (
	buttonPadding   = 16
	quitDoubleClick = 400 * time.Millisecond
)

// IconButton is the single control of the widget: tap toggles recording,
// dragging moves the borderless window, a double secondary-tap quits.
type IconButton struct {
	widget.BaseWidget

	mu   sync.Mutex
	icon image.Image

	onTap  func()
	onDrag func(dx, dy float32)
	onQuit func()

	lastSecondary time.Time
}

var _ fyne.Tappable = (*IconButton)(nil)
var _ fyne.SecondaryTappable = (*IconButton)(nil)
var _ fyne.Draggable = (*IconButton)(nil)

func NewIconButton(icon image.Image, onTap func(), onDrag func(dx, dy float32), onQuit func()) *IconButton {
	b := &IconButton{icon: icon, onTap: onTap, onDrag: onDrag, onQuit: onQuit}
	b.ExtendBaseWidget(b)
	return b
}

// SetIcon swaps the displayed image. Call from the UI thread.
func (b *IconButton) SetIcon(icon image.Image) {
	b.mu.Lock()
	b.icon = icon
	b.mu.Unlock()
	b.Refresh()
}

func (b *IconButton) currentIcon() image.Image {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.icon
}

func (b *IconButton) Tapped(*fyne.PointEvent) {
	if b.onTap != nil {
		b.onTap()
	}
}

func (b *IconButton) TappedSecondary(*fyne.PointEvent) {
	now := time.Now()
	if now.Sub(b.lastSecondary) <= quitDoubleClick {
		if b.onQuit != nil {
			b.onQuit()
		}
		return
	}
	b.lastSecondary = now
}

func (b *IconButton) Dragged(ev *fyne.DragEvent) {
	if b.onDrag != nil {
		b.onDrag(ev.Dragged.DX, ev.Dragged.DY)
	}
}

func (b *IconButton) DragEnd() {}

func (b *IconButton) MinSize() fyne.Size {
	icon := b.currentIcon()
	bounds := icon.Bounds()
	return fyne.NewSize(float32(bounds.Dx()+buttonPadding), float32(bounds.Dy()+buttonPadding))
}

func (b *IconButton) CreateRenderer() fyne.WidgetRenderer {
	img := canvas.NewImageFromImage(b.currentIcon())
	img.FillMode = canvas.ImageFillContain
	return &iconButtonRenderer{button: b, img: img}
}

type iconButtonRenderer struct {
	button *IconButton
	img    *canvas.Image
}

func (r *iconButtonRenderer) Layout(size fyne.Size) {
	r.img.Move(fyne.NewPos(buttonPadding/2, buttonPadding/2))
	r.img.Resize(size.SubtractWidthHeight(buttonPadding, buttonPadding))
}

func (r *iconButtonRenderer) MinSize() fyne.Size {
	return r.button.MinSize()
}

func (r *iconButtonRenderer) Refresh() {
	r.img.Image = r.button.currentIcon()
	r.img.Refresh()
}

func (r *iconButtonRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.img}
}

func (r *iconButtonRenderer) Destroy() {}
