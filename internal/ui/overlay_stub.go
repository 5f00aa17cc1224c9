//go:build !ebiten

package ui

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(any, any, int) *Overlay { return &Overlay{} }

// Update is a no-op in the headless build.
func (o *Overlay) Update() {}

// ShowNotes is always false in the headless build.
func (o *Overlay) ShowNotes() bool { return false }

// ShowGrid is always false in the headless build.
func (o *Overlay) ShowGrid() bool { return false }

// Draw is a no-op in the headless build.
func (o *Overlay) Draw(any) {}
