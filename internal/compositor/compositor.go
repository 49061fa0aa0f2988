package compositor

import "strconv"

// Orientation selects the framebuffer addressing mode a display
// controller expects.
type Orientation int

const (
	// RowMajor addresses pixels as y*256+x.
	RowMajor Orientation = iota
	// ColumnMajor addresses pixels as x*240+y ("flip-xy"), for display
	// controllers that mirror X in hardware to suppress a diagonal tear.
	ColumnMajor
)

const (
	// FrameWidth is the visible NES framebuffer width in pixels.
	FrameWidth = 256
	// FrameHeight is the visible NES framebuffer height in pixels.
	FrameHeight = 240
	// defaultTextColor is the fixed RGB565 color text overlay glyphs draw in.
	defaultTextColor = 0xFFFF
)

// PixelSource supplies the PPU's pixel pipeline result for one column of
// the scanline currently being composited. The compositor never reaches
// into PPU internals directly; this is the seam between the PPU's pixel
// pipeline and whatever consumes its output.
type PixelSource interface {
	Pixel(x, y int) uint16
}

// Compositor walks one visible scanline at a time, pulling pixels from a
// PixelSource and overlaying any text boxes whose bounding rectangle
// covers the current column.
type Compositor struct {
	Orientation   Orientation
	TextColor     uint16
	boxes         []*TextBox
	skippedFrames uint64
}

// New creates a Compositor with the given framebuffer addressing mode.
func New(orientation Orientation) *Compositor {
	return &Compositor{Orientation: orientation, TextColor: defaultTextColor}
}

// AddBox registers a text box to be composited on every subsequent frame.
func (c *Compositor) AddBox(tb *TextBox) {
	c.boxes = append(c.boxes, tb)
}

// ResetBoxes rewinds every registered box's scanout cursor. Call once at
// the start of each frame, before RenderScanline(fb, 0, ...).
func (c *Compositor) ResetBoxes() {
	for _, tb := range c.boxes {
		tb.Reset()
	}
}

// Address computes the framebuffer slot for pixel (x, y) under the
// compositor's orientation.
func (c *Compositor) Address(x, y int) int {
	if c.Orientation == ColumnMajor {
		return x*FrameHeight + y
	}
	return y*FrameWidth + x
}

// RenderScanline composites one visible scanline (0..239) into fb,
// pulling each column's pixel from src and preempting it with the text
// color wherever a registered box's glyph bit fires at that column.
// Boxes are walked in registration order so cursor advance stays
// deterministic when boxes overlap in y.
func (c *Compositor) RenderScanline(fb []uint16, y int, src PixelSource) {
	for x := 0; x < FrameWidth; x++ {
		pixel := src.Pixel(x, y)
		hit := false
		for _, tb := range c.boxes {
			if tb.InText(uint16(x), uint16(y)) != 0 {
				hit = true
			}
		}
		if hit {
			pixel = c.TextColor
		}
		fb[c.Address(x, y)] = pixel
	}
}

// IncrementSkippedFrames records a dropped frame. Frame budget failures
// are surfaced only through this counter, which a caller typically feeds
// into a status TextBox line (see SkippedFramesLine).
func (c *Compositor) IncrementSkippedFrames() {
	c.skippedFrames++
}

// SkippedFrames returns the running dropped-frame count.
func (c *Compositor) SkippedFrames() uint64 {
	return c.skippedFrames
}

// SkippedFramesLine renders the current skipped-frame count as the fixed
// on-screen status string. The console font only covers the characters
// this line needs (digits, ':', '-', space, and the letters of "FRAME SKIP").
func (c *Compositor) SkippedFramesLine() string {
	return "FRAME SKIP:" + strconv.FormatUint(c.skippedFrames, 10)
}
