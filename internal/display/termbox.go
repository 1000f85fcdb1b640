package display

import "github.com/nsf/termbox-go"

// TermboxSink renders the 64x32 monochrome framebuffer as a terminal grid,
// two cells wide per pixel so the display reads roughly square in a
// standard terminal font. Grounded on the terminal CHIP-8 renderer found in
// the retrieval pack (a termbox.SetCell/Flush loop over a 64x32 byte grid).
type TermboxSink struct{}

func (TermboxSink) Present(fb [FrameBytes]byte) error {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			bg := termbox.ColorBlack
			if Pixel(fb, x, y) {
				bg = termbox.ColorWhite
			}
			termbox.SetCell(x*2, y, ' ', termbox.ColorDefault, bg)
			termbox.SetCell(x*2+1, y, ' ', termbox.ColorDefault, bg)
		}
	}
	return termbox.Flush()
}
