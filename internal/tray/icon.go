package tray

import "encoding/binary"

// icon builds a 16x16 solid-glyph ICO in memory: a filled rounded
// square evoking a taskbar pane. Composing it here keeps the binary
// free of asset files.
func icon() []byte {
	const size = 16
	const bmpHeader = 40
	pixels := make([]byte, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			// Leave a one-pixel transparent margin and clip the corners.
			inside := x >= 1 && x < size-1 && y >= 1 && y < size-1
			corner := (x <= 2 || x >= size-3) && (y <= 2 || y >= size-3) &&
				(x <= 1 || x >= size-2) && (y <= 1 || y >= size-2)
			if !inside || corner {
				continue
			}
			// ICO pixel rows run bottom-up, BGRA.
			i := ((size-1-y)*size + x) * 4
			pixels[i] = 0xD4   // blue
			pixels[i+1] = 0xA3 // green
			pixels[i+2] = 0x26 // red
			pixels[i+3] = 0xFF // alpha
		}
	}

	// AND mask: all zero, transparency comes from the alpha channel.
	mask := make([]byte, size*4)

	data := make([]byte, 0, 6+16+bmpHeader+len(pixels)+len(mask))
	put16 := func(v uint16) {
		data = binary.LittleEndian.AppendUint16(data, v)
	}
	put32 := func(v uint32) {
		data = binary.LittleEndian.AppendUint32(data, v)
	}

	// ICONDIR
	put16(0) // reserved
	put16(1) // type: icon
	put16(1) // one image

	// ICONDIRENTRY
	data = append(data, size, size, 0, 0)
	put16(1)  // planes
	put16(32) // bit count
	put32(uint32(bmpHeader + len(pixels) + len(mask)))
	put32(6 + 16) // image offset

	// BITMAPINFOHEADER, height doubled to cover the AND mask.
	put32(bmpHeader)
	put32(size)
	put32(size * 2)
	put16(1)
	put16(32)
	put32(0) // BI_RGB
	put32(uint32(len(pixels) + len(mask)))
	put32(0)
	put32(0)
	put32(0)
	put32(0)

	data = append(data, pixels...)
	data = append(data, mask...)
	return data
}
