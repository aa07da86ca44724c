package discord

// colour.go contains the packed RGB colour carried by roles and embeds.

// Colour is a packed 0xRRGGBB integer.
type Colour int32

// NewColour packs three channel values into a Colour.
func NewColour(r, g, b uint8) Colour {
	return Colour(int32(r)<<16 | int32(g)<<8 | int32(b))
}

func (c Colour) R() uint8 {
	return uint8(c >> 16 & 0xff)
}

func (c Colour) G() uint8 {
	return uint8(c >> 8 & 0xff)
}

func (c Colour) B() uint8 {
	return uint8(c & 0xff)
}
