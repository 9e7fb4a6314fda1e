package bmp

// Common colors, named after the base CSS color keywords.
var (
	Black   = Pixel{0x00, 0x00, 0x00}
	Silver  = Pixel{0xc0, 0xc0, 0xc0}
	Gray    = Pixel{0x80, 0x80, 0x80}
	White   = Pixel{0xff, 0xff, 0xff}
	Maroon  = Pixel{0x80, 0x00, 0x00}
	Red     = Pixel{0xff, 0x00, 0x00}
	Purple  = Pixel{0x80, 0x00, 0x80}
	Fuchsia = Pixel{0xff, 0x00, 0xff}
	Green   = Pixel{0x00, 0x80, 0x00}
	Lime    = Pixel{0x00, 0xff, 0x00}
	Olive   = Pixel{0x80, 0x80, 0x00}
	Yellow  = Pixel{0xff, 0xff, 0x00}
	Navy    = Pixel{0x00, 0x00, 0x80}
	Blue    = Pixel{0x00, 0x00, 0xff}
	Teal    = Pixel{0x00, 0x80, 0x80}
	Aqua    = Pixel{0x00, 0xff, 0xff}
)
