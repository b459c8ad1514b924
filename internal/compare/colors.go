package compare

// Palette is the fixed set of chart colors assigned to tickers. Order
// matters: ColorFor indexes into it, so reordering or resizing the palette
// changes every assignment.
var Palette = []string{
	"#2563eb", // blue
	"#dc2626", // red
	"#16a34a", // green
	"#9333ea", // purple
	"#ea580c", // orange
	"#0d9488", // teal
	"#db2777", // pink
	"#ca8a04", // amber
}

// ColorFor deterministically maps a ticker symbol to a palette color using
// an unsigned 32-bit rolling hash (h = h*31 + charCode, wrapping mod 2^32).
// The mapping is case-sensitive and stable across processes as long as the
// palette and the hash constants stay unchanged. Distinct tickers may share
// a color; that is expected.
func ColorFor(ticker string) string {
	var h uint32
	for _, c := range ticker {
		h = h*31 + uint32(c)
	}
	return Palette[int(h%uint32(len(Palette)))]
}
