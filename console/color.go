package console

import "unicode/utf16"

// Color is a badge colour pair: a background and a readable foreground.
type Color struct {
	Primary string
	Text    string
}

// palette is indexed by the owner name hash.
var palette = [...]Color{
	{Primary: "#003f5c", Text: "#ffffff"},
	{Primary: "#2f4b7c", Text: "#ffffff"},
	{Primary: "#665191", Text: "#ffffff"},
	{Primary: "#a05195", Text: "#ffffff"},
	{Primary: "#d45087", Text: "#ffffff"},
	{Primary: "#f95d6a", Text: "#ffffff"},
	{Primary: "#ff7c43", Text: "#000000"},
	{Primary: "#ffa600", Text: "#000000"},
	{Primary: "#ffc600", Text: "#000000"},
}

// ColorFor returns the badge colour for name. The same name always gets the
// same colour, across processes and across the JavaScript consoles that
// share this palette.
func ColorFor(name string) Color {
	return palette[hash(name)%int64(len(palette))]
}

// hash is the 32-bit h*31+c string hash over UTF-16 code units, with
// wrap-around, returned as an absolute value.
func hash(s string) int64 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = (h << 5) - h + int32(c)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}
