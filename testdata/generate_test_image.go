// Sprite generator for trying out pbn by hand.
//
//	go run testdata/generate_test_image.go
package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

func main() {
	// A 32x32 sprite: eight colour bands inside a transparent border, with a
	// soft gradient in the last band so quantization has something to do.
	const size = 32
	img := image.NewNRGBA(image.Rect(0, 0, size, size))

	colors := []color.NRGBA{
		{R: 255, G: 0, B: 0, A: 255},     // Red
		{R: 0, G: 255, B: 0, A: 255},     // Green
		{R: 0, G: 0, B: 255, A: 255},     // Blue
		{R: 255, G: 255, B: 0, A: 255},   // Yellow
		{R: 255, G: 0, B: 255, A: 255},   // Magenta
		{R: 0, G: 255, B: 255, A: 255},   // Cyan
		{R: 128, G: 128, B: 128, A: 255}, // Gray
	}

	bandHeight := (size - 4) / 8
	for y := 2; y < size-2; y++ {
		band := min((y-2)/bandHeight, 7)
		for x := 2; x < size-2; x++ {
			if band < len(colors) {
				img.SetNRGBA(x, y, colors[band])
				continue
			}
			v := uint8(128 + x*4)
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: v, B: 0, A: 255})
		}
	}

	file, err := os.Create("testdata/sprite.png")
	if err != nil {
		panic(err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		panic(err)
	}

	println("Test image created: testdata/sprite.png")
}
