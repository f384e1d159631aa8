// Package bigword renders words as large block art using half-block characters.
package bigword

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FontPaths are system fonts with full Vietnamese coverage, tried in order.
var FontPaths = []string{
	// macOS
	"/System/Library/Fonts/Supplemental/Arial Unicode.ttf",
	"/Library/Fonts/Arial Unicode.ttf",
	"/System/Library/Fonts/Helvetica.ttc",
	// Linux
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/noto/NotoSans-Regular.ttf",
	"/usr/share/fonts/noto/NotoSans-Regular.ttf",
	// Windows
	"C:\\Windows\\Fonts\\arial.ttf",
	"C:\\Windows\\Fonts\\tahoma.ttf",
}

const (
	fontSize  = 48
	threshold = 40 // Gray level above which a pixel is on
	padding   = 4
)

// Renderer draws words with one font face. It is safe for concurrent use.
type Renderer struct {
	mu    sync.Mutex
	face  font.Face
	cache map[string]string
}

// NewRenderer loads the first readable font in paths, falling back to the
// bundled Go font.
func NewRenderer(paths ...string) (*Renderer, error) {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if face, err := parseFace(data); err == nil {
			return &Renderer{face: face, cache: make(map[string]string)}, nil
		}
	}

	face, err := parseFace(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("loading fallback font: %w", err)
	}
	return &Renderer{face: face, cache: make(map[string]string)}, nil
}

func parseFace(data []byte) (font.Face, error) {
	opts := &opentype.FaceOptions{Size: fontSize, DPI: 72, Hinting: font.HintingFull}

	// Collections first, then single fonts
	if coll, err := opentype.ParseCollection(data); err == nil && coll.NumFonts() > 0 {
		if fnt, err := coll.Font(0); err == nil {
			return opentype.NewFace(fnt, opts)
		}
	}

	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(fnt, opts)
}

// Render draws word into a cols x rows grid of terminal cells. Each cell
// covers two vertical pixels.
func (r *Renderer) Render(word string, cols, rows int) string {
	if word == "" || cols <= 0 || rows <= 0 {
		return ""
	}

	key := fmt.Sprintf("%s/%d/%d", word, cols, rows)
	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, ok := r.cache[key]; ok {
		return cached
	}

	rendered := imageToHalfBlocks(scaleDown(r.draw(word), cols, rows*2), cols, rows)
	r.cache[key] = rendered
	return rendered
}

// draw renders word at the face's natural size, white on black.
func (r *Renderer) draw(word string) *image.Gray {
	metrics := r.face.Metrics()
	width := font.MeasureString(r.face, word).Ceil() + padding*2
	ascent, descent := metrics.Ascent.Ceil(), metrics.Descent.Ceil()
	height := ascent + descent + padding*2

	img := image.NewGray(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.Black}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: r.face,
		Dot:  fixed.P(padding, padding+ascent),
	}
	d.DrawString(word)
	return img
}

// scaleDown scales a grayscale image using area averaging.
func scaleDown(src *image.Gray, dstWidth, dstHeight int) *image.Gray {
	srcWidth, srcHeight := src.Bounds().Max.X, src.Bounds().Max.Y
	dst := image.NewGray(image.Rect(0, 0, dstWidth, dstHeight))

	xRatio := float64(srcWidth) / float64(dstWidth)
	yRatio := float64(srcHeight) / float64(dstHeight)

	for dy := 0; dy < dstHeight; dy++ {
		for dx := 0; dx < dstWidth; dx++ {
			sx1, sy1 := int(float64(dx)*xRatio), int(float64(dy)*yRatio)
			sx2, sy2 := min(int(float64(dx+1)*xRatio), srcWidth), min(int(float64(dy+1)*yRatio), srcHeight)
			// Upscaling leaves empty regions; sample one pixel instead
			sx2, sy2 = max(sx2, sx1+1), max(sy2, sy1+1)

			var sum, count int
			for sy := sy1; sy < sy2 && sy < srcHeight; sy++ {
				for sx := sx1; sx < sx2 && sx < srcWidth; sx++ {
					sum += int(src.GrayAt(sx, sy).Y)
					count++
				}
			}
			if count > 0 {
				dst.SetGray(dx, dy, color.Gray{Y: uint8(sum / count)})
			}
		}
	}

	return dst
}

// imageToHalfBlocks converts a grayscale image to half-block art.
func imageToHalfBlocks(img *image.Gray, cols, rows int) string {
	var b strings.Builder

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := brightness(img, col, row*2) > threshold
			bottom := brightness(img, col, row*2+1) > threshold

			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		if row < rows-1 {
			b.WriteRune('\n')
		}
	}

	return b.String()
}

func brightness(img *image.Gray, x, y int) uint8 {
	if x < 0 || y < 0 || x >= img.Bounds().Max.X || y >= img.Bounds().Max.Y {
		return 0
	}
	return img.GrayAt(x, y).Y
}
