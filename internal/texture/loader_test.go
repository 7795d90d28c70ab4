package texture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{40, 80, 120, 255}
			if (x+y)%2 == 0 {
				c = color.NRGBA{200, 10, 10, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func writeFile(t *testing.T, name string, enc func(f *os.File) error) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, enc(f))
	require.NoError(t, f.Close())
	return path
}

func TestLoadBackdrop(t *testing.T) {
	src := checker(6, 4)

	encoders := map[string]func(f *os.File) error{
		"bg.png":  func(f *os.File) error { return png.Encode(f, src) },
		"bg.webp": func(f *os.File) error { return nativewebp.Encode(f, src, nil) },
		"bg.TGA":  func(f *os.File) error { return tga.Encode(f, src) },
	}
	for name, enc := range encoders {
		t.Run(name, func(t *testing.T) {
			img, err := LoadBackdrop(writeFile(t, name, enc))
			require.NoError(t, err)
			require.Equal(t, image.Rect(0, 0, 6, 4), img.Bounds())
			assert.Equal(t, src.NRGBAAt(0, 0), img.NRGBAAt(0, 0))
			assert.Equal(t, src.NRGBAAt(3, 2), img.NRGBAAt(3, 2))
			assert.Equal(t, src.NRGBAAt(5, 2), img.NRGBAAt(5, 2))
		})
	}
}

func TestLoadBackdropErrors(t *testing.T) {
	_, err := LoadBackdrop(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorContains(t, err, "texture: read")

	bmp := writeFile(t, "bg.bmp", func(f *os.File) error { _, err := f.WriteString("BM"); return err })
	_, err = LoadBackdrop(bmp)
	assert.ErrorContains(t, err, "unknown extension: .bmp")

	junk := writeFile(t, "bg.png", func(f *os.File) error { _, err := f.WriteString("not a png"); return err })
	_, err = LoadBackdrop(junk)
	assert.ErrorContains(t, err, "texture: decode")
}

func TestFit(t *testing.T) {
	src := checker(6, 4)

	same := Fit(src, 6, 4)
	assert.Equal(t, src.Pix, same.Pix)
	assert.NotSame(t, src, same)

	big := Fit(src, 60, 40)
	assert.Equal(t, image.Rect(0, 0, 60, 40), big.Bounds())

	offset := src.SubImage(image.Rect(2, 1, 6, 4))
	sub := Fit(offset, 4, 3)
	assert.Equal(t, src.NRGBAAt(2, 1), sub.NRGBAAt(0, 0))
}

func TestCache(t *testing.T) {
	c := NewCache()
	calls := 0
	c.load = func(path string) (*image.NRGBA, error) {
		calls++
		return LoadBackdrop(path)
	}

	path := writeFile(t, "bg.png", func(f *os.File) error { return png.Encode(f, checker(6, 4)) })

	a, err := c.Backdrop(path, 12, 8)
	require.NoError(t, err)
	b, err := c.Backdrop(path, 12, 8)
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 1, calls)

	small, err := c.Backdrop(path, 6, 4)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 6, 4), small.Bounds())
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, c.Len())

	_, err = c.Backdrop(filepath.Join(t.TempDir(), "gone.png"), 6, 4)
	assert.Error(t, err)
	assert.Equal(t, 2, c.Len())
}
