package canvas_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"testing"

	"github.com/ItsNotGoodName/x-smiley/internal/canvas"
	"github.com/ItsNotGoodName/x-smiley/internal/glyph"
	"github.com/ItsNotGoodName/x-smiley/internal/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testOptions() canvas.Options {
	opts := canvas.DefaultOptions()
	opts.LineWidth = 3
	return opts
}

func dark(img image.Image, x, y int) bool {
	c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	return c.R < 128 && c.G < 128 && c.B < 128
}

func white(img image.Image, x, y int) bool {
	c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	return c.R == 255 && c.G == 255 && c.B == 255
}

func TestConfigureBufferSize(t *testing.T) {
	c := canvas.New(1, 1, testOptions())
	defer c.Close()

	physical, err := surface.Configure(c, surface.Size{Width: 150, Height: 100}, 2)
	require.NoError(t, err)

	assert.Equal(t, surface.PhysicalSize{Width: 300, Height: 200}, physical)
	assert.Equal(t, physical, c.BufferSize())
	assert.Equal(t, surface.Size{Width: 150, Height: 100}, c.DisplaySize())
	assert.Equal(t, image.Rect(0, 0, 300, 200), c.Image().Bounds())
}

func TestDrawGlyph(t *testing.T) {
	c := canvas.New(1, 1, testOptions())
	defer c.Close()

	_, err := surface.Configure(c, surface.Size{Width: 200, Height: 200}, 1)
	require.NoError(t, err)
	require.NoError(t, glyph.Draw(c, 100, 100, 1))

	img := c.Image()
	assert.True(t, dark(img, 149, 100), "outline right")
	assert.True(t, dark(img, 100, 149), "outline bottom")
	assert.True(t, white(img, 100, 100), "center")
	assert.True(t, white(img, 5, 5), "corner")
}

func TestDrawGlyphDensity(t *testing.T) {
	c := canvas.New(1, 1, testOptions())
	defer c.Close()

	_, err := surface.Configure(c, surface.Size{Width: 200, Height: 200}, 2)
	require.NoError(t, err)
	require.NoError(t, glyph.Draw(c, 100, 100, 1))

	// The logical outline at x = 150 lands on device x = 300.
	img := c.Image()
	assert.True(t, dark(img, 299, 200), "outline right")
	assert.True(t, white(img, 200, 200), "center")
	assert.True(t, white(img, 170, 200), "inside the outline")
}

func TestConfigureClears(t *testing.T) {
	c := canvas.New(1, 1, testOptions())
	defer c.Close()

	viewport := surface.Size{Width: 200, Height: 200}
	_, err := surface.Configure(c, viewport, 1)
	require.NoError(t, err)
	require.NoError(t, glyph.Draw(c, 100, 100, 1))
	require.True(t, dark(c.Image(), 149, 100))

	_, err = surface.Configure(c, viewport, 1)
	require.NoError(t, err)
	assert.True(t, white(c.Image(), 149, 100))
}

func TestClearRect(t *testing.T) {
	c := canvas.New(1, 1, testOptions())
	defer c.Close()

	_, err := surface.Configure(c, surface.Size{Width: 200, Height: 200}, 1)
	require.NoError(t, err)
	require.NoError(t, glyph.Draw(c, 100, 100, 1))

	ctx, err := c.Context()
	require.NoError(t, err)
	ctx.ClearRect(140, 90, 20, 20)

	img := c.Image()
	assert.True(t, white(img, 149, 100), "cleared")
	assert.True(t, dark(img, 100, 149), "kept")
}

func TestArcInvalid(t *testing.T) {
	c := canvas.New(10, 10, testOptions())
	defer c.Close()

	ctx, err := c.Context()
	require.NoError(t, err)

	assert.Error(t, ctx.Arc(0, 0, -1, 0, 1))
	assert.Error(t, ctx.Arc(0, 0, 1, 0, math.NaN()))
}

func TestClosed(t *testing.T) {
	c := canvas.New(10, 10, testOptions())
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	_, err := c.Context()
	assert.ErrorIs(t, err, surface.ErrSurfaceUnavailable)

	err = glyph.Draw(c, 5, 5, 1)
	assert.ErrorIs(t, err, surface.ErrSurfaceUnavailable)
}

func TestHexOptions(t *testing.T) {
	opts := canvas.HexOptions(2, "#ff0000", "#00ff00")

	assert.Equal(t, 2.0, opts.LineWidth)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, color.RGBAModel.Convert(opts.Stroke))
	assert.Equal(t, color.RGBA{G: 255, A: 255}, color.RGBAModel.Convert(opts.Background))
}

func TestEncode(t *testing.T) {
	c := canvas.New(1, 1, testOptions())
	defer c.Close()

	_, err := surface.Configure(c, surface.Size{Width: 120, Height: 80}, 1)
	require.NoError(t, err)
	require.NoError(t, glyph.Draw(c, 60, 40, 0.5))

	decoders := map[canvas.Format]func(*bytes.Buffer) (image.Image, error){
		canvas.FormatPNG:  func(b *bytes.Buffer) (image.Image, error) { return png.Decode(b) },
		canvas.FormatJPEG: func(b *bytes.Buffer) (image.Image, error) { return jpeg.Decode(b) },
		canvas.FormatBMP:  func(b *bytes.Buffer) (image.Image, error) { return bmp.Decode(b) },
		canvas.FormatTIFF: func(b *bytes.Buffer) (image.Image, error) { return tiff.Decode(b) },
	}
	for format, decode := range decoders {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, c.Encode(&buf, format))

			img, err := decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 120, 80), img.Bounds())
		})
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]canvas.Format{
		"":     canvas.FormatPNG,
		"PNG":  canvas.FormatPNG,
		".jpg": canvas.FormatJPEG,
		"jpeg": canvas.FormatJPEG,
		"bmp":  canvas.FormatBMP,
		"tif":  canvas.FormatTIFF,
	} {
		got, err := canvas.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := canvas.ParseFormat("gif")
	assert.Error(t, err)

	assert.Equal(t, "image/jpeg", canvas.FormatJPEG.ContentType())
	assert.Equal(t, "image/png", canvas.FormatPNG.ContentType())
}
