package media

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrick/internal/logger"
)

func pngURI(t *testing.T, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return EncodeDataURI("image/png", buf.Bytes())
}

const redSquareSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 20"><rect width="10" height="20" fill="#ff0000"/></svg>`

func TestParseDataURI(t *testing.T) {
	d, err := ParseDataURI("data:text/plain;charset=utf-8,hello%20world", 0)
	require.NoError(t, err)
	assert.Equal(t, "text/plain", d.MIME)
	assert.Equal(t, "hello world", string(d.Data))

	d, err = ParseDataURI("data:;base64,aGk=", 0)
	require.NoError(t, err)
	assert.Equal(t, "text/plain", d.MIME)
	assert.Equal(t, "hi", string(d.Data))

	d, err = ParseDataURI("data:image/png;base64,aGk", 0)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(d.Data))

	_, err = ParseDataURI("https://example.com/a.png", 0)
	assert.ErrorIs(t, err, ErrNotDataURI)

	_, err = ParseDataURI("data:image/png;base64", 0)
	assert.ErrorIs(t, err, ErrNotDataURI)
}

func TestDecodePNG(t *testing.T) {
	img, err := Decode(pngURI(t, 3, 2, color.White), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
}

func TestDecodeSVG(t *testing.T) {
	img, err := Decode("data:image/svg+xml,"+redSquareSVG, 0, 0)
	require.NoError(t, err)
	b := img.Bounds()
	assert.Equal(t, svgRasterSide/2, b.Dx())
	assert.Equal(t, svgRasterSide, b.Dy())

	r, g, _, a := img.At(b.Dx()/2, b.Dy()/2).RGBA()
	assert.Equal(t, uint32(0xffff), a)
	assert.Equal(t, uint32(0xffff), r)
	assert.Zero(t, g)
}

func TestDecodeRejects(t *testing.T) {
	_, err := Decode(pngURI(t, 64, 64, color.White), 10, 0)
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = Decode("data:image/png;base64,bm90IGFuIGltYWdl", 0, 0)
	assert.Error(t, err)
}

func TestDecodeRejectsOversizedHeader(t *testing.T) {
	// a PNG declaring 100000x100000 pixels with no pixel data behind it
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))))
	data := buf.Bytes()
	binary.BigEndian.PutUint32(data[16:], 100000)
	binary.BigEndian.PutUint32(data[20:], 100000)
	binary.BigEndian.PutUint32(data[29:], crc32.ChecksumIEEE(data[12:29]))

	_, err := Decode(EncodeDataURI("image/png", data), 0, 1<<20)
	assert.ErrorIs(t, err, ErrTooLarge)

	img, err := Decode(pngURI(t, 8, 8, color.White), 0, 64)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())

	_, err = Decode(pngURI(t, 9, 8, color.White), 0, 64)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestLoaderCaches(t *testing.T) {
	l := NewLoader(Options{}, logger.NewNop())
	uri := pngURI(t, 2, 2, color.Black)

	a, err := l.Load(uri)
	require.NoError(t, err)
	b, err := l.Load(uri)
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 1, l.Cached())
}

func TestLoaderEvictsLeastRecentlyUsed(t *testing.T) {
	l := NewLoader(Options{CacheEntries: 2}, nil)
	first := pngURI(t, 1, 1, color.Black)

	a, err := l.Load(first)
	require.NoError(t, err)
	_, err = l.Load(pngURI(t, 2, 1, color.Black))
	require.NoError(t, err)
	_, err = l.Load(pngURI(t, 3, 1, color.Black))
	require.NoError(t, err)
	assert.Equal(t, 2, l.Cached())

	again, err := l.Load(first)
	require.NoError(t, err)
	assert.NotSame(t, a, again, "first image was evicted and decoded again")
}

func TestLoadAllSkipsBrokenImages(t *testing.T) {
	l := NewLoader(Options{}, nil)
	good := pngURI(t, 4, 4, color.White)
	bad := "data:image/png;base64,AAAA"

	images, err := l.LoadAll(context.Background(), []string{good, "", bad, good})
	require.NoError(t, err)
	assert.Len(t, images, 1)
	assert.Contains(t, images, good)
}

func TestLoadAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(Options{}, nil).LoadAll(ctx, []string{pngURI(t, 1, 1, color.White)})
	assert.ErrorIs(t, err, context.Canceled)
}
