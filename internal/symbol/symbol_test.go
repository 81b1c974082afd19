package symbol

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	gzqr "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridImage(g *Grid, px, quiet int) image.Image {
	side := (g.Size() + 2*quiet) * px
	img := image.NewGray(image.Rect(0, 0, side, side))
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	for r := 0; r < g.Size(); r++ {
		for c := 0; c < g.Size(); c++ {
			if !g.At(r, c) {
				continue
			}
			for dy := 0; dy < px; dy++ {
				for dx := 0; dx < px; dx++ {
					img.SetGray((c+quiet)*px+dx, (r+quiet)*px+dy, color.Gray{})
				}
			}
		}
	}
	return img
}

func decode(t *testing.T, reader gozxing.Reader, img image.Image) string {
	t.Helper()
	bitmap, err := gozxing.NewBinaryBitmapFromImage(img)
	require.NoError(t, err)
	res, err := reader.Decode(bitmap, map[gozxing.DecodeHintType]interface{}{gozxing.DecodeHintType_TRY_HARDER: true})
	require.NoError(t, err)
	return res.GetText()
}

func TestBuildQRModulesShape(t *testing.T) {
	g, err := BuildQRModules("camly.in", LevelM)
	require.NoError(t, err)

	n := g.Size()
	assert.GreaterOrEqual(t, n, 21)
	assert.Equal(t, 1, n%2)
	assert.Equal(t, 0, (n-17)%4)

	for _, origin := range [][2]int{{0, 0}, {0, n - 7}, {n - 7, 0}} {
		r0, c0 := origin[0], origin[1]
		for i := 0; i < 7; i++ {
			assert.True(t, g.At(r0, c0+i), "finder top edge")
			assert.True(t, g.At(r0+6, c0+i), "finder bottom edge")
			assert.True(t, g.At(r0+i, c0), "finder left edge")
		}
		assert.False(t, g.At(r0+1, c0+1), "finder ring gap")
		assert.True(t, g.At(r0+3, c0+3), "finder centre")
		assert.True(t, g.IsFinder(r0+3, c0+3))
	}
	assert.False(t, g.IsFinder(n-1, n-1))
	assert.Greater(t, g.Count(), 0)
	assert.False(t, g.At(-1, 0))
	assert.False(t, g.At(0, n))
}

func TestBuildQRModulesScansBack(t *testing.T) {
	payload := "WIFI:T:WPA;S:Home;P:secret;;"
	g, err := BuildQRModules(payload, LevelQ)
	require.NoError(t, err)

	assert.Equal(t, payload, decode(t, gzqr.NewQRCodeReader(), gridImage(g, 6, 4)))
}

func TestBuildQRModulesLevelsGrow(t *testing.T) {
	payload := strings.Repeat("qrick ", 20)
	low, err := BuildQRModules(payload, LevelL)
	require.NoError(t, err)
	high, err := BuildQRModules(payload, LevelH)
	require.NoError(t, err)
	assert.Greater(t, high.Size(), low.Size())
}

func TestBuildQRModulesCapacity(t *testing.T) {
	payload := strings.Repeat("a", 2000)

	_, err := BuildQRModules(payload, LevelL)
	require.NoError(t, err)

	_, err = BuildQRModules(payload, LevelH)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCapacity))
	assert.Equal(t, CapacityMessage, UserMessage(err))
}

func TestEncodeErrorOnlyMapsCapacity(t *testing.T) {
	capacity := encodeError(errors.New("init: calc version failed: calcVersion: analyzeVersionAuto failed: could not match version! check your content length"))
	assert.ErrorIs(t, capacity, ErrCapacity)
	assert.Equal(t, CapacityMessage, UserMessage(capacity))

	cause := errors.New("could not encode data: bad byte")
	other := encodeError(cause)
	assert.NotErrorIs(t, other, ErrCapacity)
	assert.ErrorIs(t, other, cause)
	assert.NotEqual(t, CapacityMessage, UserMessage(other))
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("h")
	require.NoError(t, err)
	assert.Equal(t, LevelH, l)
	l, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, LevelM, l)
	_, err = ParseLevel("X")
	assert.Error(t, err)
}

func TestNewGrid(t *testing.T) {
	g := NewGrid([][]bool{{true, false}, {false, true}})
	assert.Equal(t, 2, g.Size())
	assert.Equal(t, 2, g.Count())
	assert.True(t, g.At(1, 1))
	assert.False(t, g.At(0, 1))
}

func TestBarcodeValidity(t *testing.T) {
	tests := []struct {
		format  Format
		content string
		valid   bool
		width   int
	}{
		{EAN13, "1234567890128", true, 95},
		{EAN13, "123456789012", true, 95},
		{EAN13, "1234567890123", false, 0},
		{EAN13, "123", false, 0},
		{EAN8, "12345670", true, 67},
		{EAN8, "12345678", false, 0},
		{UPC, "123456789012", true, 95},
		{UPC, "123456789013", false, 0},
		{UPCE, "123456", true, 51},
		{UPCE, "01234565", true, 51},
		{UPCE, "01234566", false, 0},
		{UPCE, "12345", false, 0},
		{EAN5, "12345", true, 47},
		{EAN5, "1234", false, 0},
		{EAN2, "12", true, 20},
		{EAN2, "1a", false, 0},
		{CODE128, "Example 1234", true, 0},
		{CODE128, "héllo", false, 0},
		{CODE128A, "EXAMPLE", true, 0},
		{CODE128A, "example", false, 0},
		{CODE128B, "Example 1234", true, 0},
		{CODE128C, "12345678", true, 0},
		{CODE128C, "123", false, 0},
		{CODE39, "CODE39 EXAMPLE", true, 0},
		{CODE39, "lower", false, 0},
		{CODE93, "CODE93 EXAMPLE", true, 0},
		{ITF14, "12345678901231", true, 0},
		{ITF14, "1234567890123", true, 0},
		{ITF14, "12345678901234", false, 0},
		{ITF, "123456", true, 0},
		{ITF, "12345", false, 0},
		{MSI, "123456789", true, 3 + 9*12 + 4},
		{MSI10, "123456789", true, 3 + 10*12 + 4},
		{MSI1010, "123456789", true, 3 + 11*12 + 4},
		{MSI, "12a", false, 0},
		{Pharmacode, "1337", true, 0},
		{Pharmacode, "2", false, 0},
		{Pharmacode, "131071", false, 0},
		{Codabar, "A12345B", true, 0},
		{Codabar, "12345", true, 0},
		{Codabar, "A12X45B", false, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.format)+"/"+tt.content, func(t *testing.T) {
			bars, err := BuildBarcode(tt.content, tt.format)
			if !tt.valid {
				require.Error(t, err)
				var ice *InvalidContentError
				assert.True(t, errors.As(err, &ice))
				assert.Equal(t, InvalidMessage, UserMessage(err))
				assert.Error(t, Validate(tt.format, tt.content))
				return
			}
			require.NoError(t, err)
			assert.NoError(t, Validate(tt.format, tt.content))
			assert.Greater(t, bars.Width(), 0)
			assert.True(t, bars.Modules[0], "symbols start with a bar")
			if tt.width > 0 {
				assert.Equal(t, tt.width, bars.Width())
			}
		})
	}
}

func TestDefaultContentIsValid(t *testing.T) {
	for _, f := range Formats {
		assert.NoError(t, Validate(f, DefaultContent(f)), f)
	}
	assert.Equal(t, "Example", DefaultContent(Format("nope")))
}

func TestEmptyContentInvalid(t *testing.T) {
	assert.Error(t, Validate(CODE128, ""))
}

func barsImage(bars *Bars) image.Image {
	const px, quiet, h = 3, 12, 60
	w := (bars.Width() + 2*quiet) * px
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m := x/px - quiet
			dark := m >= 0 && m < bars.Width() && bars.Modules[m]
			if dark {
				img.SetGray(x, y, color.Gray{})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

func TestEAN13ScansBack(t *testing.T) {
	bars, err := BuildBarcode("1234567890128", EAN13)
	require.NoError(t, err)
	assert.Equal(t, "1234567890128", decode(t, oned.NewEAN13Reader(), barsImage(bars)))
}

func TestCode128UsesRequestedSet(t *testing.T) {
	tests := []struct {
		format  Format
		content string
		start   string
	}{
		{CODE128A, "HELLO", "11010000100"},
		{CODE128B, "Hello", "11010010000"},
		{CODE128B, "123456", "11010010000"},
		{CODE128C, "123456", "11010011100"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format)+"/"+tt.content, func(t *testing.T) {
			bars, err := BuildBarcode(tt.content, tt.format)
			require.NoError(t, err)
			assert.Equal(t, bits(tt.start), bars.Modules[:11])
			assert.Equal(t, bits("1100011101011"), bars.Modules[bars.Width()-13:])
			assert.Equal(t, tt.content, decode(t, oned.NewCode128Reader(), barsImage(bars)))
		})
	}

	// Set B spends one symbol per digit where set C packs two.
	b, err := BuildBarcode("123456", CODE128B)
	require.NoError(t, err)
	c, err := BuildBarcode("123456", CODE128C)
	require.NoError(t, err)
	assert.Equal(t, b.Width()-33, c.Width())
}

func TestCode128AControlCharacters(t *testing.T) {
	bars, err := BuildBarcode("A\tB", CODE128A)
	require.NoError(t, err)
	// start, three data symbols, checksum, stop
	assert.Equal(t, 5*11+13, bars.Width())
	// tab (0x09) is value 73 in set A
	assert.Equal(t, bits(code128Patterns[73]), bars.Modules[22:33])
}

func TestRuns(t *testing.T) {
	b := &Bars{Modules: bits("1101001110")}
	assert.Equal(t, [][2]int{{0, 2}, {3, 1}, {6, 3}}, b.Runs())
}

func TestPharmacodePattern(t *testing.T) {
	b, err := BuildBarcode("3", Pharmacode)
	require.NoError(t, err)
	assert.Equal(t, bits("1001"), b.Modules)
}

func TestUPCEText(t *testing.T) {
	b, err := BuildBarcode("123456", UPCE)
	require.NoError(t, err)
	assert.Equal(t, "01234565", b.Text)
}

func TestRenderStandard(t *testing.T) {
	img, err := RenderStandard("camly.in", LevelM, StandardOptions{
		Shape:      ShapeLiquid,
		ModulePx:   4,
		Foreground: color.RGBA{0, 0, 0, 255},
		Background: color.RGBA{255, 255, 255, 255},
	})
	require.NoError(t, err)

	g, err := BuildQRModules("camly.in", LevelM)
	require.NoError(t, err)
	assert.Equal(t, g.Size()*4, img.Bounds().Dx())

	_, err = RenderStandard("camly.in", LevelM, StandardOptions{Shape: "hex"})
	assert.Error(t, err)
}
