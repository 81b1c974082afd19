// Package fonts embeds the Go font family and hands out sized faces.
package fonts

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type Family string

const (
	Regular Family = "regular"
	Bold    Family = "bold"
	Italic  Family = "italic"
	Script  Family = "script"
	Mono    Family = "mono"
)

// ParseFamily maps loose CSS-ish names ("bold sans-serif", "monospace",
// "cursive") onto an embedded family.
func ParseFamily(s string) Family {
	v := strings.ToLower(s)
	switch {
	case strings.Contains(v, "mono"):
		return Mono
	case strings.Contains(v, "cursive"), strings.Contains(v, "script"):
		return Script
	case strings.Contains(v, "italic"):
		return Italic
	case strings.Contains(v, "bold"):
		return Bold
	}
	return Regular
}

var ttf = map[Family][]byte{
	Regular: goregular.TTF,
	Bold:    gobold.TTF,
	Italic:  goitalic.TTF,
	Script:  gobolditalic.TTF,
	Mono:    gomono.TTF,
}

var (
	parseOnce sync.Once
	parsed    map[Family]*opentype.Font
	parseErr  error
)

func load() (map[Family]*opentype.Font, error) {
	parseOnce.Do(func() {
		parsed = make(map[Family]*opentype.Font, len(ttf))
		for fam, data := range ttf {
			f, err := opentype.Parse(data)
			if err != nil {
				parseErr = fmt.Errorf("failed to parse %s font: %w", fam, err)
				return
			}
			parsed[fam] = f
		}
	})
	return parsed, parseErr
}

type faceKey struct {
	family Family
	size   float64
}

// Faces caches sized faces. A Faces value must not be shared between
// goroutines; faces keep per-glyph scratch buffers.
type Faces struct {
	cache map[faceKey]font.Face
}

func NewFaces() *Faces {
	return &Faces{cache: make(map[faceKey]font.Face)}
}

// Face returns family at size pixels (72 DPI).
func (f *Faces) Face(family Family, size float64) (font.Face, error) {
	if size <= 0 {
		size = 1
	}
	key := faceKey{family, size}
	if face, ok := f.cache[key]; ok {
		return face, nil
	}
	fonts, err := load()
	if err != nil {
		return nil, err
	}
	otf, ok := fonts[family]
	if !ok {
		otf = fonts[Regular]
	}
	face, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s face (size=%.1f): %w", family, size, err)
	}
	f.cache[key] = face
	return face, nil
}

// Close releases every cached face.
func (f *Faces) Close() {
	for k, face := range f.cache {
		_ = face.Close()
		delete(f.cache, k)
	}
}

// Measure returns the advance width of s. Unknown fonts measure as zero.
func (f *Faces) Measure(family Family, s string, size float64) float64 {
	face, err := f.Face(family, size)
	if err != nil {
		return 0
	}
	return float64(font.MeasureString(face, s)) / 64
}

// Measurer adapts Faces to a single family for the layout engine.
type Measurer struct {
	Faces  *Faces
	Family Family
}

func (m Measurer) MeasureText(s string, sizePx float64) float64 {
	return m.Faces.Measure(m.Family, s, sizePx)
}
