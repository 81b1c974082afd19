// Package symbol adapts the QR and 1D barcode encoders to the module data
// the rasterizer paints.
package symbol

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yeqown/go-qrcode/v2"
)

// Level is a QR error-correction level.
type Level string

const (
	LevelL Level = "L"
	LevelM Level = "M"
	LevelQ Level = "Q"
	LevelH Level = "H"
)

func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(s) {
	case "", "M":
		return LevelM, nil
	case "L":
		return LevelL, nil
	case "Q":
		return LevelQ, nil
	case "H":
		return LevelH, nil
	}
	return "", fmt.Errorf("unknown error correction level %q", s)
}

func (l Level) option() qrcode.EncodeOption {
	switch l {
	case LevelL:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionLow)
	case LevelQ:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart)
	case LevelH:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest)
	default:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium)
	}
}

// ErrCapacity means the payload does not fit any QR version at the level.
var ErrCapacity = errors.New("content too long for the selected error correction level")

// encodeError maps a qrcode.NewWith failure to ErrCapacity when no version
// holds the payload. The encoder formats its errors with %v, so only the
// message identifies the cause.
func encodeError(err error) error {
	if strings.Contains(err.Error(), "could not match version") {
		return fmt.Errorf("%w: %v", ErrCapacity, err)
	}
	return fmt.Errorf("failed to encode QR code: %w", err)
}

// CapacityMessage is what users see for ErrCapacity.
const CapacityMessage = "Error generating QR code. The content may be too long for the selected error correction level."

// finderSpan is the side of a finder pattern in modules.
const finderSpan = 7

// Grid is a square QR module matrix, row major.
type Grid struct {
	size  int
	cells []bool
}

// NewGrid builds a grid from rows; used by tests and the matrix writer.
func NewGrid(rows [][]bool) *Grid {
	g := &Grid{size: len(rows), cells: make([]bool, len(rows)*len(rows))}
	for r, row := range rows {
		for c := 0; c < len(row) && c < g.size; c++ {
			g.cells[r*g.size+c] = row[c]
		}
	}
	return g
}

func (g *Grid) Size() int { return g.size }

// At reports whether (row, col) is dark. Out-of-range cells are light.
func (g *Grid) At(row, col int) bool {
	if row < 0 || col < 0 || row >= g.size || col >= g.size {
		return false
	}
	return g.cells[row*g.size+col]
}

// IsFinder reports whether (row, col) lies in one of the three 7x7 corner
// finder patterns.
func (g *Grid) IsFinder(row, col int) bool {
	n := g.size
	return (row < finderSpan && col < finderSpan) ||
		(row < finderSpan && col >= n-finderSpan) ||
		(row >= n-finderSpan && col < finderSpan)
}

// Count returns the number of dark modules.
func (g *Grid) Count() int {
	n := 0
	for _, v := range g.cells {
		if v {
			n++
		}
	}
	return n
}

// matrixWriter implements qrcode.Writer by copying the encoded matrix.
type matrixWriter struct {
	grid *Grid
}

func (w *matrixWriter) Write(mat qrcode.Matrix) error {
	if mat.Width() != mat.Height() {
		return fmt.Errorf("non-square matrix %dx%d", mat.Width(), mat.Height())
	}
	n := mat.Width()
	g := &Grid{size: n, cells: make([]bool, n*n)}
	mat.Iterate(qrcode.IterDirection_ROW, func(x, y int, v qrcode.QRValue) {
		if x < n && y < n {
			g.cells[y*n+x] = v.IsSet()
		}
	})
	w.grid = g
	return nil
}

func (w *matrixWriter) Close() error { return nil }

// BuildQRModules encodes payload at level and returns its module grid.
func BuildQRModules(payload string, level Level) (*Grid, error) {
	qrc, err := qrcode.NewWith(payload, level.option())
	if err != nil {
		return nil, encodeError(err)
	}
	w := &matrixWriter{}
	if err := qrc.Save(w); err != nil {
		return nil, fmt.Errorf("failed to capture QR matrix: %w", err)
	}
	if w.grid == nil {
		return nil, errors.New("QR encoder produced no matrix")
	}
	return w.grid, nil
}
