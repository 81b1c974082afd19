package symbol

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/codabar"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/code93"
	"github.com/boombuler/barcode/ean"
	"github.com/boombuler/barcode/twooffive"
)

// Format is a 1D barcode symbology.
type Format string

const (
	CODE128    Format = "CODE128"
	CODE128A   Format = "CODE128A"
	CODE128B   Format = "CODE128B"
	CODE128C   Format = "CODE128C"
	EAN13      Format = "EAN13"
	EAN8       Format = "EAN8"
	EAN5       Format = "EAN5"
	EAN2       Format = "EAN2"
	UPC        Format = "UPC"
	UPCE       Format = "UPCE"
	CODE39     Format = "CODE39"
	CODE93     Format = "CODE93"
	ITF14      Format = "ITF14"
	ITF        Format = "ITF"
	MSI        Format = "MSI"
	MSI10      Format = "MSI10"
	MSI11      Format = "MSI11"
	MSI1010    Format = "MSI1010"
	MSI1110    Format = "MSI1110"
	Pharmacode Format = "pharmacode"
	Codabar    Format = "codabar"
)

var Formats = []Format{
	CODE128, CODE128A, CODE128B, CODE128C, EAN13, EAN8, EAN5, EAN2, UPC, UPCE,
	CODE39, CODE93, ITF14, ITF, MSI, MSI10, MSI11, MSI1010, MSI1110, Pharmacode, Codabar,
}

func ParseFormat(s string) (Format, error) {
	if s == "" {
		return CODE128, nil
	}
	for _, f := range Formats {
		if strings.EqualFold(string(f), s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown barcode format %q", s)
}

var defaultContent = map[Format]string{
	CODE128:    "Example 1234",
	CODE128B:   "Example 1234",
	CODE128A:   "EXAMPLE",
	CODE128C:   "12345678",
	EAN13:      "1234567890128",
	EAN8:       "12345670",
	EAN5:       "12345",
	EAN2:       "12",
	UPC:        "123456789012",
	UPCE:       "123456",
	CODE39:     "CODE39 EXAMPLE",
	CODE93:     "CODE93 EXAMPLE",
	ITF14:      "12345678901231",
	ITF:        "123456",
	MSI:        "123456789",
	MSI10:      "123456789",
	MSI11:      "123456789",
	MSI1010:    "123456789",
	MSI1110:    "123456789",
	Pharmacode: "1337",
	Codabar:    "A12345B",
}

// DefaultContent is the sample content offered when switching to f.
func DefaultContent(f Format) string {
	if c, ok := defaultContent[f]; ok {
		return c
	}
	return "Example"
}

// InvalidMessage is what users see for an InvalidContentError.
const InvalidMessage = "Invalid content for the selected barcode format."

// InvalidContentError reports content the symbology cannot encode.
type InvalidContentError struct {
	Format  Format
	Content string
	Reason  string
}

func (e *InvalidContentError) Error() string {
	return fmt.Sprintf("invalid %s content %q: %s", e.Format, e.Content, e.Reason)
}

func invalid(f Format, content, reason string) error {
	return &InvalidContentError{Format: f, Content: content, Reason: reason}
}

// UserMessage maps encoder errors to the text shown next to the canvas.
func UserMessage(err error) string {
	var ice *InvalidContentError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCapacity):
		return CapacityMessage
	case errors.As(err, &ice):
		return InvalidMessage
	}
	return err.Error()
}

// Bars is a 1D symbol: one entry per module, true for a bar.
type Bars struct {
	Format  Format
	Modules []bool
	// Text is the human-readable line printed with the bars.
	Text string
}

// Width is the symbol width in modules.
func (b *Bars) Width() int { return len(b.Modules) }

// Runs returns [start, length) pairs for every contiguous bar.
func (b *Bars) Runs() [][2]int {
	var runs [][2]int
	for i := 0; i < len(b.Modules); {
		if !b.Modules[i] {
			i++
			continue
		}
		j := i
		for j < len(b.Modules) && b.Modules[j] {
			j++
		}
		runs = append(runs, [2]int{i, j - i})
		i = j
	}
	return runs
}

var (
	digitsRe   = regexp.MustCompile(`^[0-9]+$`)
	code128ARe = regexp.MustCompile(`^[\x00-\x5F]+$`)
	code128BRe = regexp.MustCompile(`^[\x20-\x7F]+$`)
	code128CRe = regexp.MustCompile(`^([0-9]{2})+$`)
	code39Re   = regexp.MustCompile(`^[0-9A-Z\-. $/+%]+$`)
	codabarRe  = regexp.MustCompile(`^[A-D][0-9\-$:./+]+[A-D]$`)
	codabarRaw = regexp.MustCompile(`^[0-9\-$:./+]+$`)
)

// Validate reports whether content is encodable as f.
func Validate(f Format, content string) error {
	_, err := BuildBarcode(content, f)
	return err
}

// BuildBarcode encodes content as f.
func BuildBarcode(content string, f Format) (*Bars, error) {
	if content == "" {
		return nil, invalid(f, content, "empty content")
	}
	switch f {
	case CODE128:
		for _, r := range content {
			if r > 0x7f {
				return nil, invalid(f, content, "non-ASCII character")
			}
		}
		return fromLibrary(f, content, content, func() (barcode.Barcode, error) { return code128.Encode(content) })
	case CODE128A, CODE128B, CODE128C:
		re := map[Format]*regexp.Regexp{CODE128A: code128ARe, CODE128B: code128BRe, CODE128C: code128CRe}[f]
		if !re.MatchString(content) {
			return nil, invalid(f, content, "character outside the code set")
		}
		return buildCode128Set(f, content)
	case EAN13:
		if !digitsRe.MatchString(content) || (len(content) != 12 && len(content) != 13) {
			return nil, invalid(f, content, "needs 12 or 13 digits")
		}
		return fromLibrary(f, content, content, func() (barcode.Barcode, error) { return ean.Encode(content) })
	case EAN8:
		if !digitsRe.MatchString(content) || (len(content) != 7 && len(content) != 8) {
			return nil, invalid(f, content, "needs 7 or 8 digits")
		}
		return fromLibrary(f, content, content, func() (barcode.Barcode, error) { return ean.Encode(content) })
	case UPC:
		if !digitsRe.MatchString(content) || (len(content) != 11 && len(content) != 12) {
			return nil, invalid(f, content, "needs 11 or 12 digits")
		}
		// UPC-A is EAN-13 with a leading zero; the bars are identical.
		return fromLibrary(f, content, content, func() (barcode.Barcode, error) { return ean.Encode("0" + content) })
	case CODE39:
		if !code39Re.MatchString(content) {
			return nil, invalid(f, content, "unsupported character")
		}
		return fromLibrary(f, content, content, func() (barcode.Barcode, error) { return code39.Encode(content, false, false) })
	case CODE93:
		if !code39Re.MatchString(content) {
			return nil, invalid(f, content, "unsupported character")
		}
		return fromLibrary(f, content, content, func() (barcode.Barcode, error) { return code93.Encode(content, true, false) })
	case ITF:
		if !code128CRe.MatchString(content) {
			return nil, invalid(f, content, "needs an even number of digits")
		}
		return fromLibrary(f, content, content, func() (barcode.Barcode, error) { return twooffive.Encode(content, true) })
	case ITF14:
		return buildITF14(content)
	case Codabar:
		data := strings.ToUpper(content)
		if codabarRaw.MatchString(data) {
			data = "A" + data + "A"
		}
		if !codabarRe.MatchString(data) {
			return nil, invalid(f, content, "needs A-D start/stop and digits or -$:/.+")
		}
		return fromLibrary(f, content, content, func() (barcode.Barcode, error) { return codabar.Encode(data) })
	case EAN2:
		return buildEAN2(content)
	case EAN5:
		return buildEAN5(content)
	case UPCE:
		return buildUPCE(content)
	case MSI, MSI10, MSI11, MSI1010, MSI1110:
		return buildMSI(f, content)
	case Pharmacode:
		return buildPharmacode(content)
	}
	return nil, fmt.Errorf("unknown barcode format %q", f)
}

func fromLibrary(f Format, content, text string, enc func() (barcode.Barcode, error)) (*Bars, error) {
	bc, err := enc()
	if err != nil {
		return nil, invalid(f, content, err.Error())
	}
	b := bc.Bounds()
	mods := make([]bool, b.Dx())
	for x := b.Min.X; x < b.Max.X; x++ {
		r, _, _, _ := bc.At(x, b.Min.Y).RGBA()
		mods[x-b.Min.X] = r < 0x8000
	}
	return &Bars{Format: f, Modules: mods, Text: text}, nil
}

func buildITF14(content string) (*Bars, error) {
	if !digitsRe.MatchString(content) || (len(content) != 13 && len(content) != 14) {
		return nil, invalid(ITF14, content, "needs 13 or 14 digits")
	}
	check := itf14Checksum(content[:13])
	if len(content) == 14 && content[13] != check {
		return nil, invalid(ITF14, content, "checksum mismatch")
	}
	data := content[:13] + string(check)
	return fromLibrary(ITF14, content, data, func() (barcode.Barcode, error) { return twooffive.Encode(data, true) })
}

// itf14Checksum weights the 13 data digits 3,1,3,... from the left.
func itf14Checksum(data string) byte {
	sum := 0
	for i := 0; i < len(data); i++ {
		n := int(data[i] - '0')
		if i%2 == 0 {
			sum += n * 3
		} else {
			sum += n
		}
	}
	return byte('0' + (10-sum%10)%10)
}

func buildPharmacode(content string) (*Bars, error) {
	n, err := strconv.Atoi(content)
	if err != nil || n < 3 || n > 131070 {
		return nil, invalid(Pharmacode, content, "needs a number between 3 and 131070")
	}
	var pattern string
	for n != 0 {
		if n%2 == 0 {
			pattern = "11100" + pattern
			n = (n - 2) / 2
		} else {
			pattern = "100" + pattern
			n = (n - 1) / 2
		}
	}
	return &Bars{Format: Pharmacode, Modules: bits(pattern[:len(pattern)-2]), Text: content}, nil
}

func bits(pattern string) []bool {
	out := make([]bool, len(pattern))
	for i := range pattern {
		out[i] = pattern[i] == '1'
	}
	return out
}
