package symbol

import "strconv"

// EAN/UPC digit patterns, seven modules each.
var (
	eanL = [10]string{"0001101", "0011001", "0010011", "0111101", "0100011", "0110001", "0101111", "0111011", "0110111", "0001011"}
	eanG = [10]string{"0100111", "0110011", "0011011", "0100001", "0011101", "0111001", "0000101", "0010001", "0001001", "0010111"}
)

func eanDigit(d byte, parity byte) string {
	if parity == 'G' || parity == 'E' {
		return eanG[d-'0']
	}
	return eanL[d-'0']
}

var (
	ean2Parity = [4]string{"LL", "LG", "GL", "GG"}
	ean5Parity = [10]string{"GGLLL", "GLGLL", "GLLGL", "GLLLG", "LGGLL", "LLGGL", "LLLGG", "LGLGL", "LGLLG", "LLGLG"}
)

// addOn encodes an EAN-2/EAN-5 supplement: start guard, digits separated by "01".
func addOn(data, parity string) string {
	out := "1011"
	for i := 0; i < len(data); i++ {
		if i > 0 {
			out += "01"
		}
		out += eanDigit(data[i], parity[i])
	}
	return out
}

func buildEAN2(content string) (*Bars, error) {
	if len(content) != 2 || !digitsRe.MatchString(content) {
		return nil, invalid(EAN2, content, "needs 2 digits")
	}
	n, _ := strconv.Atoi(content)
	return &Bars{Format: EAN2, Modules: bits(addOn(content, ean2Parity[n%4])), Text: content}, nil
}

func ean5Checksum(data string) int {
	sum := 0
	for i := 0; i < len(data); i++ {
		n := int(data[i] - '0')
		if i%2 == 1 {
			sum += n * 9
		} else {
			sum += n * 3
		}
	}
	return sum % 10
}

func buildEAN5(content string) (*Bars, error) {
	if len(content) != 5 || !digitsRe.MatchString(content) {
		return nil, invalid(EAN5, content, "needs 5 digits")
	}
	return &Bars{Format: EAN5, Modules: bits(addOn(content, ean5Parity[ean5Checksum(content)])), Text: content}, nil
}

// upceExpansions maps the last UPC-E digit to the UPC-A layout; X takes the
// next of the six UPC-E digits.
var upceExpansions = [10]string{
	"XX00000XXX", "XX10000XXX", "XX20000XXX", "XXX00000XX", "XXXX00000X",
	"XXXXX00005", "XXXXX00006", "XXXXX00007", "XXXXX00008", "XXXXX00009",
}

var upceParity = [2][10]string{
	{"EEEOOO", "EEOEOO", "EEOOEO", "EEOOOE", "EOEEOO", "EOOEEO", "EOOOEE", "EOEOEO", "EOEOOE", "EOOEOE"},
	{"OOOEEE", "OOEOEE", "OOEEOE", "OOEEEO", "OEOOEE", "OEEOOE", "OEEEOO", "OEOEOE", "OEOEEO", "OEEOEO"},
}

// upcChecksum is the UPC-A check digit of 11 digits.
func upcChecksum(number string) byte {
	sum := 0
	for i := 0; i < 11; i++ {
		n := int(number[i] - '0')
		if i%2 == 0 {
			sum += n * 3
		} else {
			sum += n
		}
	}
	return byte('0' + (10-sum%10)%10)
}

func expandUPCE(middle string, numberSystem byte) string {
	exp := upceExpansions[middle[5]-'0']
	out := []byte{numberSystem}
	k := 0
	for i := 0; i < len(exp); i++ {
		if exp[i] == 'X' {
			out = append(out, middle[k])
			k++
		} else {
			out = append(out, exp[i])
		}
	}
	return string(out) + string(upcChecksum(string(out)))
}

func buildUPCE(content string) (*Bars, error) {
	if !digitsRe.MatchString(content) {
		return nil, invalid(UPCE, content, "needs digits only")
	}
	var middle string
	var ns, check byte
	switch len(content) {
	case 6:
		middle, ns = content, '0'
		upca := expandUPCE(middle, ns)
		check = upca[len(upca)-1]
	case 8:
		ns, middle = content[0], content[1:7]
		if ns != '0' && ns != '1' {
			return nil, invalid(UPCE, content, "number system must be 0 or 1")
		}
		upca := expandUPCE(middle, ns)
		check = upca[len(upca)-1]
		if content[7] != check {
			return nil, invalid(UPCE, content, "checksum mismatch")
		}
	default:
		return nil, invalid(UPCE, content, "needs 6 or 8 digits")
	}

	parity := upceParity[ns-'0'][check-'0']
	pattern := "101"
	for i := 0; i < 6; i++ {
		pattern += eanDigit(middle[i], parity[i])
	}
	pattern += "010101"
	return &Bars{Format: UPCE, Modules: bits(pattern), Text: string(ns) + middle + string(check)}, nil
}

func msiMod10(number string) string {
	sum := 0
	for i := 0; i < len(number); i++ {
		n := int(number[i] - '0')
		if (i+len(number))%2 == 0 {
			sum += n
		} else {
			sum += (n*2)%10 + (n*2)/10
		}
	}
	return strconv.Itoa((10 - sum%10) % 10)
}

func msiMod11(number string) string {
	weights := [6]int{2, 3, 4, 5, 6, 7}
	sum := 0
	for i := 0; i < len(number); i++ {
		n := int(number[len(number)-1-i] - '0')
		sum += weights[i%len(weights)] * n
	}
	return strconv.Itoa((11 - sum%11) % 11)
}

func buildMSI(f Format, content string) (*Bars, error) {
	if !digitsRe.MatchString(content) {
		return nil, invalid(f, content, "needs digits only")
	}
	data := content
	switch f {
	case MSI10:
		data += msiMod10(data)
	case MSI11:
		data += msiMod11(data)
	case MSI1010:
		data += msiMod10(data)
		data += msiMod10(data)
	case MSI1110:
		data += msiMod11(data)
		data += msiMod10(data)
	}

	pattern := "110"
	for i := 0; i < len(data); i++ {
		d := data[i] - '0'
		for bit := 3; bit >= 0; bit-- {
			if d&(1<<bit) != 0 {
				pattern += "110"
			} else {
				pattern += "100"
			}
		}
	}
	pattern += "1001"
	return &Bars{Format: f, Modules: bits(pattern), Text: content}, nil
}
