package ascii

import (
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// Quote returns v as a double quoted string literal of dialect d.
func Quote(v string, d Dialect) string {
	res := make([]byte, 1, len(v)+2)
	res[0] = '"'
	for _, r := range v {
		switch r {
		case '"':
			res = append(res, '\\', '"')
		case '\\':
			res = append(res, '\\', '\\')
		case '\b':
			res = append(res, '\\', 'b')
		case '\n':
			res = append(res, '\\', 'n')
		case '\r':
			res = append(res, '\\', 'r')
		case '\t':
			res = append(res, '\\', 't')
		default:
			switch {
			case unicode.IsControl(r):
				res = appendOctal(res, r)
			case r < utf8.RuneSelf || d == OpenStep:
				res = utf8.AppendRune(res, r)
			case r <= 0xff:
				res = appendOctal(res, r)
			default:
				var units []uint16
				if r1, r2 := utf16.EncodeRune(r); r1 != unicode.ReplacementChar {
					units = []uint16{uint16(r1), uint16(r2)}
				} else {
					units = []uint16{uint16(r)}
				}
				for _, u := range units {
					res = append(res, '\\', 'U', hexDigits[u>>12], hexDigits[u>>8&0xf], hexDigits[u>>4&0xf], hexDigits[u&0xf])
				}
			}
		}
	}
	return string(append(res, '"'))
}

const hexDigits = "0123456789abcdef"

// appendOctal appends the three digit octal escape of a rune below 0x100.
func appendOctal(d []byte, r rune) []byte {
	return append(d, '\\', byte('0'+r>>6&7), byte('0'+r>>3&7), byte('0'+r&7))
}
