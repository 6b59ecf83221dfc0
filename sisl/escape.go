package sisl

import "fmt"

// Unescape converts the literal escape syntax inside a SISL string
// token to raw byte content. It processes \" \\ \r \t \n as
// single-character substitutions, \xHH as one raw byte, and
// \uHHHH / \UHHHHHHHH as a Unicode codepoint packed to UTF-8.
func Unescape(input string) (string, error) {
	result := make([]byte, 0, len(input))
	pos := 0

	for pos < len(input) {
		if input[pos] == '\\' && pos+1 < len(input) {
			pos++ // skip backslash
			c := input[pos]
			pos++

			switch c {
			case '"':
				result = append(result, '"')
			case '\\':
				result = append(result, '\\')
			case 'r':
				result = append(result, '\r')
			case 't':
				result = append(result, '\t')
			case 'n':
				result = append(result, '\n')
			case 'x':
				v, err := parseHex(input, &pos, 2)
				if err != nil {
					return "", err
				}
				result = append(result, byte(v))
			case 'u':
				v, err := parseHex(input, &pos, 4)
				if err != nil {
					return "", err
				}
				utf8Bytes, err := codepointToUTF8(v)
				if err != nil {
					return "", err
				}
				result = append(result, utf8Bytes...)
			case 'U':
				v, err := parseHex(input, &pos, 8)
				if err != nil {
					return "", err
				}
				utf8Bytes, err := codepointToUTF8(v)
				if err != nil {
					return "", err
				}
				result = append(result, utf8Bytes...)
			default:
				return "", &EscapeError{Message: fmt.Sprintf("invalid escape sequence: \\%c", c)}
			}
		} else {
			result = append(result, input[pos])
			pos++
		}
	}

	return string(result), nil
}

// Escape converts raw byte content to the literal escape syntax.
// Quote, backslash, CR, TAB and LF become two-character sequences;
// printable ASCII passes through; every other byte becomes \xHH.
// The forward direction never emits \u or \U, but Unescape still
// accepts them for interoperability with other encoders.
func Escape(input string) string {
	result := make([]byte, 0, len(input))

	for i := 0; i < len(input); i++ {
		c := input[i]
		switch c {
		case '"':
			result = append(result, '\\', '"')
		case '\\':
			result = append(result, '\\', '\\')
		case '\r':
			result = append(result, '\\', 'r')
		case '\t':
			result = append(result, '\\', 't')
		case '\n':
			result = append(result, '\\', 'n')
		default:
			if c >= 0x20 && c <= 0x7E {
				result = append(result, c)
			} else {
				result = append(result, '\\', 'x', hexDigit(c>>4), hexDigit(c&0x0F))
			}
		}
	}

	return string(result)
}

// codepointToUTF8 packs a Unicode codepoint to UTF-8 bytes using
// standard bit-packing.
func codepointToUTF8(cp uint32) ([]byte, error) {
	switch {
	case cp < 0x80:
		return []byte{byte(cp)}, nil
	case cp < 0x800:
		return []byte{
			byte(0xC0 | (cp >> 6)),
			byte(0x80 | (cp & 0x3F)),
		}, nil
	case cp < 0x10000:
		return []byte{
			byte(0xE0 | (cp >> 12)),
			byte(0x80 | ((cp >> 6) & 0x3F)),
			byte(0x80 | (cp & 0x3F)),
		}, nil
	case cp < 0x110000:
		return []byte{
			byte(0xF0 | (cp >> 18)),
			byte(0x80 | ((cp >> 12) & 0x3F)),
			byte(0x80 | ((cp >> 6) & 0x3F)),
			byte(0x80 | (cp & 0x3F)),
		}, nil
	default:
		return nil, &EscapeError{Message: "invalid Unicode codepoint"}
	}
}

// parseHex reads exactly count hex digits starting at *pos.
func parseHex(input string, pos *int, count int) (uint32, error) {
	var value uint32
	for i := 0; i < count; i++ {
		if *pos >= len(input) || !isHexDigit(input[*pos]) {
			return 0, &EscapeError{Message: "invalid hex escape sequence"}
		}
		value = (value << 4) | uint32(hexValue(input[*pos]))
		*pos++
	}
	return value, nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return 0
	}
}

func hexDigit(v byte) byte {
	if v < 10 {
		return '0' + v
	}
	return 'a' + (v - 10)
}
