package pdf

import (
	"strconv"
	"strings"
)

// operand is one content stream operand. Only strings and numbers are
// kept; everything else is recorded as a placeholder.
type operand struct {
	str   string
	isStr bool
	num   float64
	isNum bool
	array []operand
	isArr bool
}

// ShownText returns the text drawn by the text showing operators of a
// page content stream. Line moves become newlines and horizontal moves
// become spaces. The result is an approximation: glyphs drawn through
// custom font encodings come out as their raw codes.
func ShownText(content []byte) string {
	s := &scanner{data: content}
	var (
		sb    strings.Builder
		stack []operand
	)

	space := func() {
		if n := sb.Len(); n > 0 {
			if last := sb.String()[n-1]; last != ' ' && last != '\n' {
				sb.WriteByte(' ')
			}
		}
	}
	newline := func() {
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
	}

	for {
		op, tok, ok := s.next()
		if !ok {
			break
		}
		if op == "" {
			stack = append(stack, tok)
			continue
		}

		switch op {
		case "Tj":
			if v, ok := last(stack); ok && v.isStr {
				sb.WriteString(v.str)
			}
		case "TJ":
			if v, ok := last(stack); ok && v.isArr {
				for _, e := range v.array {
					switch {
					case e.isStr:
						sb.WriteString(e.str)
					case e.isNum && e.num < -200:
						space()
					}
				}
			}
		case "'", "\"":
			newline()
			if v, ok := last(stack); ok && v.isStr {
				sb.WriteString(v.str)
			}
		case "T*":
			newline()
		case "Td", "TD":
			if len(stack) >= 2 && stack[len(stack)-1].isNum && stack[len(stack)-1].num != 0 {
				newline()
			} else {
				space()
			}
		case "ET":
			space()
		}
		stack = stack[:0]
	}
	return strings.TrimRight(sb.String(), " ")
}

func last(stack []operand) (operand, bool) {
	if len(stack) == 0 {
		return operand{}, false
	}
	return stack[len(stack)-1], true
}

type scanner struct {
	data []byte
	pos  int
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

// next returns either an operator name or an operand.
func (s *scanner) next() (string, operand, bool) {
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		switch {
		case isSpace(c):
			s.pos++
		case c == '%':
			for s.pos < len(s.data) && s.data[s.pos] != '\n' && s.data[s.pos] != '\r' {
				s.pos++
			}
		case c == '(':
			s.pos++
			return "", operand{str: s.literal(), isStr: true}, true
		case c == '<' && s.pos+1 < len(s.data) && s.data[s.pos+1] == '<':
			s.pos += 2
			s.skipDict()
			return "", operand{}, true
		case c == '<':
			s.pos++
			return "", operand{str: s.hex(), isStr: true}, true
		case c == '[':
			s.pos++
			return "", s.arrayOperand(), true
		case c == ']' || c == '>' || c == ')' || c == '{' || c == '}':
			s.pos++
		case c == '/':
			s.pos++
			s.word()
			return "", operand{}, true
		default:
			w := s.word()
			if w == "" {
				s.pos++
				continue
			}
			if n, err := strconv.ParseFloat(w, 64); err == nil {
				return "", operand{num: n, isNum: true}, true
			}
			if w == "BI" {
				s.skipInlineImage()
				continue
			}
			return w, operand{}, true
		}
	}
	return "", operand{}, false
}

func (s *scanner) word() string {
	start := s.pos
	for s.pos < len(s.data) && !isSpace(s.data[s.pos]) && !isDelimiter(s.data[s.pos]) {
		s.pos++
	}
	return string(s.data[start:s.pos])
}

func (s *scanner) arrayOperand() operand {
	arr := operand{isArr: true}
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		if c == ']' {
			s.pos++
			return arr
		}
		if isSpace(c) {
			s.pos++
			continue
		}
		op, tok, ok := s.next()
		if !ok {
			break
		}
		if op == "" {
			arr.array = append(arr.array, tok)
		}
	}
	return arr
}

// literal reads a parenthesised string. The opening parenthesis has been
// consumed.
func (s *scanner) literal() string {
	var sb strings.Builder
	depth := 1
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		s.pos++
		switch c {
		case '\\':
			if s.pos >= len(s.data) {
				return sb.String()
			}
			e := s.data[s.pos]
			s.pos++
			switch e {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case 'b':
				sb.WriteByte('\b')
			case 'f':
				sb.WriteByte('\f')
			case '\r':
				if s.pos < len(s.data) && s.data[s.pos] == '\n' {
					s.pos++
				}
			case '\n':
			default:
				if e >= '0' && e <= '7' {
					val := int(e - '0')
					for i := 0; i < 2 && s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '7'; i++ {
						val = val*8 + int(s.data[s.pos]-'0')
						s.pos++
					}
					sb.WriteByte(byte(val))
				} else {
					sb.WriteByte(e)
				}
			}
		case '(':
			depth++
			sb.WriteByte(c)
		case ')':
			depth--
			if depth == 0 {
				return sb.String()
			}
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// hex reads a hexadecimal string. The opening angle bracket has been
// consumed. Two byte strings starting with a byte order mark are decoded
// as UTF-16BE.
func (s *scanner) hex() string {
	var digits []byte
	for s.pos < len(s.data) && s.data[s.pos] != '>' {
		if c := s.data[s.pos]; !isSpace(c) {
			digits = append(digits, c)
		}
		s.pos++
	}
	s.pos++
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	raw := make([]byte, 0, len(digits)/2)
	for i := 0; i < len(digits); i += 2 {
		v, err := strconv.ParseUint(string(digits[i:i+2]), 16, 8)
		if err != nil {
			return ""
		}
		raw = append(raw, byte(v))
	}
	if len(raw) >= 2 && raw[0] == 0xFE && raw[1] == 0xFF {
		return utf16BE(raw[2:])
	}
	return string(raw)
}

func utf16BE(b []byte) string {
	var sb strings.Builder
	for i := 0; i+1 < len(b); i += 2 {
		r := rune(b[i])<<8 | rune(b[i+1])
		if r >= 0xD800 && r < 0xDC00 && i+3 < len(b) {
			lo := rune(b[i+2])<<8 | rune(b[i+3])
			r = (r-0xD800)<<10 + (lo - 0xDC00) + 0x10000
			i += 2
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (s *scanner) skipDict() {
	depth := 1
	for s.pos+1 < len(s.data) && depth > 0 {
		switch {
		case s.data[s.pos] == '<' && s.data[s.pos+1] == '<':
			depth++
			s.pos += 2
		case s.data[s.pos] == '>' && s.data[s.pos+1] == '>':
			depth--
			s.pos += 2
		default:
			s.pos++
		}
	}
}

// skipInlineImage skips binary image data up to the EI operator.
func (s *scanner) skipInlineImage() {
	for s.pos+2 < len(s.data) {
		if isSpace(s.data[s.pos]) && s.data[s.pos+1] == 'E' && s.data[s.pos+2] == 'I' &&
			(s.pos+3 == len(s.data) || isSpace(s.data[s.pos+3])) {
			s.pos += 3
			return
		}
		s.pos++
	}
	s.pos = len(s.data)
}
