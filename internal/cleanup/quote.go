package cleanup

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Quote renders s as a single shell word that bash reads back verbatim.
// Plain strings use single quotes. Strings with control characters use
// ANSI-C quoting so the word never spans more than one line.
func Quote(s string) string {
	if !needsANSIC(s) {
		return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
	}

	var b strings.Builder
	b.WriteString("$'")
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(&b, `\x%02x`, c)
			} else {
				b.WriteByte(c)
			}
		}
	}
	b.WriteString("'")
	return b.String()
}

func needsANSIC(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] == 0x7f {
			return true
		}
	}
	return false
}

var errUnterminated = errors.New("unterminated quoted word")

// Unquote parses one word produced by Quote and returns its value along with
// whatever follows the word.
func Unquote(word string) (string, string, error) {
	if strings.HasPrefix(word, "$'") {
		return unquoteANSIC(word[2:])
	}
	if !strings.HasPrefix(word, "'") {
		return "", "", fmt.Errorf("expected quoted word, got %q", word)
	}

	var b strings.Builder
	rest := word
	for strings.HasPrefix(rest, "'") {
		end := strings.IndexByte(rest[1:], '\'')
		if end < 0 {
			return "", "", errUnterminated
		}
		b.WriteString(rest[1 : end+1])
		rest = rest[end+2:]
		if !strings.HasPrefix(rest, `\'`) {
			break
		}
		b.WriteByte('\'')
		rest = rest[2:]
	}
	return b.String(), rest, nil
}

func unquoteANSIC(s string) (string, string, error) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\'' {
			return b.String(), s[i+1:], nil
		}
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", "", errUnterminated
		}
		switch s[i] {
		case '\\':
			b.WriteByte('\\')
		case '\'':
			b.WriteByte('\'')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'x':
			if i+2 >= len(s) {
				return "", "", errUnterminated
			}
			v, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
			if err != nil {
				return "", "", fmt.Errorf("bad escape \\x%s: %w", s[i+1:i+3], err)
			}
			b.WriteByte(byte(v))
			i += 2
		default:
			return "", "", fmt.Errorf("unsupported escape \\%c", s[i])
		}
	}
	return "", "", errUnterminated
}
