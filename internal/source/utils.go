package source

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// normalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
// Возвращает новую строку и флаг: были ли замены.
func normalizeCRLF(content string) (string, bool) {
	if !strings.Contains(content, "\r\n") {
		return content, false
	}
	return strings.ReplaceAll(content, "\r\n", "\n"), true
}

const bom = "\uFEFF"

func removeBOM(content string) (string, bool) {
	if strings.HasPrefix(content, bom) {
		return content[len(bom):], true
	}
	return content, false
}

// NormalizeText strips a leading BOM, folds CRLF into LF and converts the
// text to NFC so column arithmetic matches what analyzers report.
func NormalizeText(text string) string {
	text, _ = removeBOM(text)
	text, _ = normalizeCRLF(text)
	if norm.NFC.IsNormalString(text) {
		return text
	}
	return norm.NFC.String(text)
}

// SplitLines splits on "\n" and "\r\n". An empty string is a single empty line.
func SplitLines(text string) []string {
	text, _ = normalizeCRLF(text)
	return strings.Split(text, "\n")
}

// UTF16Len returns the length of s in UTF-16 code units.
func UTF16Len(s string) int {
	units := 0
	for _, r := range s {
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
	}
	return units
}

// ByteOffset converts a UTF-16 column into a byte offset inside line.
// Columns past the end clamp to len(line); negative columns clamp to 0.
func ByteOffset(line string, col int) int {
	if col <= 0 {
		return 0
	}
	units := 0
	i := 0
	for i < len(line) {
		r, size := utf8.DecodeRuneInString(line[i:])
		need := 1
		if r > 0xFFFF {
			need = 2
		}
		if units+need > col {
			break
		}
		units += need
		i += size
		if units == col {
			break
		}
	}
	return i
}
