package service

import (
	"regexp"
	"strings"
)

// latinToCyrillic maps Latin look-alikes produced by the recognizer onto the
// Cyrillic letters allowed on Russian plates.
var latinToCyrillic = map[rune]rune{
	'A': 'А', 'B': 'В', 'C': 'С', 'E': 'Е', 'H': 'Н', 'K': 'К',
	'M': 'М', 'O': 'О', 'P': 'Р', 'T': 'Т', 'X': 'Х', 'Y': 'У',
}

const plateLetters = "АВЕКМНОРСТУХ"

var (
	// А123ВС77, А123ВС777 or a bare А123ВС
	plateStandard = regexp.MustCompile(`^([` + plateLetters + `]\d{3}[` + plateLetters + `]{2})(\d{2,3})?$`)
	// 77А123ВС: region read in front of the base
	plateReversed = regexp.MustCompile(`^(\d{2,3})([` + plateLetters + `]\d{3}[` + plateLetters + `]{2})$`)

	unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_\-]`)
)

// NormalizePlate upper-cases the recognized text, drops everything except
// A-Z, А-Я and digits, and replaces Latin look-alikes with Cyrillic.
func NormalizePlate(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(raw) {
		switch {
		case r >= '0' && r <= '9', r >= 'А' && r <= 'Я':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			if c, ok := latinToCyrillic[r]; ok {
				r = c
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParsePlate splits a normalized plate into its base and region. ok is false
// when the text is not a plate at all; region is empty when it was not read.
func ParsePlate(plate string) (base, region string, ok bool) {
	if m := plateStandard.FindStringSubmatch(plate); m != nil {
		return m[1], m[2], true
	}
	if m := plateReversed.FindStringSubmatch(plate); m != nil {
		return m[2], m[1], true
	}
	return "", "", false
}

// completePlate picks the registered plate for a region-less base: the exact
// match first, else the longest base+region candidate.
func completePlate(base string, candidates []string) string {
	best := ""
	for _, c := range candidates {
		if c == base {
			return c
		}
		tail := strings.TrimPrefix(c, base)
		if tail == c || len(tail) < 1 || len(tail) > 3 || !isDigits(tail) {
			continue
		}
		if len(c) > len(best) {
			best = c
		}
	}
	return best
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// SafeName makes a point name usable as a file name.
func SafeName(name string) string {
	return unsafeNameChars.ReplaceAllString(strings.TrimSpace(name), "_")
}
