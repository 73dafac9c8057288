package features

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
	"github.com/neurlang/ner/hash"
)

// indicators returns the names of the binary features that fire for a single
// normalized token, independently of its position.
func indicators(token, language string) []string {
	lower := strings.ToLower(token)
	out := []string{"w=" + lower, "sh=" + shape(token)}

	if stem, err := snowball.Stem(lower, language, true); err == nil && stem != "" {
		out = append(out, "st="+stem)
	}

	runes := []rune(lower)
	for k := 1; k <= 3 && k <= len(runes); k++ {
		out = append(out,
			"p"+strconv.Itoa(k)+"="+string(runes[:k]),
			"s"+strconv.Itoa(k)+"="+string(runes[len(runes)-k:]))
	}

	var upper, letters, digits, puncts int
	for _, r := range token {
		switch {
		case unicode.IsUpper(r):
			upper++
			letters++
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
			digits++
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			puncts++
		}
	}
	n := len([]rune(token))
	first, _ := firstRune(token)
	if unicode.IsUpper(first) {
		out = append(out, "cap")
	}
	if letters > 0 && upper == letters {
		out = append(out, "allcap")
	}
	if n > 0 && digits == n {
		out = append(out, "digit")
	} else if digits > 0 {
		out = append(out, "hasdigit")
	}
	if n > 0 && puncts == n {
		out = append(out, "punct")
	}
	if strings.ContainsRune(token, '-') {
		out = append(out, "hyphen")
	}
	out = append(out, "len="+bucket(n))
	return out
}

// shape maps upper case letters to X, other letters to x and digits to d,
// collapsing runs of the same class.
func shape(token string) string {
	var b strings.Builder
	var last rune
	for _, r := range token {
		c := r
		switch {
		case unicode.IsUpper(r):
			c = 'X'
		case unicode.IsLetter(r):
			c = 'x'
		case unicode.IsDigit(r):
			c = 'd'
		}
		if c != last {
			b.WriteRune(c)
			last = c
		}
	}
	return b.String()
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}

// bucket coarsens a length so that long tokens and spans share a feature.
func bucket(n int) string {
	switch {
	case n <= 3:
		return strconv.Itoa(n)
	case n <= 6:
		return "4-6"
	default:
		return "7+"
	}
}

func bases(names []string) []uint32 {
	out := make([]uint32, len(names))
	for i, name := range names {
		out[i] = hash.String(name)
	}
	return out
}
