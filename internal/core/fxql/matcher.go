package fxql

import (
	"unicode"
	"unicode/utf8"
)

// Match is the raw text extracted from one FXQL block, before validation.
type Match struct {
	SourceCurrency      string
	DestinationCurrency string
	BuyPrice            string
	SellPrice           string
	CapAmount           string

	// Start and End are byte offsets of the block within the scanned input.
	Start int
	End   int
}

// Text returns the matched block as it appeared in input.
func (m Match) Text(input string) string {
	return input[m.Start:m.End]
}

// FindAll returns every non-overlapping block in s, scanning left to right.
// After a match, scanning resumes at its end. After a failed attempt it
// resumes at the next byte, so blocks are found at any offset.
func FindAll(s string) []Match {
	var matches []Match
	for i := 0; i < len(s); {
		if !isUpper(s[i]) {
			i++
			continue
		}
		m, ok := MatchAt(s, i)
		if !ok {
			i++
			continue
		}
		matches = append(matches, m)
		i = m.End
	}
	return matches
}

// MatchAt attempts to match one block starting exactly at offset start.
func MatchAt(s string, start int) (Match, bool) {
	sc := scanner{src: s, pos: start}
	m := Match{Start: start}

	var ok bool
	if m.SourceCurrency, ok = sc.code(); !ok {
		return Match{}, false
	}
	if !sc.char('-') {
		return Match{}, false
	}
	if m.DestinationCurrency, ok = sc.code(); !ok {
		return Match{}, false
	}
	sc.skipSpace()
	if !sc.char('{') {
		return Match{}, false
	}
	sc.skipSpace()

	if m.BuyPrice, ok = sc.directive("BUY", sc.number); !ok {
		return Match{}, false
	}
	if !sc.requireSpace() {
		return Match{}, false
	}
	if m.SellPrice, ok = sc.directive("SELL", sc.number); !ok {
		return Match{}, false
	}
	if !sc.requireSpace() {
		return Match{}, false
	}
	if m.CapAmount, ok = sc.directive("CAP", sc.integer); !ok {
		return Match{}, false
	}
	sc.skipSpace()
	if !sc.char('}') {
		return Match{}, false
	}

	m.End = sc.pos
	return m, true
}

// scanner is a cursor over the input. Readers either consume what they
// recognise and report true, or leave pos untouched and report false.
type scanner struct {
	src string
	pos int
}

func (sc *scanner) eof() bool { return sc.pos >= len(sc.src) }

func (sc *scanner) peek() byte { return sc.src[sc.pos] }

func (sc *scanner) char(b byte) bool {
	if sc.eof() || sc.src[sc.pos] != b {
		return false
	}
	sc.pos++
	return true
}

func (sc *scanner) code() (string, bool) {
	if sc.pos+3 > len(sc.src) {
		return "", false
	}
	for i := sc.pos; i < sc.pos+3; i++ {
		if !isUpper(sc.src[i]) {
			return "", false
		}
	}
	code := sc.src[sc.pos : sc.pos+3]
	sc.pos += 3
	return code, true
}

func (sc *scanner) keyword(kw string) bool {
	if len(sc.src)-sc.pos < len(kw) || sc.src[sc.pos:sc.pos+len(kw)] != kw {
		return false
	}
	sc.pos += len(kw)
	return true
}

// directive reads `KEYWORD <space>+ <value>`.
func (sc *scanner) directive(kw string, value func() (string, bool)) (string, bool) {
	start := sc.pos
	if !sc.keyword(kw) || !sc.requireSpace() {
		sc.pos = start
		return "", false
	}
	v, ok := value()
	if !ok {
		sc.pos = start
		return "", false
	}
	return v, true
}

// number reads [+-]? ( digits ( "." digits? )? | "." digits ).
func (sc *scanner) number() (string, bool) {
	start := sc.pos
	sc.sign()
	intDigits := sc.digits()
	fracDigits := 0
	if !sc.eof() && sc.peek() == '.' {
		sc.pos++
		fracDigits = sc.digits()
	}
	if intDigits == 0 && fracDigits == 0 {
		sc.pos = start
		return "", false
	}
	return sc.src[start:sc.pos], true
}

// integer reads [+-]? digits.
func (sc *scanner) integer() (string, bool) {
	start := sc.pos
	sc.sign()
	if sc.digits() == 0 {
		sc.pos = start
		return "", false
	}
	return sc.src[start:sc.pos], true
}

func (sc *scanner) sign() {
	if !sc.eof() && (sc.peek() == '+' || sc.peek() == '-') {
		sc.pos++
	}
}

func (sc *scanner) digits() int {
	n := 0
	for !sc.eof() && isDigit(sc.peek()) {
		sc.pos++
		n++
	}
	return n
}

func (sc *scanner) skipSpace() int {
	n := 0
	for !sc.eof() {
		_, size := spaceAt(sc.src, sc.pos)
		if size == 0 {
			break
		}
		sc.pos += size
		n++
	}
	return n
}

func (sc *scanner) requireSpace() bool {
	return sc.skipSpace() > 0
}

// spaceAt reports the whitespace rune at offset i and its width, or a zero
// width when s[i] is not whitespace.
func spaceAt(s string, i int) (rune, int) {
	switch s[i] {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return rune(s[i]), 1
	}
	if s[i] < utf8.RuneSelf {
		return 0, 0
	}
	r, size := utf8.DecodeRuneInString(s[i:])
	if unicode.IsSpace(r) || r == '\uFEFF' {
		return r, size
	}
	return 0, 0
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
