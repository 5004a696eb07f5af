// Package words maps a wall-clock time onto the set of phrases a word clock
// lights up. Encode is pure: same input, same output, no state.
package words

// Word identifies one phrase segment on the clock face. Words are bit flags
// so a whole face state fits in one Set.
type Word uint32

const (
	// Minute phrases.
	Oclock Word = 1 << iota
	FiveMin
	TenMin
	Quarter
	Twenty
	Half
	Minutes // lit by the display self-test only; Encode never sets it
	Past
	To
	// Hour words.
	One
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Eleven
	Twelve
)

// Set is the set of currently lit words.
type Set uint32

// Of builds a Set from individual words.
func Of(ws ...Word) Set {
	var s Set
	for _, w := range ws {
		s |= Set(w)
	}
	return s
}

// Has reports whether w is lit in s.
func (s Set) Has(w Word) bool {
	return uint32(s)&uint32(w) != 0
}

// hourWords is indexed by 12-hour form (1..12).
var hourWords = [13]Word{
	0, One, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Eleven, Twelve,
}

// minutePhrases is indexed by 5-minute bucket (minute / 5). Buckets 5 and 7
// both read "twenty five"; that is the English idiom, not an error.
var minutePhrases = [12]Set{
	Set(Oclock),
	Set(FiveMin),
	Set(TenMin),
	Set(Quarter),
	Set(Twenty),
	Set(Twenty) | Set(FiveMin),
	Set(Half),
	Set(Twenty) | Set(FiveMin),
	Set(Twenty),
	Set(Quarter),
	Set(TenMin),
	Set(FiveMin),
}

// Encode returns the words that spell out the given time. hour is 0..23,
// minute 0..59; every pair in that range is defined.
func Encode(hour, minute int) Set {
	h := hour % 12
	if h == 0 {
		h = 12
	}

	s := minutePhrases[minute/5]
	if minute < 5 {
		// "h o'clock" — no PAST or TO on the hour.
		return s | Set(hourWords[h])
	}
	if minute < 35 {
		return s | Set(Past) | Set(hourWords[h])
	}
	// Past the half hour we count down to the next hour ("twenty to eight").
	next := h%12 + 1
	return s | Set(To) | Set(hourWords[next])
}

// readingOrder is the order words appear when the face is read aloud.
var readingOrder = []Word{
	Twenty, Half, Quarter, TenMin, FiveMin, Minutes, Past, To,
	One, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Eleven, Twelve,
	Oclock,
}

var wordNames = map[Word]string{
	Oclock:  "OCLOCK",
	FiveMin: "FIVE",
	TenMin:  "TEN",
	Quarter: "QUARTER",
	Twenty:  "TWENTY",
	Half:    "HALF",
	Minutes: "MINUTES",
	Past:    "PAST",
	To:      "TO",
	One:     "ONE",
	Two:     "TWO",
	Three:   "THREE",
	Four:    "FOUR",
	Five:    "FIVE",
	Six:     "SIX",
	Seven:   "SEVEN",
	Eight:   "EIGHT",
	Nine:    "NINE",
	Ten:     "TEN",
	Eleven:  "ELEVEN",
	Twelve:  "TWELVE",
}

// String returns the face name of the word (e.g. "QUARTER").
func (w Word) String() string {
	if name, ok := wordNames[w]; ok {
		return name
	}
	return "UNKNOWN"
}

// Words returns the lit words in reading order.
func (s Set) Words() []Word {
	var out []Word
	for _, w := range readingOrder {
		if s.Has(w) {
			out = append(out, w)
		}
	}
	return out
}

// String spells the set out the way the face reads, e.g. "TWENTY FIVE PAST SEVEN".
func (s Set) String() string {
	var out string
	for _, w := range s.Words() {
		if out != "" {
			out += " "
		}
		out += w.String()
	}
	return out
}

// All lists every word on the face in reading order, for display self-tests
// and the status page.
func All() []Word {
	out := make([]Word, len(readingOrder))
	copy(out, readingOrder)
	return out
}
