package phonetics

// Static classification tables for the extractor. These ship with the
// extractor and are part of its version: changing any entry requires
// bumping ExtractorVersion so cached vectors are invalidated together.

// ConsonantClass partitions consonant phonemes by manner of articulation
type ConsonantClass int

const (
	ClassNone ConsonantClass = iota
	ClassPlosive
	ClassFricative
	ClassSibilant
	ClassLiquid
	ClassNasal
	ClassGlide
)

// String returns the lowercase class name
func (c ConsonantClass) String() string {
	switch c {
	case ClassPlosive:
		return "plosive"
	case ClassFricative:
		return "fricative"
	case ClassSibilant:
		return "sibilant"
	case ClassLiquid:
		return "liquid"
	case ClassNasal:
		return "nasal"
	case ClassGlide:
		return "glide"
	default:
		return "none"
	}
}

// digraphs maps two-letter sequences that behave as a single phoneme.
// Scanned before single letters, longest match first.
var digraphs = map[string]phoneme{
	"ch": {class: ClassSibilant, voiced: false}, // affricate, sibilant bucket
	"sh": {class: ClassSibilant, voiced: false},
	"th": {class: ClassFricative, voiced: false},
	"ph": {class: ClassFricative, voiced: false},
	"wh": {class: ClassGlide, voiced: true},
	"ck": {class: ClassPlosive, voiced: false},
	"ng": {class: ClassNasal, voiced: true},
	"gh": {class: ClassFricative, voiced: false},
}

// consonants maps single letters to their default phoneme. The letter c is
// handled contextually in the scanner (soft before e/i/y, hard otherwise);
// the entry here is the hard reading.
var consonants = map[rune]phoneme{
	'p': {class: ClassPlosive, voiced: false},
	'b': {class: ClassPlosive, voiced: true},
	't': {class: ClassPlosive, voiced: false},
	'd': {class: ClassPlosive, voiced: true},
	'k': {class: ClassPlosive, voiced: false},
	'g': {class: ClassPlosive, voiced: true},
	'c': {class: ClassPlosive, voiced: false},
	'q': {class: ClassPlosive, voiced: false},
	'f': {class: ClassFricative, voiced: false},
	'v': {class: ClassFricative, voiced: true},
	'h': {class: ClassFricative, voiced: false},
	's': {class: ClassSibilant, voiced: false},
	'z': {class: ClassSibilant, voiced: true},
	'x': {class: ClassSibilant, voiced: false},
	'j': {class: ClassSibilant, voiced: true},
	'l': {class: ClassLiquid, voiced: true},
	'r': {class: ClassLiquid, voiced: true},
	'm': {class: ClassNasal, voiced: true},
	'n': {class: ClassNasal, voiced: true},
	'w': {class: ClassGlide, voiced: true},
	'y': {class: ClassGlide, voiced: true},
}

// hardConsonants are the acoustically abrupt letters used for the
// hard/soft ratio pair; softConsonants are the sonorant letters.
var hardConsonants = map[rune]bool{
	'k': true, 'g': true, 't': true, 'd': true, 'p': true, 'b': true,
	'q': true, 'x': true, 'z': true, 'c': true,
}

var softConsonants = map[rune]bool{
	'l': true, 'm': true, 'n': true, 'r': true, 'w': true, 'y': true, 'h': true,
}

// Vowel frontness/openness buckets. y is treated as a close front vowel
// when it occupies a vowel slot (between consonants or word-final after a
// consonant).
var frontVowels = map[rune]bool{'a': true, 'e': true, 'i': true, 'y': true}
var backVowels = map[rune]bool{'o': true, 'u': true}
var openVowels = map[rune]bool{'a': true, 'o': true}
var closeVowels = map[rune]bool{'i': true, 'u': true, 'y': true}

func isVowelLetter(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// rareClusters carries rarity weights for consonant sequences that are
// unusual word-internally in the alphabetic convention the extractor
// targets. Higher weight = rarer. Common onsets (st, tr, br, pl, ...)
// deliberately do not appear here.
var rareClusters = map[string]float64{
	"tl": 2.0, "dl": 2.0, "vl": 2.5, "zr": 3.0, "sr": 2.0,
	"kt": 1.5, "pf": 2.0, "gn": 1.5, "kn": 1.0, "ts": 1.0,
	"tn": 2.5, "dn": 2.5, "bm": 3.0, "pn": 2.0, "mn": 2.0,
	"zh": 1.5, "xh": 3.0, "qx": 3.0, "vr": 1.5, "wr": 1.0,
	"fp": 3.0, "kp": 3.0, "gd": 2.5, "bd": 3.0, "td": 2.5,
}

// unusualInitials are word-initial consonants that carry a naturalness
// penalty on their own.
var unusualInitials = map[rune]bool{'x': true, 'z': true, 'q': true}
