package phonetics

import (
	"strings"
	"unicode"
)

// phoneme is one scanned sound unit: a consonant with a manner class, or a
// vowel slot (class == ClassNone).
type phoneme struct {
	class   ConsonantClass
	voiced  bool
	isVowel bool
	vowel   rune // set when isVowel
	letters string
}

// Extractor turns a name string into a NamePrimitiveVector. It is pure:
// same normalized input and version always produce the same vector, with
// no randomness and no lookups beyond the static tables in this package.
type Extractor struct{}

// NewExtractor creates a primitive extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Normalize folds case and whitespace so equal names share one cache key.
// Only letters, single spaces and hyphens survive.
func Normalize(name string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r):
			b.WriteRune(r)
			lastSpace = false
		case r == '-' && !lastSpace:
			b.WriteRune('-')
			lastSpace = false
		case unicode.IsSpace(r) && !lastSpace:
			b.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimRight(b.String(), " -")
}

// Extract computes the primitive vector for a name. Empty or
// non-alphabetic input yields the low-confidence neutral vector rather
// than an error; the pipeline treats that as recoverable data, not failure.
func (e *Extractor) Extract(name string) *NamePrimitiveVector {
	normalized := Normalize(name)

	words := splitWords(normalized)
	if len(words) == 0 {
		return NeutralVector(normalized)
	}

	var (
		phonemes    []phoneme
		wordStarts  []int // index into phonemes of each word's first phoneme
		letterCount int
		vowelLetter int
	)

	for _, w := range words {
		wordStarts = append(wordStarts, len(phonemes))
		phonemes = append(phonemes, scanWord(w)...)
		for _, r := range w {
			letterCount++
			if isVowelLetter(r) {
				vowelLetter++
			}
		}
	}
	if len(phonemes) == 0 {
		return NeutralVector(normalized)
	}

	v := &NamePrimitiveVector{
		NormalizedName: normalized,
		Version:        ExtractorVersion,
	}

	e.fillClassRatios(v, phonemes)
	e.fillVowelRatios(v, phonemes)
	e.fillStructural(v, words, phonemes)
	e.fillPositional(v, phonemes, wordStarts)

	if letterCount > 0 {
		v.VowelRatio = clip100(float64(vowelLetter) / float64(letterCount) * 100)
	}
	v.NameLength = clip100(float64(letterCount) * 5)

	return v
}

func (e *Extractor) fillClassRatios(v *NamePrimitiveVector, phonemes []phoneme) {
	var total, voiced float64
	counts := map[ConsonantClass]float64{}
	for _, p := range phonemes {
		if p.isVowel {
			continue
		}
		total++
		counts[p.class]++
		if p.voiced {
			voiced++
		}
	}
	if total == 0 {
		// Vowel-only names ("Aia"): class ratios stay zero, voicing is
		// fully voiced by convention.
		v.VoicingRatio = 100
		return
	}

	v.PlosiveRatio = clip100(counts[ClassPlosive] / total * 100)
	v.FricativeRatio = clip100(counts[ClassFricative] / total * 100)
	v.SibilantRatio = clip100(counts[ClassSibilant] / total * 100)
	v.LiquidRatio = clip100(counts[ClassLiquid] / total * 100)
	v.NasalRatio = clip100(counts[ClassNasal] / total * 100)
	v.GlideRatio = clip100(counts[ClassGlide] / total * 100)
	v.VoicingRatio = clip100(voiced / total * 100)

	var hard, soft, letters float64
	for _, p := range phonemes {
		if p.isVowel {
			continue
		}
		for _, r := range p.letters {
			letters++
			if hardConsonants[r] {
				hard++
			}
			if softConsonants[r] {
				soft++
			}
		}
	}
	if letters > 0 {
		v.HardConsonantRatio = clip100(hard / letters * 100)
		v.SoftConsonantRatio = clip100(soft / letters * 100)
	}
}

func (e *Extractor) fillVowelRatios(v *NamePrimitiveVector, phonemes []phoneme) {
	var total, front, back, open, close_ float64
	for _, p := range phonemes {
		if !p.isVowel {
			continue
		}
		total++
		if frontVowels[p.vowel] {
			front++
		}
		if backVowels[p.vowel] {
			back++
		}
		if openVowels[p.vowel] {
			open++
		}
		if closeVowels[p.vowel] {
			close_++
		}
	}
	if total == 0 {
		return
	}
	v.FrontVowelRatio = clip100(front / total * 100)
	v.BackVowelRatio = clip100(back / total * 100)
	v.OpenVowelRatio = clip100(open / total * 100)
	v.CloseVowelRatio = clip100(close_ / total * 100)
}

func (e *Extractor) fillStructural(v *NamePrimitiveVector, words []string, phonemes []phoneme) {
	syllables := 0
	closed := 0
	maxRun := 0
	rarity := 0.0
	repeats := 0
	unusualInitial := false

	for _, w := range words {
		s, c := countSyllables(w)
		syllables += s
		closed += c

		run := 0
		var prev rune
		for i, r := range w {
			if isConsonantSlot(w, i, r) {
				run++
				if run > maxRun {
					maxRun = run
				}
				if prev != 0 {
					pair := string([]rune{prev, r})
					if wgt, ok := rareClusters[pair]; ok {
						rarity += wgt
					}
					if prev == r {
						repeats++
					}
				}
				prev = r
			} else {
				run = 0
				prev = 0
			}
		}

		first := []rune(w)[0]
		if unusualInitials[first] {
			unusualInitial = true
		}
	}

	v.SyllableCount = clip100(float64(syllables) * 10)
	v.MaxClusterLength = clip100(float64(maxRun) * 20)
	v.ClusterComplexity = clip100(float64(maxRun-1)*25 + rarity*12)

	naturalness := 100.0 - rarity*12 - float64(repeats)*6
	if unusualInitial {
		naturalness -= 10
	}
	if maxRun > 2 {
		naturalness -= float64(maxRun-2) * 8
	}
	v.PhonotacticNaturalness = clip100(naturalness)

	if syllables > 0 {
		v.PhonologicalWeight = clip100(float64(closed)/float64(syllables)*70 + float64(min(maxRun, 3))*10)
	}

	v.RepetitionScore = repetitionScore(words)

	// Repetition of the whole final phoneme against the initial one is
	// covered by the positional flags; nothing extra here.
	_ = phonemes
}

func (e *Extractor) fillPositional(v *NamePrimitiveVector, phonemes []phoneme, wordStarts []int) {
	first := phonemes[0]
	last := phonemes[len(phonemes)-1]

	flag := func(b bool) float64 {
		if b {
			return 100
		}
		return 0
	}

	v.InitialPlosive = flag(!first.isVowel && first.class == ClassPlosive)
	v.InitialFricative = flag(!first.isVowel && first.class == ClassFricative)
	v.InitialSibilant = flag(!first.isVowel && first.class == ClassSibilant)
	v.InitialLiquid = flag(!first.isVowel && first.class == ClassLiquid)
	v.InitialNasal = flag(!first.isVowel && first.class == ClassNasal)
	v.InitialVowel = flag(first.isVowel)
	v.FinalPlosive = flag(!last.isVowel && last.class == ClassPlosive)
	v.FinalNasal = flag(!last.isVowel && last.class == ClassNasal)
	v.FinalSibilant = flag(!last.isVowel && last.class == ClassSibilant)
	v.FinalVowel = flag(last.isVowel)

	_ = wordStarts
}

// scanWord tokenizes one word into phonemes, digraphs first.
func scanWord(w string) []phoneme {
	runes := []rune(w)
	var out []phoneme
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '-' {
			continue
		}

		if i+1 < len(runes) {
			pair := string(runes[i : i+2])
			if p, ok := digraphs[pair]; ok {
				p.letters = pair
				out = append(out, p)
				i++
				continue
			}
		}

		if isVowelLetter(r) || isVowelY(runes, i) {
			out = append(out, phoneme{isVowel: true, vowel: r, letters: string(r)})
			continue
		}

		p, ok := consonants[r]
		if !ok {
			// Letters outside the tables (accented, non-Latin) contribute
			// length but no phoneme.
			continue
		}
		if r == 'c' && i+1 < len(runes) && softC(runes[i+1]) {
			p = phoneme{class: ClassSibilant, voiced: false}
		}
		p.letters = string(r)
		out = append(out, p)
	}
	return out
}

// isVowelY reports whether y at position i fills a vowel slot: not
// word-initial and not directly after a vowel.
func isVowelY(runes []rune, i int) bool {
	if runes[i] != 'y' || i == 0 {
		return false
	}
	return !isVowelLetter(runes[i-1])
}

func softC(next rune) bool {
	return next == 'e' || next == 'i' || next == 'y'
}

// isConsonantSlot mirrors the scanner's vowel rules at the letter level
// for cluster-run detection.
func isConsonantSlot(w string, i int, r rune) bool {
	if !unicode.IsLetter(r) || isVowelLetter(r) {
		return false
	}
	if r == 'y' {
		return !isVowelY([]rune(w), i)
	}
	return true
}

// countSyllables counts vowel groups in a word; every word with at least
// one letter gets at least one syllable. Also returns the number of closed
// (consonant-coda) syllables, approximated as vowel groups followed by a
// consonant.
func countSyllables(w string) (total, closed int) {
	runes := []rune(w)
	inVowel := false
	for i, r := range runes {
		vowel := isVowelLetter(r) || isVowelY(runes, i)
		if vowel && !inVowel {
			total++
		}
		if !vowel && inVowel && unicode.IsLetter(r) {
			closed++
		}
		inVowel = vowel
	}
	if total == 0 {
		total = 1
	}
	return total, closed
}

// repetitionScore rewards repeated letters and cross-word alliteration.
func repetitionScore(words []string) float64 {
	counts := map[rune]int{}
	total := 0
	for _, w := range words {
		for _, r := range w {
			if unicode.IsLetter(r) {
				counts[r]++
				total++
			}
		}
	}
	if total == 0 {
		return 0
	}
	repeated := total - len(counts)
	score := float64(repeated) / float64(total) * 250

	// Alliteration bonus: multi-word names sharing an initial letter.
	if len(words) > 1 {
		initials := map[rune]int{}
		for _, w := range words {
			initials[[]rune(w)[0]]++
		}
		for _, c := range initials {
			if c > 1 {
				score += 15
				break
			}
		}
	}
	return clip100(score)
}

func splitWords(normalized string) []string {
	var out []string
	for _, w := range strings.FieldsFunc(normalized, func(r rune) bool {
		return r == ' ' || r == '-'
	}) {
		hasLetter := false
		for _, r := range w {
			if unicode.IsLetter(r) {
				hasLetter = true
				break
			}
		}
		if hasLetter {
			out = append(out, w)
		}
	}
	return out
}

func clip100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
