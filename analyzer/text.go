package analyzer

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

const wordsPerMinute = 200

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	nonVowelRun   = regexp.MustCompile(`[^aeiouy]+`)
	nonWordRun    = regexp.MustCompile(`\W+`)
)

// TextEngine computes derived text metrics from flattened visible
// page text.
type TextEngine struct {
	positive map[string]bool
	negative map[string]bool
}

func NewTextEngine(lexicon Lexicon) *TextEngine {
	return &TextEngine{
		positive: wordSet(lexicon.Positive),
		negative: wordSet(lexicon.Negative),
	}
}

// Metrics aggregates all text metrics for one document. paragraphCount
// comes from the structural pass; it is floored at 1 alongside the
// sentence count to keep the averages finite.
func (e *TextEngine) Metrics(text string, paragraphCount int) TextMetrics {
	wordCount := WordCount(text)
	density, top := AnalyzeKeywords(text)

	sentenceCount := countSentences(text)
	if sentenceCount < 1 {
		sentenceCount = 1
	}
	if paragraphCount < 1 {
		paragraphCount = 1
	}

	return TextMetrics{
		WordCount:          wordCount,
		ReadingTimeMinutes: ReadingTime(wordCount),
		Sentiment:          e.Sentiment(text),
		Content: ContentAnalysis{
			KeywordDensity:         density,
			TopKeywords:            top,
			ReadabilityScore:       Readability(text),
			SentenceCount:          sentenceCount,
			AverageSentenceLength:  float64(wordCount) / float64(sentenceCount),
			ParagraphCount:         paragraphCount,
			AverageParagraphLength: float64(wordCount) / float64(paragraphCount),
		},
	}
}

// WordCount counts the non-empty whitespace-separated tokens of text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ReadingTime estimates reading time in whole minutes at 200 words per
// minute. Zero words read in zero minutes; anything else takes at
// least one.
func ReadingTime(wordCount int) int {
	if wordCount == 0 {
		return 0
	}
	return int(math.Ceil(float64(wordCount) / wordsPerMinute))
}

// Sentiment scores text against the engine's vocabulary. The returned
// word lists are the literal matched tokens, duplicates included.
//
// Comparative divides the already word-count-normalized score by the
// word count a second time. That arithmetic shipped with the first
// release and stored records depend on it, so it stays.
func (e *TextEngine) Sentiment(text string) Sentiment {
	s := Sentiment{
		PositiveWords: []string{},
		NegativeWords: []string{},
	}

	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return s
	}

	for _, w := range words {
		switch {
		case e.positive[w]:
			s.PositiveWords = append(s.PositiveWords, w)
		case e.negative[w]:
			s.NegativeWords = append(s.NegativeWords, w)
		}
	}

	total := float64(len(words))
	s.Score = (float64(len(s.PositiveWords)) - float64(len(s.NegativeWords))) / total
	s.Comparative = s.Score / total
	return s
}

// Readability approximates Flesch Reading Ease and clamps the result
// to [0,100]. Syllables are counted as contiguous vowel groups, which
// is close enough for scoring whole pages.
func Readability(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}

	sentences := countSentences(text)
	if sentences < 1 {
		sentences = 1
	}

	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	score := 206.835 -
		1.015*(float64(len(words))/float64(sentences)) -
		84.6*(float64(syllables)/float64(len(words)))
	return clamp(score, 0, 100)
}

func countSentences(text string) int {
	count := 0
	for _, part := range sentenceSplit.Split(text, -1) {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	return count
}

func countSyllables(word string) int {
	count := 0
	for _, group := range nonVowelRun.Split(strings.ToLower(word), -1) {
		if group != "" {
			count++
		}
	}
	return count
}

// AnalyzeKeywords builds a keyword frequency profile from text. Tokens
// are lowercased, split on non-word runs, and kept only when longer
// than three characters. The top 10 keywords are ordered by count
// descending with ties broken by first appearance; density is the
// percentage share among all qualifying tokens. The returned map holds
// density for the top 10 words only, not for every qualifying token.
func AnalyzeKeywords(text string) (map[string]float64, []Keyword) {
	counts := map[string]int{}
	var order []string
	total := 0

	for _, tok := range nonWordRun.Split(strings.ToLower(text), -1) {
		if len(tok) <= 3 {
			continue
		}
		total++
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	density := map[string]float64{}
	if total == 0 {
		return density, []Keyword{}
	}

	// order is first-seen; a stable sort keeps that as the tiebreak.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > 10 {
		order = order[:10]
	}

	top := make([]Keyword, 0, len(order))
	for _, word := range order {
		d := float64(counts[word]) / float64(total) * 100
		density[word] = d
		top = append(top, Keyword{Word: word, Count: counts[word], Density: d})
	}
	return density, top
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
