package analyzer

// Lexicon holds the word lists used for naive polarity scoring. It is
// injected into the text engine so alternate vocabularies can be
// loaded without touching the scoring code.
type Lexicon struct {
	Positive []string
	Negative []string
}

// DefaultLexicon returns the built-in sentiment vocabulary.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Positive: []string{"good", "great", "excellent", "amazing", "wonderful", "best"},
		Negative: []string{"bad", "terrible", "awful", "horrible", "worst", "poor"},
	}
}

func wordSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
