package wealthflow

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Linker decides whether an expense is the recurring payment of a liability.
//
// When a liability is released in a scenario, every linked expense still kept
// is released with it; when the liability is kept again, one linked expense
// from the baseline is restored.
type Linker interface {
	Linked(l Liability, e CashFlow) bool
}

// LinkerFunc adapts a function to the Linker interface.
type LinkerFunc func(l Liability, e CashFlow) bool

func (f LinkerFunc) Linked(l Liability, e CashFlow) bool { return f(l, e) }

// NameLinker links a liability and an expense whose normalized names contain
// one another. This is a heuristic: unrelated items with similar names are
// linked too.
type NameLinker struct{}

func (NameLinker) Linked(l Liability, e CashFlow) bool {
	lk, ek := LinkKey(l.Name), LinkKey(e.Name)
	if lk == "" || ek == "" {
		// Names made only of stopwords, like "Mortgage", are compared whole.
		lk, ek = compact(l.Name), compact(e.Name)
	}
	return overlaps(lk, ek)
}

// ExplicitLinker links a liability only to the expense it references.
type ExplicitLinker struct{}

func (ExplicitLinker) Linked(l Liability, e CashFlow) bool {
	return l.LinkedExpenseID != "" && l.LinkedExpenseID == e.ID
}

// FuzzyLinker links names that contain one another, or whose normalized keys
// are closer than Threshold in normalized Levenshtein similarity.
type FuzzyLinker struct {
	Threshold float64 // in [0, 1], 0 means DefaultFuzzyThreshold
}

// DefaultFuzzyThreshold is the similarity used by a zero FuzzyLinker.
const DefaultFuzzyThreshold = 0.75

func (f FuzzyLinker) Linked(l Liability, e CashFlow) bool {
	if (NameLinker{}).Linked(l, e) {
		return true
	}
	lk, ek := LinkKey(l.Name), LinkKey(e.Name)
	if lk == "" || ek == "" {
		return false
	}
	threshold := f.Threshold
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}
	return similarity(lk, ek) >= threshold
}

// AnyLinker links when any of its members does.
type AnyLinker []Linker

func (a AnyLinker) Linked(l Liability, e CashFlow) bool {
	for _, k := range a {
		if k.Linked(l, e) {
			return true
		}
	}
	return false
}

// ParseLinker returns the linker registered under name: "name", "explicit",
// "fuzzy" or "explicit+name".
func ParseLinker(name string) (Linker, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "name":
		return NameLinker{}, nil
	case "explicit":
		return ExplicitLinker{}, nil
	case "fuzzy":
		return FuzzyLinker{}, nil
	case "explicit+name":
		return AnyLinker{ExplicitLinker{}, NameLinker{}}, nil
	}
	return nil, fmt.Errorf("unknown linker %q", name)
}

// stopwords are dropped from names before matching. They are the words that
// tell what kind of line an item is rather than what it is about.
var stopwords = map[string]bool{
	"expense": true, "expenses": true,
	"fee": true, "fees": true,
	"loan": true, "loans": true,
	"mortgage": true, "mortgages": true,
	"payment": true, "payments": true,
	"bill": true, "bills": true,
}

// cjkStopwords are removed as substrings since CJK names carry no spaces.
// Longer words come first.
var cjkStopwords = []string{"房貸", "信貸", "車貸", "貸款", "支出", "費用", "費"}

// LinkKey normalizes a name for matching: lower case, without spaces,
// punctuation, symbols and stopwords.
func LinkKey(name string) string {
	var b strings.Builder
	for _, w := range words(name) {
		if stopwords[w] {
			continue
		}
		for _, s := range cjkStopwords {
			w = strings.ReplaceAll(w, s, "")
		}
		b.WriteString(w)
	}
	return b.String()
}

// compact is LinkKey without stopword removal.
func compact(name string) string {
	return strings.Join(words(name), "")
}

func words(name string) []string {
	return strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}

func overlaps(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func similarity(a, b string) float64 {
	n := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if n == 0 {
		return 0
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(n)
}
