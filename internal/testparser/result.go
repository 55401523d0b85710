package testparser

import "strings"

// Attempt records one parser run during classification.
type Attempt struct {
	Parser   string
	Found    int  // entries the parser produced
	Fallback bool // true if tried during the fallback sweep
}

// Result is the outcome of classifying one log.
type Result struct {
	Tests    Results   // merged outcomes of all contributing parsers
	Parsers  []string  // parsers that produced at least one entry, in merge order
	Attempts []Attempt // every parser run, in order
}

// Empty reports whether no parser recognized anything.
func (r Result) Empty() bool {
	return len(r.Tests) == 0
}

// Counts tallies the merged outcomes.
func (r Result) Counts() Counts {
	return r.Tests.Counts()
}

// ParserLabel joins the contributing parser names with "+".
func (r Result) ParserLabel() string {
	return strings.Join(r.Parsers, "+")
}

// UsedFallback reports whether any contributing parser came from the fallback sweep.
func (r Result) UsedFallback() bool {
	for _, a := range r.Attempts {
		if a.Fallback && a.Found > 0 {
			return true
		}
	}
	return false
}
