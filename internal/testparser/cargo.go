package testparser

import "regexp"

// Static regexes for Cargo test output parsing.
// Compiled once at package init for performance.
var (
	cargoCaseRegex   = regexp.MustCompile(`^test\s+(\S+)\s+\.\.\.\s+(ok|FAILED|ignored)\b`)
	cargoResultRegex = regexp.MustCompile(`test result: \w+\.\s*(\d+) passed;\s*(\d+) failed;\s*(\d+) ignored`)
)

// CargoParser parses Rust/Cargo test output.
type CargoParser struct {
	Threshold float64
}

// Name returns the parser name.
func (p *CargoParser) Name() string {
	return "cargo"
}

// Parse extracts test outcomes from Cargo test output.
// Cargo test outputs lines like:
//
//	test tests::adds ... ok
//	test tests::divides ... FAILED
//	test tests::slow ... ignored
//	test result: FAILED. 1 passed; 1 failed; 1 ignored; 0 measured; 0 filtered out; finished in 0.12s
//
// There is one result line per test binary; they are added up.
func (p *CargoParser) Parse(output string) Results {
	cases := make(Results)
	var summary Counts
	hasSummary := false

	for _, line := range splitLines(output) {
		if match := cargoCaseRegex.FindStringSubmatch(line); match != nil {
			switch match[2] {
			case "ok":
				cases[match[1]] = Passed
			case "FAILED":
				cases[match[1]] = Failed
			case "ignored":
				cases[match[1]] = Skipped
			}
			continue
		}
		if match := cargoResultRegex.FindStringSubmatch(line); match != nil {
			binary := newCounts(atoi(match[1]), atoi(match[2]), atoi(match[3]))
			summary.Add(&binary)
			hasSummary = true
		}
	}

	if !hasSummary {
		return cases
	}
	return reconcile(cases, summary, p.Name(), p.Threshold)
}
