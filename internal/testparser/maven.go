package testparser

import (
	"regexp"
	"strings"
)

// Static regexes for Maven Surefire output parsing.
var (
	mavenLevelRegex  = regexp.MustCompile(`^\[(?:INFO|ERROR|WARNING|WARN|DEBUG)\]\s*`)
	mavenMethodRegex = regexp.MustCompile(`^(\S+?)(?:\(([\w.$]+)\))?\s+Time elapsed:[^<]*(?:<<<\s*(FAILURE|ERROR)!)?`)
)

// MavenParser parses Maven Surefire and Failsafe output.
type MavenParser struct{}

// Name returns the parser name.
func (p *MavenParser) Name() string {
	return "maven"
}

// Parse extracts test outcomes from Maven output.
// Surefire outputs lines like:
//
//	[INFO] Running com.example.CalcTest
//	[ERROR] Tests run: 4, Failures: 1, Errors: 0, Skipped: 1, Time elapsed: 0.05 s <<< FAILURE! -- in com.example.CalcTest
//	[ERROR] com.example.CalcTest.divides  Time elapsed: 0.01 s  <<< FAILURE!
//	[INFO] Results:
//	[ERROR] Tests run: 4, Failures: 1, Errors: 0, Skipped: 1
//
// Named methods are kept and each class is topped up to its "Tests run:"
// count with placeholders such as "com.example.CalcTest_passed_1". The
// run-wide total is only used when no class line was printed.
func (p *MavenParser) Parse(output string) Results {
	tally := newClassTally()
	current := ""

	for _, line := range splitLines(output) {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[junit]") {
			continue
		}
		trimmed = mavenLevelRegex.ReplaceAllString(trimmed, "")

		if match := jvmRunningRegex.FindStringSubmatch(trimmed); match != nil {
			current = match[1]
			continue
		}

		if match := jvmTestsRunRegex.FindStringSubmatch(trimmed); match != nil {
			class := ""
			if in := jvmInClassRegex.FindStringSubmatch(match[5]); in != nil {
				class = in[1]
			} else if current != "" {
				class = current
			}
			tally.setCounts(class, jvmCounts(match))
			current = ""
			continue
		}

		if match := mavenMethodRegex.FindStringSubmatch(trimmed); match != nil {
			class := match[2]
			if class == "" && !strings.Contains(match[1], ".") {
				class = current
			}
			status := Passed
			if match[3] != "" {
				status = Failed
			}
			if class == "" {
				// "com.example.CalcTest.divides": split off the method.
				if i := strings.LastIndex(match[1], "."); i > 0 {
					tally.addMethod(match[1][:i], match[1][i+1:], status)
					continue
				}
			}
			tally.addMethod(class, match[1], status)
		}
	}

	return tally.results(p.Name())
}
