package testparser

import (
	"strings"
	"testing"
)

// fuzzSeeds is a mixed corpus covering every built-in parser's output shape.
var fuzzSeeds = []string{
	// Empty and edge cases
	"",
	"\n",
	"\r\n\r\n",
	"\x1b[31m\x1b[0m",
	// JavaScript runners
	"✓ testA\n✕ testB\n○ testC",
	"Tests:       1 failed, 1 skipped, 10 passed, 12 total",
	" ❯ src/io.test.ts (4 tests | 1 failed) 12ms\n   × writes\n Tests  1 failed | 3 passed (4)",
	"  1 passing (12ms)\n  1 failing",
	"Executed 3 of 4 (1 FAILED) (skipped 1)",
	"12 specs, 1 failure, 2 pending specs",
	"ok 1 - a\nnot ok 2 - b # TODO\n# pass 1",
	"(pass) a [1ms]\n 1 pass",
	"a ... ok (3ms)\nok | 1 passed | 0 failed (3ms)",
	// Gates
	"✖ 1 problems (1 error, 0 warnings)",
	"=== Command 1: npm test ===\nExit code: 1",
	"CSpell: Files checked: 1, Issues found: 2",
	// Python, Go, Rust
	"tests/a.py::test_b PASSED\n== 1 passed in 0.1s ==",
	"test_a (m.C) ... ok\nRan 1 test in 0.1s\n\nOK",
	"=== RUN   TestFoo\n--- PASS: TestFoo (0.00s)",
	`{"Action":"pass","Test":"TestFoo"}`,
	"test a ... ok\ntest result: ok. 1 passed; 0 failed; 0 ignored",
	// JVM
	"Running a.B\nTests run: 2, Failures: 1, Errors: 0, Skipped: 0 - in a.B",
	"[junit] Testcase: a took 0.1 sec\n[junit] \tFAILED",
	"A > b PASSED\n1 tests completed, 0 failed",
	"<testsuite><testcase classname=\"a\" name=\"b\"><failure/></testcase></testsuite>",
	"<testsuite><testcase",
	"//a:b PASSED in 1s",
	// C and C++
	"[ RUN      ] A.B\n[       OK ] A.B (0 ms)\n[  PASSED  ] 1 test.",
	"100% tests passed, 0 tests failed out of 3",
	"<TestCase name=\"a\"><OverallResult success=\"false\"/>",
	"Running 2 test cases...\nerror: in \"a/b\": x\n*** 1 failure is detected",
	"Run: 3 Failures: 1 Errors: 0",
	// .NET, Ruby, PHP
	"Failed!  - Failed:     1, Passed:     1, Skipped:     0, Total:     2",
	"3 examples, 1 failure",
	"Tests: 3, Assertions: 3, Failures: 1.",
	// Hostile counts
	"Tests: 99999999999999999999 passed, 99999999999999999999 total",
	"test cases: 999999999 | 999999999 passed",
	// Very long lines
	strings.Repeat("✓ ", 5000),
	"=== RUN   " + strings.Repeat("x", 10000) + "\n--- PASS: " + strings.Repeat("x", 10000) + " (0.00s)",
}

// FuzzParsers checks invariants that must hold for every parser on any input.
// Run: go test -fuzz=FuzzParsers -fuzztime=30s ./internal/testparser
func FuzzParsers(f *testing.F) {
	for _, seed := range fuzzSeeds {
		f.Add(seed)
	}

	parsers := builtinParsers(DefaultReconcileThreshold)
	f.Fuzz(func(t *testing.T, input string) {
		for _, parser := range parsers {
			// The parser should never panic on any input
			results := parser.Parse(input)
			if results == nil {
				t.Fatalf("%s: Parse returned nil map", parser.Name())
			}

			counts := results.Counts()
			if counts.Total != len(results) {
				t.Errorf("%s: total %d != entries %d", parser.Name(), counts.Total, len(results))
			}

			// Parsing is deterministic.
			if again := parser.Parse(input); len(again) != len(results) {
				t.Errorf("%s: second parse found %d entries, first %d", parser.Name(), len(again), len(results))
			}

			for name := range results {
				if name == "" {
					t.Errorf("%s: empty test name", parser.Name())
				}
			}
		}
	})
}

// FuzzClassify checks that the merged result never holds more entries than
// the parsers that contributed to it produced.
func FuzzClassify(f *testing.F) {
	for _, seed := range fuzzSeeds {
		f.Add(seed, "", "")
	}
	f.Add("✓ a", "jest", "javascript")
	f.Add("--- PASS: TestA (0.00s)", "go", "go")

	registry := NewRegistry()
	f.Fuzz(func(t *testing.T, input, framework, language string) {
		result := registry.Classify(input, framework, language)

		found := 0
		contributing := 0
		for _, a := range result.Attempts {
			found += a.Found
			if a.Found > 0 {
				contributing++
			}
		}
		if len(result.Tests) > found {
			t.Errorf("merged %d entries from %d parsed", len(result.Tests), found)
		}
		if contributing != len(result.Parsers) {
			t.Errorf("%d attempts found entries but %d parsers listed", contributing, len(result.Parsers))
		}
		if result.Empty() != (len(result.Parsers) == 0) {
			t.Errorf("Empty() = %v with parsers %v", result.Empty(), result.Parsers)
		}
	})
}
