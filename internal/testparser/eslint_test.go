package testparser

import "testing"

func TestESLintParser(t *testing.T) {
	t.Parallel()
	parser := &ESLintParser{}

	tests := []struct {
		name   string
		output string
		expect Results
	}{
		{
			name:   "summary with errors",
			output: "✖ 1 problems (1 error, 0 warnings)",
			expect: Results{"eslint_check": Failed},
		},
		{
			name: "test command failure is not charged to eslint",
			output: `=== Command 1: npx eslint . ===
Exit code: 0
=== Command 2: npm test ===
npm ERR! Test failed.
Exit code: 1`,
			expect: Results{"eslint_check": Passed},
		},
		{
			name: "eslint run from an npm script section",
			output: `=== Command 1: npm run lint ===
> eslint src
Exit code: 1
=== Command 2: npm test ===
Exit code: 0`,
			expect: Results{"eslint_check": Failed},
		},
		{
			name:   "warnings only",
			output: "✖ 3 problems (0 errors, 3 warnings)",
			expect: Results{"eslint_check": Passed},
		},
		{
			name:   "clean run",
			output: "> app@1.0.0 lint\n> eslint src\n",
			expect: Results{"eslint_check": Passed},
		},
		{
			name: "per-file error without summary",
			output: `$ npx eslint .
/src/app.js
  3:7  error  'x' is assigned a value but never used  no-unused-vars`,
			expect: Results{"eslint_check": Failed},
		},
		{
			name:   "non-zero exit code",
			output: "> eslint src\nExit code: 1",
			expect: Results{"eslint_check": Failed},
		},
		{
			name:   "eslint only installed",
			output: "added eslint@8.57.0\nadded 212 packages",
			expect: Results{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assertResults(t, parser.Parse(tt.output), tt.expect)
		})
	}
}

func TestStylelintParser(t *testing.T) {
	t.Parallel()
	parser := &StylelintParser{}

	tests := []struct {
		name   string
		output string
		expect Results
	}{
		{
			name:   "clean run",
			output: "> stylelint \"**/*.css\"\n",
			expect: Results{"stylelint": Passed},
		},
		{
			name: "problems",
			output: `> stylelint "**/*.css"

src/app.css
  3:5  ✖  Unexpected unknown property "colr"  property-no-unknown`,
			expect: Results{"stylelint": Failed},
		},
		{
			name:   "npm error",
			output: "> stylelint src\nnpm ERR! code ELIFECYCLE",
			expect: Results{"stylelint": Failed},
		},
		{
			name: "vitest failures are not stylelint problems",
			output: `> stylelint "**/*.css"
 ❯ src/math.test.ts (2 tests | 1 failed) 4ms
   × divides by zero 2ms`,
			expect: Results{"stylelint": Passed},
		},
		{
			name: "exit code of another section",
			output: `=== Command 1: npx stylelint "**/*.css" ===
Exit code: 0
=== Command 2: npx vitest run ===
   × divides by zero 2ms
Exit code: 1`,
			expect: Results{"stylelint": Passed},
		},
		{
			name: "failing stylelint section",
			output: `=== Command 1: npx stylelint "**/*.css" ===
Exit code: 2
=== Command 2: npm test ===
Exit code: 0`,
			expect: Results{"stylelint": Failed},
		},
		{
			name:   "not invoked",
			output: "✖ 1 problems (1 error, 0 warnings)",
			expect: Results{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assertResults(t, parser.Parse(tt.output), tt.expect)
		})
	}
}

func TestCSpellParser(t *testing.T) {
	t.Parallel()
	parser := &CSpellParser{}

	tests := []struct {
		name   string
		output string
		expect Results
	}{
		{"clean", "CSpell: Files checked: 42, Issues found: 0 in 0 files", Results{"cspell_spelling": Passed}},
		{
			"issues",
			"src/app.ts:12:9 - Unknown word (recieve)\nCSpell: Files checked: 42, Issues found: 1 in 1 file",
			Results{"cspell_spelling": Failed},
		},
		{"not run", "Unknown word", Results{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assertResults(t, parser.Parse(tt.output), tt.expect)
		})
	}
}

func TestPrettierParser(t *testing.T) {
	t.Parallel()
	parser := &PrettierParser{}

	tests := []struct {
		name   string
		output string
		expect Results
	}{
		{
			name:   "formatted",
			output: "Checking formatting...\nAll matched files use Prettier code style!",
			expect: Results{"prettier_format": Passed},
		},
		{
			name: "exit code of the test section",
			output: `=== Command 1: npx prettier --check . ===
Checking formatting...
Exit code: 0
=== Command 2: npm test ===
Exit code: 1`,
			expect: Results{},
		},
		{
			name: "failing prettier section",
			output: `=== Command 1: npx prettier --check . ===
Checking formatting...
Exit code: 2
=== Command 2: npm test ===
Exit code: 0`,
			expect: Results{"prettier_format": Failed},
		},
		{
			name:   "issues",
			output: "Checking formatting...\n[warn] src/app.ts\n[warn] Code style issues found in the above file. Run Prettier with --write to fix.",
			expect: Results{"prettier_format": Failed},
		},
		{
			name:   "aborted check",
			output: "Checking formatting...\nExit code: 2",
			expect: Results{"prettier_format": Failed},
		},
		{
			name:   "not run",
			output: "Tests: 3 passed, 3 total",
			expect: Results{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assertResults(t, parser.Parse(tt.output), tt.expect)
		})
	}
}
