package testparser

import "strings"

// Registry maps parser names, framework aliases and languages to parsers.
// It is built once by NewRegistry and is read-only afterwards, so a single
// Registry can classify many logs concurrently.
type Registry struct {
	parsers   map[string]Parser
	order     []string
	aliases   map[string]string
	languages map[string][]string
}

// Option customizes a Registry at construction time.
type Option func(*registryOptions)

type registryOptions struct {
	threshold float64
	parsers   []Parser
	languages map[string][]string
	aliases   map[string]string
}

// WithParser registers an additional parser. A parser whose name is already
// registered replaces the built-in one and keeps its position.
func WithParser(p Parser) Option {
	return func(o *registryOptions) {
		o.parsers = append(o.parsers, p)
	}
}

// WithLanguage sets the ordered parser list tried for a language hint.
func WithLanguage(language string, parsers ...string) Option {
	return func(o *registryOptions) {
		if o.languages == nil {
			o.languages = make(map[string][]string)
		}
		o.languages[normalizeHint(language)] = append([]string(nil), parsers...)
	}
}

// WithAlias makes a framework hint resolve to a registered parser name.
func WithAlias(alias, parser string) Option {
	return func(o *registryOptions) {
		if o.aliases == nil {
			o.aliases = make(map[string]string)
		}
		o.aliases[normalizeHint(alias)] = normalizeHint(parser)
	}
}

// WithReconcileThreshold sets the share of a declared total that per-test
// results must reach before the built-in parsers trust them over a summary.
func WithReconcileThreshold(threshold float64) Option {
	return func(o *registryOptions) {
		o.threshold = threshold
	}
}

// NewRegistry creates a registry with all built-in parsers.
func NewRegistry(opts ...Option) *Registry {
	o := &registryOptions{threshold: DefaultReconcileThreshold}
	for _, opt := range opts {
		opt(o)
	}

	r := &Registry{
		parsers:   make(map[string]Parser),
		aliases:   make(map[string]string),
		languages: make(map[string][]string),
	}

	// Declaration order is also the order of the fallback sweep.
	for _, p := range builtinParsers(o.threshold) {
		r.add(p)
	}
	for _, p := range o.parsers {
		if p != nil {
			r.add(p)
		}
	}

	for alias, name := range builtinAliases {
		r.aliases[alias] = name
	}
	for alias, name := range o.aliases {
		r.aliases[alias] = name
	}

	for lang, names := range builtinLanguages() {
		r.languages[lang] = names
	}
	for lang, names := range o.languages {
		r.languages[lang] = names
	}

	return r
}

func (r *Registry) add(p Parser) {
	name := normalizeHint(p.Name())
	if _, exists := r.parsers[name]; !exists {
		r.order = append(r.order, name)
	}
	r.parsers[name] = p
}

// builtinParsers returns the built-in parsers in declaration order.
func builtinParsers(threshold float64) []Parser {
	return []Parser{
		// JavaScript / TypeScript runners
		&JestParser{Threshold: threshold},
		&VitestParser{Threshold: threshold},
		&MochaParser{Threshold: threshold},
		&KarmaParser{},
		&JasmineParser{},
		&OspecParser{},
		&TapParser{Threshold: threshold},
		&BunParser{Threshold: threshold},
		&DenoParser{Threshold: threshold},
		// Lint, format and spelling gates
		&ESLintParser{},
		&StylelintParser{},
		&CSpellParser{},
		&PrettierParser{},
		&CommandsParser{},
		// Python
		&PytestParser{Threshold: threshold},
		&UnittestParser{Threshold: threshold},
		// Go and Rust
		&GoTestParser{},
		&CargoParser{Threshold: threshold},
		// JVM
		&MavenParser{},
		&GradleParser{},
		&JUnitParser{},
		&TestNGParser{},
		&JUnitXMLParser{},
		&BazelParser{},
		// C and C++
		&GTestParser{Threshold: threshold},
		&CTestParser{Threshold: threshold},
		&Catch2Parser{Threshold: threshold},
		&BoostTestParser{},
		&CppUnitParser{},
		// .NET, Ruby, PHP
		&DotnetParser{Threshold: threshold},
		&RSpecParser{},
		&PHPUnitParser{},
	}
}

// builtinAliases maps alternative framework hints to parser names.
var builtinAliases = map[string]string{
	"go":          "gotest",
	"go_test":     "gotest",
	"go-test":     "gotest",
	"golang":      "gotest",
	"rust":        "cargo",
	"surefire":    "maven",
	"junit4":      "junit",
	"junit5":      "junit",
	"ant":         "junit",
	"testng_ant":  "testng",
	"google_test": "gtest",
	"googletest":  "gtest",
	"boost_test":  "boost",
	"boost.test":  "boost",
	"catch":       "catch2",
	"node-tap":    "tap",
	"tape":        "tap",
	"xunit":       "dotnet",
	"nunit":       "dotnet",
	"mstest":      "dotnet",
	"mocha_empty": "mocha",
	"spec":        "rspec",
	"python":      "pytest",
	"py.test":     "pytest",
}

var (
	javascriptParsers = []string{
		"jest", "vitest", "mocha", "karma", "jasmine", "ospec", "tap",
		"cspell", "prettier", "stylelint", "eslint", "commands",
	}
	jvmParsers = []string{"gradle", "maven", "junit", "testng", "junitxml", "bazel"}
	cppParsers = []string{"gtest", "ctest", "catch2", "boost", "cppunit", "junitxml", "bazel"}
)

// builtinLanguages returns the default language table. Each call returns
// fresh slices so callers cannot alias registry state.
func builtinLanguages() map[string][]string {
	typescript := append(append([]string(nil), javascriptParsers...), "bun", "deno")
	table := map[string][]string{
		"javascript": javascriptParsers,
		"js":         javascriptParsers,
		"node":       javascriptParsers,
		"typescript": typescript,
		"ts":         typescript,
		"python":     {"pytest", "unittest"},
		"py":         {"pytest", "unittest"},
		"go":         {"gotest"},
		"golang":     {"gotest"},
		"rust":       {"cargo"},
		"rs":         {"cargo"},
		"java":       jvmParsers,
		"kotlin":     jvmParsers,
		"cpp":        cppParsers,
		"c++":        cppParsers,
		"c":          cppParsers,
		"csharp":     {"dotnet"},
		"cs":         {"dotnet"},
		"c#":         {"dotnet"},
		"dotnet":     {"dotnet"},
		"ruby":       {"rspec"},
		"rb":         {"rspec"},
		"php":        {"phpunit"},
	}
	for lang, names := range table {
		table[lang] = append([]string(nil), names...)
	}
	return table
}

func normalizeHint(hint string) string {
	return strings.ToLower(strings.TrimSpace(hint))
}

// Resolve maps a framework hint to a registered parser name.
// It returns "" when the hint names no registered parser.
func (r *Registry) Resolve(framework string) string {
	name := normalizeHint(framework)
	if name == "" {
		return ""
	}
	if _, ok := r.parsers[name]; ok {
		return name
	}
	if target, ok := r.aliases[name]; ok {
		if _, ok := r.parsers[target]; ok {
			return target
		}
	}
	return ""
}

// GetParser returns the parser for the given name or alias.
// Returns nil if no parser is found.
func (r *Registry) GetParser(name string) Parser {
	resolved := r.Resolve(name)
	if resolved == "" {
		return nil
	}
	return r.parsers[resolved]
}

// Names returns the registered parser names in declaration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Languages returns the language table, keyed by normalized language hint.
func (r *Registry) Languages() map[string][]string {
	table := make(map[string][]string, len(r.languages))
	for lang, names := range r.languages {
		table[lang] = append([]string(nil), names...)
	}
	return table
}

// Plan returns the ordered parser names to try for the given hints: the
// framework's parser first, then the language's parsers without duplicates.
// Names that are not registered are left out.
func (r *Registry) Plan(framework, language string) []string {
	var plan []string
	seen := make(map[string]bool)

	if name := r.Resolve(framework); name != "" {
		plan = append(plan, name)
		seen[name] = true
	}

	for _, name := range r.languages[normalizeHint(language)] {
		name = normalizeHint(name)
		if seen[name] {
			continue
		}
		if _, ok := r.parsers[name]; !ok {
			continue
		}
		plan = append(plan, name)
		seen[name] = true
	}

	return plan
}

// Classify runs the planned parsers over output and merges everything they
// find. When none of them recognizes anything, every other registered parser
// is tried in declaration order. An empty Result means nothing matched.
func (r *Registry) Classify(output, framework, language string) Result {
	plan := r.Plan(framework, language)
	acc := &accumulator{tests: make(Results)}

	for _, name := range plan {
		acc.run(name, r.parsers[name], output, false)
	}

	if len(acc.tests) == 0 {
		tried := make(map[string]bool, len(plan))
		for _, name := range plan {
			tried[name] = true
		}
		for _, name := range r.order {
			if tried[name] {
				continue
			}
			acc.run(name, r.parsers[name], output, true)
		}
	}

	return acc.result()
}

type accumulator struct {
	tests    Results
	parsers  []string
	attempts []Attempt
}

func (a *accumulator) run(name string, p Parser, output string, fallback bool) {
	found := p.Parse(output)
	a.attempts = append(a.attempts, Attempt{Parser: name, Found: len(found), Fallback: fallback})
	if len(found) == 0 {
		return
	}
	a.tests = Merge(a.tests, found)
	a.parsers = append(a.parsers, name)
}

func (a *accumulator) result() Result {
	return Result{
		Tests:    a.tests,
		Parsers:  a.parsers,
		Attempts: a.attempts,
	}
}

// Reasons collects failure messages from the parsers that contributed to
// result, keeping only tests the merged result marks as failed.
func (r *Registry) Reasons(output string, result Result) map[string]string {
	reasons := make(map[string]string)
	for _, name := range result.Parsers {
		explainer, ok := r.parsers[name].(Explainer)
		if !ok {
			continue
		}
		for test, reason := range explainer.Reasons(output) {
			if result.Tests[test] == Failed {
				reasons[test] = reason
			}
		}
	}
	return reasons
}
