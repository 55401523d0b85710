package testparser

import (
	"regexp"
	"strings"
)

// Static regexes shared by the JVM runners.
var (
	jvmTestsRunRegex = regexp.MustCompile(`Tests run:\s*(\d+),\s*Failures:\s*(\d+)(?:,\s*Errors:\s*(\d+))?(?:,\s*Skipped:\s*(\d+))?(.*)$`)
	jvmInClassRegex  = regexp.MustCompile(`\sin\s+([\w.$]+)\s*$`)
	jvmRunningRegex  = regexp.MustCompile(`^(?:Running|Testsuite:)\s+([\w.$]+)\s*$`)
)

// classTally collects per-class counts and named outcomes for runners that
// print a "Tests run:" line per test class.
type classTally struct {
	order   []string
	counts  map[string]Counts
	methods map[string]Results

	aggregate    Counts
	hasAggregate bool
}

func newClassTally() *classTally {
	return &classTally{
		counts:  make(map[string]Counts),
		methods: make(map[string]Results),
	}
}

func (t *classTally) touch(class string) {
	if _, ok := t.counts[class]; ok {
		return
	}
	if _, ok := t.methods[class]; ok {
		return
	}
	t.order = append(t.order, class)
}

// setCounts records the "Tests run:" line of a class. An empty class means
// the run-wide total, which is only used when nothing per class was seen.
func (t *classTally) setCounts(class string, c Counts) {
	if class == "" {
		t.aggregate.Add(&c)
		t.hasAggregate = true
		return
	}
	t.touch(class)
	t.counts[class] = c
}

func (t *classTally) addMethod(class, method string, status Status) {
	t.touch(class)
	if t.methods[class] == nil {
		t.methods[class] = make(Results)
	}
	t.methods[class][jvmTestName(class, method)] = status
}

// results names every test it can and fills each class up to its declared
// count with placeholders prefixed by the class name.
func (t *classTally) results(prefix string) Results {
	results := make(Results)
	for _, class := range t.order {
		methods := t.methods[class]
		if methods == nil {
			methods = Results{}
		}
		label := class
		if label == "" {
			label = prefix
		}
		results = Merge(results, fillGap(methods, t.counts[class], label))
	}
	if len(results) == 0 && t.hasAggregate {
		return expandCounts(prefix, t.aggregate)
	}
	return results
}

// jvmCounts converts a "Tests run:" match into Counts. Errors count as failures.
func jvmCounts(match []string) Counts {
	run := atoi(match[1])
	failed := atoi(match[2]) + atoi(match[3])
	skipped := atoi(match[4])
	passed := run - failed - skipped
	if passed < 0 {
		passed = 0
	}
	return newCounts(passed, failed, skipped)
}

// jvmTestName qualifies a method with its class unless it already is.
func jvmTestName(class, method string) string {
	method = strings.TrimSuffix(strings.TrimSpace(method), "()")
	if class == "" || strings.HasPrefix(method, class+".") {
		return method
	}
	return class + "." + method
}
