package testparser

import (
	"encoding/xml"
	"regexp"
	"strings"
)

// junitXMLSuiteStart finds a <testsuite> start tag but not <testsuites>.
var junitXMLSuiteStart = regexp.MustCompile(`<testsuite[\s/>]`)

type junitXMLSuite struct {
	Name  string          `xml:"name,attr"`
	Cases []junitXMLCase  `xml:"testcase"`
	Inner []junitXMLSuite `xml:"testsuite"`
}

type junitXMLCase struct {
	Name      string    `xml:"name,attr"`
	ClassName string    `xml:"classname,attr"`
	Failure   *struct{} `xml:"failure"`
	Error     *struct{} `xml:"error"`
	Skipped   *struct{} `xml:"skipped"`
}

// JUnitXMLParser reads JUnit XML reports that were dumped into a log.
type JUnitXMLParser struct{}

// Name returns the parser name.
func (p *JUnitXMLParser) Name() string {
	return "junitxml"
}

// Parse extracts test outcomes from embedded JUnit XML:
//
//	<testsuite name="calc" tests="2">
//	  <testcase classname="com.example.CalcTest" name="adds"/>
//	  <testcase classname="com.example.CalcTest" name="divides"><failure/></testcase>
//	</testsuite>
//
// Tests are keyed "<classname>.<name>"; nested suites are walked. Each
// top-level suite is decoded where it starts, so a suite that does not
// decode is skipped and scanning resumes at the next start tag.
func (p *JUnitXMLParser) Parse(output string) Results {
	results := make(Results)
	text := cleanOutput(output)
	for pos := 0; pos < len(text); {
		loc := junitXMLSuiteStart.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start := pos + loc[0]

		dec := xml.NewDecoder(strings.NewReader(text[start:]))
		var suite junitXMLSuite
		if err := dec.Decode(&suite); err != nil {
			pos = start + len("<testsuite")
			continue
		}
		addJUnitXMLSuite(results, suite)
		pos = start + int(dec.InputOffset())
	}
	return results
}

func addJUnitXMLSuite(results Results, suite junitXMLSuite) {
	for _, tc := range suite.Cases {
		if tc.Name == "" {
			continue
		}
		class := tc.ClassName
		if class == "" {
			class = suite.Name
		}
		name := tc.Name
		if class != "" {
			name = class + "." + tc.Name
		}
		switch {
		case tc.Failure != nil || tc.Error != nil:
			results[name] = Failed
		case tc.Skipped != nil:
			results[name] = Skipped
		default:
			results[name] = Passed
		}
	}
	for _, inner := range suite.Inner {
		addJUnitXMLSuite(results, inner)
	}
}
