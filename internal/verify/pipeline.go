package verify

import (
	"context"
	"path/filepath"

	"github.com/AndreyAkinshin/testsift/internal/errors"
	"github.com/AndreyAkinshin/testsift/internal/output"
	"github.com/AndreyAkinshin/testsift/internal/testparser"
)

// Options configures a pipeline run.
type Options struct {
	Registry         *testparser.Registry // nil means the built-in registry
	Logger           *output.Logger       // nil discards progress messages
	FailureThreshold float64
	LogFile          string // default test_output.txt
	OutputFile       string // default parsed_test_status.json
	PythonRepo       bool   // force the python language hint
	NoSave           bool   // classify without writing the record
}

func (o Options) withDefaults() Options {
	if o.Registry == nil {
		o.Registry = testparser.NewRegistry()
	}
	if o.Logger == nil {
		o.Logger = output.Discard()
	}
	if o.LogFile == "" {
		o.LogFile = "test_output.txt"
	}
	if o.OutputFile == "" {
		o.OutputFile = "parsed_test_status.json"
	}
	return o
}

// Outcome is everything a pipeline run produced for one directory.
type Outcome struct {
	Dir        string
	Metadata   *Metadata
	Language   string // language hint actually used
	Result     testparser.Result
	Record     Record
	RecordPath string // empty when the record was not saved
	Verdict    Verdict
}

// Run loads the metadata and captured output in dir, classifies the output,
// saves parsed_test_status.json and evaluates the failure threshold.
//
// When no strategy recognizes the output, Run returns the partial Outcome
// together with a NoResults error and writes nothing. A verdict above the
// threshold is not an error; callers inspect Outcome.Verdict.
func Run(ctx context.Context, dir string, opts Options) (*Outcome, error) {
	opts = opts.withDefaults()
	log := opts.Logger

	meta, err := LoadMetadata(dir)
	if err != nil {
		return nil, err
	}
	if meta.Legacy {
		log.Infof("using legacy %s", LegacyMetadataFile)
	}
	log.Debugf("metadata: framework=%q language=%q commands=%q", meta.TestFramework, meta.Language, meta.Commands())

	content, err := LoadLog(dir, opts.LogFile)
	if err != nil {
		return nil, err
	}

	language := meta.Language
	if opts.PythonRepo && language != "python" {
		log.Infof("overriding language %q -> python", language)
		language = "python"
	}

	out := &Outcome{Dir: dir, Metadata: meta, Language: language}
	out.Result = Classify(opts.Registry, log, content, meta.TestFramework, language)
	if out.Result.Empty() {
		if _, known := opts.Registry.Languages()[language]; !known && language != "" {
			log.Warnf("unsupported language %q", language)
		}
		return out, errors.NoResults(dir)
	}

	out.Record = NewRecord(out.Result)
	if !opts.NoSave {
		path := filepath.Join(dir, opts.OutputFile)
		if err := SaveRecord(ctx, path, out.Record); err != nil {
			return out, errors.Wrap(err, "saving parsed test status")
		}
		out.RecordPath = path
		log.Debugf("saved %s", path)
	}

	out.Verdict = Evaluate(out.Result.Counts(), opts.FailureThreshold)
	return out, nil
}

// Classify runs the registry over content and logs every strategy attempt.
func Classify(r *testparser.Registry, log *output.Logger, content, framework, language string) testparser.Result {
	if plan := r.Plan(framework, language); len(plan) > 0 {
		log.Debugf("planned strategies: %v", plan)
	}
	result := r.Classify(content, framework, language)
	for _, a := range result.Attempts {
		switch {
		case a.Found > 0 && a.Fallback:
			log.Infof("fallback strategy %s found %d entries", a.Parser, a.Found)
		case a.Found > 0:
			log.Infof("strategy %s found %d entries", a.Parser, a.Found)
		default:
			log.Tracef("strategy %s found nothing", a.Parser)
		}
	}
	if result.Empty() {
		log.Warnf("no strategy recognized the output")
	}
	return result
}
