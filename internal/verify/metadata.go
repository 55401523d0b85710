// Package verify runs the classification pipeline over the artefacts a
// container test run leaves in a repository directory: metadata, captured
// output and the resulting parsed_test_status.json record.
package verify

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AndreyAkinshin/testsift/internal/errors"
)

// Metadata file names, in lookup order.
const (
	MetadataFile       = "repo_metadata.json"
	LegacyMetadataFile = "test_commands.json"
)

// Metadata describes how a repository's tests were run.
type Metadata struct {
	TestFramework   string      `json:"test_framework"`
	Language        string      `json:"language"`
	TestCommands    commandList `json:"test_commands,omitempty"`
	InstallCommands commandList `json:"install_commands,omitempty"`
	TestCommand     string      `json:"test_command,omitempty"` // legacy format only

	Legacy bool   `json:"-"` // read from test_commands.json
	Path   string `json:"-"`
}

// Commands returns the test commands of either format.
func (m *Metadata) Commands() []string {
	if len(m.TestCommands) > 0 {
		return m.TestCommands
	}
	if m.TestCommand != "" {
		return []string{m.TestCommand}
	}
	return nil
}

// commandList accepts either a JSON array of strings or a single string.
type commandList []string

func (c *commandList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one == "" {
			*c = nil
		} else {
			*c = commandList{one}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("commands must be a string or a list of strings")
	}
	*c = many
	return nil
}

// LoadMetadata reads repo_metadata.json from dir, falling back to the legacy
// test_commands.json when the former is missing or unreadable. Hints are
// normalized to lowercase.
func LoadMetadata(dir string) (*Metadata, error) {
	primary, primaryErr := readMetadata(filepath.Join(dir, MetadataFile))
	if primaryErr == nil {
		return primary, nil
	}

	legacy, legacyErr := readMetadata(filepath.Join(dir, LegacyMetadataFile))
	if legacyErr == nil {
		legacy.Legacy = true
		return legacy, nil
	}

	if os.IsNotExist(primaryErr) && os.IsNotExist(legacyErr) {
		return nil, errors.NotFound("metadata", fmt.Sprintf("neither %s nor %s in %s", MetadataFile, LegacyMetadataFile, dir))
	}
	if !os.IsNotExist(primaryErr) {
		return nil, errors.Wrap(primaryErr, "reading "+MetadataFile)
	}
	return nil, errors.Wrap(legacyErr, "reading "+LegacyMetadataFile)
}

func readMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	m.TestFramework = strings.ToLower(strings.TrimSpace(m.TestFramework))
	m.Language = strings.ToLower(strings.TrimSpace(m.Language))
	m.Path = path
	return &m, nil
}

// LoadLog reads the captured test output. Invalid UTF-8 sequences are
// replaced so every strategy sees valid text.
func LoadLog(dir, name string) (string, error) {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", errors.NotFound("test output", path)
	}
	if err != nil {
		return "", errors.Wrap(err, "reading test output")
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}

// ResolveDir maps the CLI path argument to the working directory: a
// directory is used as is, a file (typically the Dockerfile) means its parent.
func ResolveDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrap(err, "resolving path")
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.NotFound("path", path)
	}
	if info.IsDir() {
		return abs, nil
	}
	return filepath.Dir(abs), nil
}
