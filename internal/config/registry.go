package config

import (
	"strings"

	"github.com/AndreyAkinshin/testsift/internal/testparser"
)

// RegistryOptions translates the configuration into registry options:
// the reconcile threshold, language overrides and extra aliases.
func (c *Config) RegistryOptions() []testparser.Option {
	opts := []testparser.Option{testparser.WithReconcileThreshold(c.ReconcileThreshold)}
	for _, lang := range sortedKeys(c.Languages) {
		names := make([]string, 0, len(c.Languages[lang]))
		for _, name := range c.Languages[lang] {
			names = append(names, normalize(name))
		}
		opts = append(opts, testparser.WithLanguage(lang, names...))
	}
	for _, alias := range sortedKeys(c.Aliases) {
		opts = append(opts, testparser.WithAlias(alias, c.Aliases[alias]))
	}
	return opts
}

// NewRegistry builds a classification registry honoring the configuration.
func (c *Config) NewRegistry() *testparser.Registry {
	return testparser.NewRegistry(c.RegistryOptions()...)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
