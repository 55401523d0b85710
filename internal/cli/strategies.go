package cli

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func newStrategiesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "strategies",
		Aliases: []string{"parsers"},
		Short:   "List registered strategies and the language table",
		Args:    exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			runStrategies(a)
			return nil
		},
	}
}

func runStrategies(a *app) {
	registry := a.registry()
	languages := registry.Languages()

	langs := make([]string, 0, len(languages))
	for lang := range languages {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	usedBy := make(map[string][]string)
	for _, lang := range langs {
		for _, name := range languages[lang] {
			usedBy[name] = append(usedBy[name], lang)
		}
	}

	// Declaration order is the fallback order, so keep it.
	var rows [][]string
	for i, name := range registry.Names() {
		rows = append(rows, []string{itoa(i + 1), name, strings.Join(usedBy[name], ", ")})
	}
	a.out.Section("Strategies (fallback order)")
	a.out.Table([]string{"#", "Strategy", "Languages"}, rows)

	rows = rows[:0]
	for _, lang := range langs {
		rows = append(rows, []string{lang, strings.Join(languages[lang], ", ")})
	}
	a.out.Section("Languages")
	a.out.Table([]string{"Language", "Strategies (in order)"}, rows)
}
