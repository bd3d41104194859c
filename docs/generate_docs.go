/*
 * Copyright (C) 2024 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */


package main

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/nuts-foundation/nuts-siga/cmd"
	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/spf13/cobra/doc"
	"github.com/spf13/pflag"
)

func generateDocs(pagesDirectory string) error {
	system := cmd.CreateSystem(func() {})
	if err := generateServerOptions(system, path.Join(pagesDirectory, "configuration", "server_options.rst")); err != nil {
		return err
	}
	return generateCLICommands(system, path.Join(pagesDirectory, "cli"))
}

func generateCLICommands(system *core.System, cliDirectory string) error {
	cmdsDirectory := path.Join(cliDirectory, "commands")
	if err := os.RemoveAll(cmdsDirectory); err != nil {
		return err
	}
	if err := os.MkdirAll(cmdsDirectory, os.ModePerm); err != nil {
		return err
	}
	linkHandler := func(name, ref string) string {
		return fmt.Sprintf(":ref:`%s <%s>`", name, ref)
	}
	prepender := func(string) string { return "" }
	if err := doc.GenReSTTreeCustom(cmd.CreateCommand(system), cmdsDirectory, prepender, linkHandler); err != nil {
		return err
	}

	index := strings.Builder{}
	index.WriteString(".. _siga-cli-command-reference:\n\nCLI Command Reference\n*********************\n\n")
	for _, fileName := range listDirectory(cmdsDirectory) {
		index.WriteString(fmt.Sprintf(".. include:: commands/%s\n\n\n------------\n\n", fileName))
		if err := rewriteCommandHelp(path.Join(cmdsDirectory, fileName)); err != nil {
			return err
		}
	}
	return os.WriteFile(path.Join(cliDirectory, "index.rst"), []byte(index.String()), 0644)
}

// rewriteCommandHelp strips the cross-references and turns subsections into bold captions,
// so the generated pages can be included in a single index.
func rewriteCommandHelp(fileName string) error {
	const seeAlso = "SEE ALSO"
	const inheritedOptions = `
Options inherited from parent commands
~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~

::
`
	data, err := os.ReadFile(fileName)
	if err != nil {
		return err
	}
	cmdHelp := strings.ReplaceAll(string(data), inheritedOptions, "")
	if i := strings.Index(cmdHelp, seeAlso); i >= 0 {
		cmdHelp = cmdHelp[:i]
	}
	cmdHelp = strings.TrimSpace(cmdHelp)
	cmdHelp = strings.ReplaceAll(cmdHelp, "Synopsis\n~~~~~~~~\n", "**Synopsis**")
	cmdHelp = strings.ReplaceAll(cmdHelp, "Options\n~~~~~~~\n", "**Options**")
	return os.WriteFile(fileName, []byte(cmdHelp), 0644)
}

func generateServerOptions(system *core.System, fileName string) error {
	serverCommand, _, err := cmd.CreateCommand(system).Find([]string{"server"})
	if err != nil {
		return err
	}
	globalFlags := pflag.NewFlagSet("server", pflag.ContinueOnError)
	globalFlags.AddFlagSet(serverCommand.Flags())

	// Index the flags by engine, remaining flags are global
	flags := map[string]*pflag.FlagSet{"": globalFlags}
	system.VisitEngines(func(engine core.Engine) {
		if m, ok := engine.(core.Injectable); ok {
			flagsForEngine := extractFlagsForEngine(strings.ToLower(m.Name()), globalFlags)
			if flagsForEngine.HasAvailableFlags() {
				flags[m.Name()] = flagsForEngine
			}
		}
	})
	return generatePartitionedConfigOptionsDocs(fileName, flags)
}

func extractFlagsForEngine(configKey string, flagSet *pflag.FlagSet) *pflag.FlagSet {
	result := pflag.FlagSet{}
	flagSet.VisitAll(func(current *pflag.Flag) {
		if strings.HasPrefix(current.Name, configKey+".") {
			// This flag belongs to this engine, so copy it and hide it in the input flag set
			flagCopy := *current
			current.Hidden = true
			result.AddFlag(&flagCopy)
		}
	})
	return &result
}

func generatePartitionedConfigOptionsDocs(fileName string, flags map[string]*pflag.FlagSet) error {
	sortedKeys := make([]string, 0, len(flags))
	for key := range flags {
		sortedKeys = append(sortedKeys, key)
	}
	sort.Strings(sortedKeys)

	values := make([][]rstValue, 0)
	for _, key := range sortedKeys {
		if key != "" {
			values = append(values, []rstValue{{
				value: key,
				bold:  true,
			}})
		}
		values = append(values, flagsToSortedValues(flags[key])...)
	}
	if err := os.MkdirAll(path.Dir(fileName), os.ModePerm); err != nil {
		return err
	}
	optionsFile, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer optionsFile.Close()
	printRstTable(vals("Key", "Default", "Description"), values, optionsFile)
	return optionsFile.Sync()
}

func flagsToSortedValues(flags *pflag.FlagSet) [][]rstValue {
	values := make([][]rstValue, 0)
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		values = append(values, vals(f.Name, f.DefValue, f.Usage))
	})
	// Global properties (the ones without dots) appear at the top
	sort.Slice(values, func(i, j int) bool {
		s1 := values[i][0].value
		s2 := values[j][0].value
		nested1 := strings.Contains(s1, ".")
		nested2 := strings.Contains(s2, ".")
		if nested1 != nested2 {
			return !nested1
		}
		return s1 < s2
	})
	return values
}

func listDirectory(targetDirectory string) []string {
	entries, _ := os.ReadDir(targetDirectory)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}
