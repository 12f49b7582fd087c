/*
NaiveSystems CppcheckDriver - A driver for running Cppcheck on CMake compilation databases
Copyright (C) 2023  Naive Systems Ltd.

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package stats

import (
	"path/filepath"

	"github.com/golang/glog"
	"github.com/hhatto/gocloc"

	"naive.systems/cppcheckdriver/compilecommand"
)

// CountLines returns the number of code lines of the translation units in
// commands, restricted to countLangs. Entries without a source path are
// skipped; relative source paths are resolved against the entry directory.
func CountLines(commands []compilecommand.CompileCommand, countLangs []string) (int, error) {
	paths := []string{}
	seen := map[string]struct{}{}
	for _, command := range commands {
		file := command.File()
		if file == "" {
			continue
		}
		if !filepath.IsAbs(file) {
			file = filepath.Join(command.Directory(), file)
		}
		if _, exists := seen[file]; exists {
			continue
		}
		seen[file] = struct{}{}
		paths = append(paths, file)
	}
	if len(paths) == 0 {
		return 0, nil
	}

	clocOpts := gocloc.NewClocOptions()
	languages := gocloc.NewDefinedLanguages()
	for _, lang := range countLangs {
		if _, exists := languages.Langs[lang]; exists {
			clocOpts.IncludeLangs[lang] = struct{}{}
		}
	}
	processor := gocloc.NewProcessor(languages, clocOpts)
	result, err := processor.Analyze(paths)
	if err != nil {
		glog.Errorf("gocloc fail: %v", err)
		return 0, err
	}

	sum := 0
	for _, file := range result.Files {
		sum += int(file.Code)
	}
	return sum, nil
}
