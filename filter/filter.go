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

package filter

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/golang/glog"

	"naive.systems/cppcheckdriver/compilecommand"
)

// Path fragments that mark entries a CMake build emits but that are not
// project code: fetched dependencies, generated test drivers, embedded
// resource translation units and the bundled stb single-file library.
// Matching is literal, case-sensitive substring containment.
var KExcludedPathFragments = []string{
	"_deps",
	"cerlibTests.dir",
	"embedded_files",
	"stb.c",
}

// IsValidEntry reports whether the entry should be kept for checking. An
// entry without a usable key cannot be judged and is kept.
func IsValidEntry(cc compilecommand.CompileCommand, excludedFragments []string) bool {
	key, ok := cc.Key()
	if !ok {
		return true
	}
	for _, fragment := range excludedFragments {
		if strings.Contains(key, fragment) {
			return false
		}
	}
	return true
}

func MatchIgnoreDirPatterns(ignoreDirPatterns []string, filePath string) (bool, error) {
	matched := false
	var err error
	for _, ignoreDirPattern := range ignoreDirPatterns {
		matched, err = doublestar.Match(ignoreDirPattern, filePath)
		if err != nil {
			return matched, fmt.Errorf("malformed ignore_dir pattern %s", ignoreDirPattern)
		}
		if matched {
			glog.Infof("Source file %s ignored due to pattern %s", filePath, ignoreDirPattern)
			break
		}
	}
	return matched, nil
}

// Apply returns the entries of commands that are relevant for checking,
// preserving their relative order. Entries are never modified, only
// included or dropped. extraFragments extends the built-in denylist;
// ignoreDirPatterns are matched against the source path of each entry.
func Apply(commands []compilecommand.CompileCommand, extraFragments, ignoreDirPatterns []string) ([]compilecommand.CompileCommand, error) {
	excludedFragments := append([]string{}, KExcludedPathFragments...)
	excludedFragments = append(excludedFragments, extraFragments...)
	kept := []compilecommand.CompileCommand{}
	for _, command := range commands {
		if !IsValidEntry(command, excludedFragments) {
			key, _ := command.Key()
			glog.Infof("entry %s excluded from checking", key)
			continue
		}
		file := command.File()
		if file != "" {
			matched, err := MatchIgnoreDirPatterns(ignoreDirPatterns, file)
			if err != nil {
				return nil, err
			}
			if matched {
				continue
			}
		}
		kept = append(kept, command)
	}
	return kept, nil
}
