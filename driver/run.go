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

package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"

	"naive.systems/cppcheckdriver/basic"
	"naive.systems/cppcheckdriver/compilecommand"
	"naive.systems/cppcheckdriver/cppcheck"
	"naive.systems/cppcheckdriver/filter"
	"naive.systems/cppcheckdriver/i18n"
	"naive.systems/cppcheckdriver/options"
	"naive.systems/cppcheckdriver/stats"
)

const CCJson string = "compile_commands.json"
const CppcheckCCJson string = "compile_commands_cppcheck.json"

var sessionID = uuid.NewString()

type Options struct {
	ConfigPath        string
	IgnoreDirPatterns []string
	NumWorkers        int
	Lang              string
}

// Run performs the whole check sequence for buildDir: verify that the
// compilation database exists, filter out entries that are irrelevant for
// checking, persist the filtered copy next to the original and hand it to
// cppcheck. The first failing step aborts the sequence; nothing is retried.
func Run(buildDir string, runOptions Options) error {
	printer := i18n.GetPrinter(runOptions.Lang)
	config, err := options.LoadCheckerConfig(runOptions.ConfigPath)
	if err != nil {
		return err
	}
	config.IgnoreDirPatterns = append(config.IgnoreDirPatterns, runOptions.IgnoreDirPatterns...)
	if runOptions.NumWorkers > 0 {
		config.NumWorkers = runOptions.NumWorkers
	}

	compileCommandsPath := filepath.Join(buildDir, CCJson)
	if _, err := os.Stat(compileCommandsPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s not found in %s", CCJson, buildDir)
		}
		return err
	}

	basic.PrintfWithTimeStamp(printer.Sprintf("Performing Cppcheck checks in directory: %s", buildDir))
	glog.Infof("session %s: loading %s", sessionID, compileCommandsPath)

	commands, err := compilecommand.ReadCompileCommandsFromFile(compileCommandsPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %v", compileCommandsPath, err)
	}

	kept, err := filter.Apply(commands, config.ExcludedFragments, config.IgnoreDirPatterns)
	if err != nil {
		return err
	}
	glog.Infof("session %s: kept %d of %d entries", sessionID, len(kept), len(commands))
	for _, command := range kept {
		if command.ContainsCC1() {
			glog.Warningf("%s is an internal %s invocation, cppcheck may not handle it",
				command.File(), compilecommand.CC1)
		}
	}

	filteredPath := filepath.Join(buildDir, CppcheckCCJson)
	err = compilecommand.WriteCompileCommandsToFile(filteredPath, kept)
	if err != nil {
		return fmt.Errorf("failed to write %s: %v", filteredPath, err)
	}

	lines, err := stats.CountLines(kept, []string{"C", "C++"})
	if err != nil {
		// The count is informational only, a failure must not stop the run.
		glog.Warningf("failed to count lines of code: %v", err)
	} else {
		basic.PrintfWithTimeStamp(printer.Sprintf("Checking %d translation units, %d lines of code", len(kept), lines))
	}

	cppcheckBin, err := cppcheck.FindBinary(config.CppcheckBin)
	if err != nil {
		return err
	}
	basic.PrintfWithTimeStamp(printer.Sprintf("Found cppcheck: %s", cppcheckBin))

	numWorkers := config.NumWorkers
	if numWorkers == 0 {
		numWorkers = runtime.NumCPU()
	}
	cmdArgs := cppcheck.ProjectArgs(filteredPath, config.Standard, config.Enable, numWorkers)
	start := time.Now()
	err = cppcheck.ExecCppcheckBinary(cppcheckBin, cmdArgs)
	if err != nil {
		glog.Errorf("session %s: cppcheck failed: %v", sessionID, err)
		return err
	}
	basic.PrintfWithTimeStamp(printer.Sprintf("Cppcheck checks finished [%s]", basic.FormatTimeDuration(time.Since(start))))
	return nil
}
