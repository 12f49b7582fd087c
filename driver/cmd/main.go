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

package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/golang/glog"

	"naive.systems/cppcheckdriver/driver"
	"naive.systems/cppcheckdriver/options"
)

func main() {
	configPath := flag.String("checker_config", "", "Path to an optional YAML checker configuration")
	numWorkers := flag.Int("num_workers", 0, "Number of cppcheck jobs, defaults to the number of CPUs")
	lang := flag.String("lang", "en", "Language of progress messages (en, zh)")
	var ignoreDirPatterns options.ArrayFlags
	flag.Var(&ignoreDirPatterns, "ignore_dir", "Shell file name pattern to a directory that will be ignored")
	flag.Parse()
	defer glog.Flush()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <build_directory>\n", filepath.Base(os.Args[0]))
		os.Exit(2)
	}

	err := driver.Run(flag.Arg(0), driver.Options{
		ConfigPath:        *configPath,
		IgnoreDirPatterns: ignoreDirPatterns,
		NumWorkers:        *numWorkers,
		Lang:              *lang,
	})
	if err == nil {
		return
	}
	glog.Flush()
	if exitError, ok := err.(*exec.ExitError); ok {
		code := exitError.ExitCode()
		if code <= 0 {
			code = 1
		}
		fmt.Fprintf(os.Stderr, "error: cppcheck exited with status %d\n", exitError.ExitCode())
		os.Exit(code)
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
