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

package cppcheck

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"naive.systems/cppcheckdriver/basic"
)

const BinaryName = "cppcheck"

// FindBinary resolves the cppcheck executable. A configured path takes
// precedence over PATH lookup and is made absolute so the invocation does
// not depend on the working directory.
func FindBinary(configuredBin string) (string, error) {
	if configuredBin != "" {
		cppcheckBin, err := filepath.Abs(configuredBin)
		if err != nil {
			glog.Errorf("cppcheck bin not found in %s", configuredBin)
			return "", err
		}
		if _, err := os.Stat(cppcheckBin); err != nil {
			return "", fmt.Errorf("unable to find cppcheck: %v", err)
		}
		return cppcheckBin, nil
	}
	cppcheckBin, err := exec.LookPath(BinaryName)
	if err != nil {
		return "", fmt.Errorf("unable to find cppcheck: %v", err)
	}
	return cppcheckBin, nil
}

// ProjectArgs builds the argument vector for checking a whole compilation
// database.
func ProjectArgs(projectPath, standard string, enable []string, numJobs int) []string {
	return []string{
		"--project=" + projectPath,
		"--enable=" + strings.Join(enable, ","),
		"--std=" + standard,
		"-j", strconv.Itoa(numJobs),
	}
}

// ExecCppcheckBinary runs cppcheck with its output attached to the current
// process so findings show up live. The returned error is the raw exec
// error, callers inspect it for the child's exit status.
func ExecCppcheckBinary(cppcheckBin string, cmdArgs []string) error {
	cmd := exec.Command(cppcheckBin, cmdArgs...)
	glog.Info("executing: ", cmd.String())
	return basic.PrintCmdOutput(cmd)
}
