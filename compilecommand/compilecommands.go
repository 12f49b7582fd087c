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

package compilecommand

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/google/shlex"

	"naive.systems/cppcheckdriver/atomic"
)

// CompileCommand is a single entry of a CMake compilation database. The
// entry is kept as a raw JSON object so that fields this tool does not
// recognize survive a read-filter-write cycle unchanged.
type CompileCommand map[string]json.RawMessage

const CC1 string = "-cc1"

func (cc CompileCommand) stringField(name string) (string, bool) {
	raw, ok := cc[name]
	if !ok {
		return "", false
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", false
	}
	return value, true
}

func (cc CompileCommand) File() string {
	value, _ := cc.stringField("file")
	return value
}

func (cc CompileCommand) Directory() string {
	value, _ := cc.stringField("directory")
	return value
}

func (cc CompileCommand) Output() string {
	value, _ := cc.stringField("output")
	return value
}

// Key returns the path used to decide whether the entry is relevant for
// checking. The build artifact path wins over the source path because
// target-specific build directories only show up in the former. Entries
// with neither field have no key.
func (cc CompileCommand) Key() (string, bool) {
	if value, ok := cc.stringField("output"); ok {
		return value, true
	}
	if value, ok := cc.stringField("file"); ok {
		return value, true
	}
	return "", false
}

// Argv returns the compiler invocation of the entry. CMake emits either an
// "arguments" array or a single "command" string that has to be split
// shell-style.
func (cc CompileCommand) Argv() ([]string, error) {
	if raw, ok := cc["arguments"]; ok {
		arguments := []string{}
		if err := json.Unmarshal(raw, &arguments); err != nil {
			return nil, fmt.Errorf("malformed arguments array: %v", err)
		}
		return arguments, nil
	}
	command, ok := cc.stringField("command")
	if !ok {
		return nil, nil
	}
	argv, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("shlex.Split: %v", err)
	}
	return argv, nil
}

func (cc CompileCommand) ContainsCC1() bool {
	argv, err := cc.Argv()
	if err != nil {
		glog.Warningf("failed to parse compile command of %s: %v", cc.File(), err)
		return false
	}
	for _, v := range argv {
		if v == CC1 {
			return true
		}
	}
	return false
}

func ReadCompileCommandsFromFile(compileCommandsPath string) ([]CompileCommand, error) {
	ccFile, err := os.Open(compileCommandsPath)
	if err != nil {
		glog.Error(err)
		return nil, err
	}

	defer ccFile.Close()

	byteContent, err := io.ReadAll(ccFile)
	if err != nil {
		return nil, err
	}

	commands := []CompileCommand{}
	err = json.Unmarshal(byteContent, &commands)
	if err != nil {
		return nil, err
	}

	return commands, nil
}

// WriteCompileCommandsToFile serializes commands with two-space indentation
// so the result stays readable next to the original database. The write is
// atomic, a crashed run never leaves a truncated database behind.
func WriteCompileCommandsToFile(compileCommandsPath string, commands []CompileCommand) error {
	contents, err := json.MarshalIndent(commands, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %v", err)
	}
	return atomic.Write(compileCommandsPath, contents)
}
