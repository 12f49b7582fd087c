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
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func mustUnmarshal(t *testing.T, contents string) CompileCommand {
	t.Helper()
	var command CompileCommand
	if err := json.Unmarshal([]byte(contents), &command); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	return command
}

func TestKey(t *testing.T) {
	for _, testCase := range [...]struct {
		name        string
		entry       string
		expectedKey string
		expectedOk  bool
	}{
		{
			name:        "output preferred over file",
			entry:       `{"file":"/src/foo.cpp","output":"build/src/foo.cpp.o"}`,
			expectedKey: "build/src/foo.cpp.o",
			expectedOk:  true,
		},
		{
			name:        "file used when output absent",
			entry:       `{"file":"/src/foo.cpp","directory":"/build"}`,
			expectedKey: "/src/foo.cpp",
			expectedOk:  true,
		},
		{
			name:       "no key",
			entry:      `{"directory":"/build","command":"cc -c foo.c"}`,
			expectedOk: false,
		},
		{
			name:        "non-string output falls back to file",
			entry:       `{"output":42,"file":"/src/foo.cpp"}`,
			expectedKey: "/src/foo.cpp",
			expectedOk:  true,
		},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			key, ok := mustUnmarshal(t, testCase.entry).Key()
			if ok != testCase.expectedOk || key != testCase.expectedKey {
				t.Errorf("unexpected key for %v. got: %v, %v. expected: %v, %v.",
					testCase.entry, key, ok, testCase.expectedKey, testCase.expectedOk)
			}
		})
	}
}

func TestArgv(t *testing.T) {
	command := mustUnmarshal(t, `{"command":"cc -c \"a b.c\" -o out.o"}`)
	argv, err := command.Argv()
	if err != nil {
		t.Fatalf("Argv: %v", err)
	}
	expected := []string{"cc", "-c", "a b.c", "-o", "out.o"}
	if !reflect.DeepEqual(argv, expected) {
		t.Errorf("unexpected argv. got: %v. expected: %v.", argv, expected)
	}

	command = mustUnmarshal(t, `{"arguments":["clang","-cc1","foo.c"]}`)
	argv, err = command.Argv()
	if err != nil {
		t.Fatalf("Argv: %v", err)
	}
	if !reflect.DeepEqual(argv, []string{"clang", "-cc1", "foo.c"}) {
		t.Errorf("unexpected argv from arguments array: %v", argv)
	}
	if !command.ContainsCC1() {
		t.Error("expected ContainsCC1 to be true")
	}

	command = mustUnmarshal(t, `{"command":"gcc -c foo.c"}`)
	if command.ContainsCC1() {
		t.Error("expected ContainsCC1 to be false")
	}
}

func TestReadWriteKeepsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "compile_commands.json")
	contents := `[{"directory":"/build","file":"/src/foo.cpp","custom_field":{"nested":true}}]`
	if err := os.WriteFile(inputPath, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}

	commands, err := ReadCompileCommandsFromFile(inputPath)
	if err != nil {
		t.Fatalf("ReadCompileCommandsFromFile: %v", err)
	}
	if len(commands) != 1 {
		t.Fatalf("expected 1 command, got %d", len(commands))
	}

	outputPath := filepath.Join(dir, "compile_commands_cppcheck.json")
	if err := WriteCompileCommandsToFile(outputPath, commands); err != nil {
		t.Fatalf("WriteCompileCommandsToFile: %v", err)
	}
	written, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(written), `"custom_field"`) {
		t.Errorf("unknown field dropped from output:\n%s", written)
	}
	if !strings.HasPrefix(string(written), "[\n  {") {
		t.Errorf("output is not indented with two spaces:\n%s", written)
	}
}

func TestWriteEmptyDatabase(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "compile_commands_cppcheck.json")
	if err := WriteCompileCommandsToFile(outputPath, []CompileCommand{}); err != nil {
		t.Fatalf("WriteCompileCommandsToFile: %v", err)
	}
	written, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(written)) != "[]" {
		t.Errorf("empty database should serialize as []. got: %q", written)
	}
}
