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

package options

import (
	"fmt"
	"os"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v2"
)

type ArrayFlags []string

func (i *ArrayFlags) String() string {
	return "array flags"
}

func (i *ArrayFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}

const DefaultStandard = "c++20"

var DefaultEnable = []string{"warning"}

var ValidStandard = map[string]bool{
	"c89":   true,
	"c99":   true,
	"c11":   true,
	"c17":   true,
	"c++03": true,
	"c++11": true,
	"c++14": true,
	"c++17": true,
	"c++20": true,
	"c++23": true,
}

var validEnable = []string{
	"all",
	"warning",
	"style",
	"performance",
	"portability",
	"information",
	"unusedFunction",
	"missingInclude",
}

// CheckerConfig is the optional YAML configuration of the driver. Every
// zero value falls back to the fixed defaults, so running without a config
// file keeps the stock behavior.
type CheckerConfig struct {
	Standard          string   `yaml:"standard"`
	Enable            []string `yaml:"enable"`
	NumWorkers        int      `yaml:"num_workers"`
	CppcheckBin       string   `yaml:"cppcheck_bin"`
	IgnoreDirPatterns []string `yaml:"ignore_dir"`
	ExcludedFragments []string `yaml:"exclude"`
}

func NewCheckerConfig() *CheckerConfig {
	return &CheckerConfig{
		Standard: DefaultStandard,
		Enable:   append([]string{}, DefaultEnable...),
	}
}

// LoadCheckerConfig reads the configuration at path. An empty path returns
// the defaults without touching the filesystem.
func LoadCheckerConfig(path string) (*CheckerConfig, error) {
	config := NewCheckerConfig()
	if path == "" {
		return config, nil
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read checker config %s: %v", path, err)
	}
	err = yaml.Unmarshal(contents, config)
	if err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal: %v", err)
	}
	if config.Standard == "" {
		config.Standard = DefaultStandard
	}
	if len(config.Enable) == 0 {
		config.Enable = append([]string{}, DefaultEnable...)
	}
	err = config.Validate()
	if err != nil {
		return nil, err
	}
	return config, nil
}

func (config *CheckerConfig) Validate() error {
	if _, ok := ValidStandard[config.Standard]; !ok {
		return fmt.Errorf("unsupported standard: %v", config.Standard)
	}
	for _, category := range config.Enable {
		if !slices.Contains(validEnable, category) {
			return fmt.Errorf("unsupported enable category: %v", category)
		}
	}
	if config.NumWorkers < 0 {
		return fmt.Errorf("num_workers must not be negative: %v", config.NumWorkers)
	}
	return nil
}
