// Copyright 2024 The mopper Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package options

import (
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML shape of an optional --config file: the same
// fields as Options, all optional, so a config file can set some and leave
// the rest at their defaults. A flag the user also passed on the command
// line always overrides the matching config file entry.
type FileConfig struct {
	ForceToStdOut         *bool   `yaml:"force_std_out"`
	ForceToFile           *string `yaml:"force_to_file"`
	WorkingDirHint        *string `yaml:"working_dir_hint"`
	MessageBufferCapacity *int    `yaml:"message_buffer_capacity"`
	Deduplicate           *bool   `yaml:"deduplicate"`
}

// LoadFileConfig reads and parses a YAML config file at path.
func LoadFileConfig(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, err
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FileConfig{}, err
	}
	return cfg, nil
}

// ApplyTo merges fc's set fields into opts, returning the result. Every
// field fc leaves nil is left untouched in opts.
func (fc FileConfig) ApplyTo(opts Options) Options {
	if fc.ForceToStdOut != nil {
		opts.ForceToStdOut = *fc.ForceToStdOut
	}
	if fc.ForceToFile != nil {
		opts.ForceToFile = *fc.ForceToFile
	}
	if fc.WorkingDirHint != nil {
		opts.WorkingDirHint = *fc.WorkingDirHint
	}
	if fc.MessageBufferCapacity != nil {
		opts.MessageBufferCapacity = *fc.MessageBufferCapacity
	}
	if fc.Deduplicate != nil {
		opts.Deduplicate = *fc.Deduplicate
	}
	return opts
}
