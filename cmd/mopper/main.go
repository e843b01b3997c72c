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

// Command mopper reads a mapping plan document and executes it, writing
// N-Triples or N-Quads to the targets the plan names (or to a forced
// output, if requested).
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	mopper "github.com/mopperengine/mopper"
	"github.com/mopperengine/mopper/options"
	"github.com/mopperengine/mopper/translate"
)

var (
	flagMappingFile  string
	flagMappingLang  string
	flagVerbose      int
	flagQuiet        bool
	flagForceStdOut  bool
	flagForceToFile  string
	flagBufCapacity  int
	flagDeduplicate  bool
	flagConfig       string
)

func main() {
	root := &cobra.Command{
		Use:           "mopper",
		Short:         "Execute a CSV-to-RDF mapping plan",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	flags := root.Flags()
	flags.StringVarP(&flagMappingFile, "mapping-file", "m", "", "path to the plan or mapping source (required)")
	flags.StringVarP(&flagMappingLang, "mapping-lang", "l", "", "mapping language to translate before loading (rml, shexml)")
	flags.CountVarP(&flagVerbose, "verbose", "v", "increase log verbosity (repeatable)")
	flags.BoolVarP(&flagQuiet, "quiet", "q", false, "disable logging")
	flags.BoolVar(&flagForceStdOut, "force-std-out", false, "route all sinks to standard output")
	flags.StringVar(&flagForceToFile, "force-to-file", "", "route all sinks to one file (overridden by --force-std-out)")
	flags.IntVar(&flagBufCapacity, "message-buffer-capacity", 0, "set channel bound; 0 means rendezvous (128 when the flag is not given)")
	flags.BoolVarP(&flagDeduplicate, "deduplicate", "d", false, "drop duplicate output lines")
	flags.StringVar(&flagConfig, "config", "", "optional YAML file of engine options (force_std_out, force_to_file, working_dir_hint, message_buffer_capacity, deduplicate); flags given on the command line take precedence")
	_ = root.MarkFlagRequired("mapping-file")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	configureLogging(flagVerbose, flagQuiet)

	opts := options.New()
	if flagConfig != "" {
		fc, err := options.LoadFileConfig(flagConfig)
		if err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
		opts = fc.ApplyTo(opts)
	}

	flags := cmd.Flags()
	if flags.Changed("force-std-out") {
		opts.ForceToStdOut = flagForceStdOut
	}
	if flags.Changed("force-to-file") {
		opts.ForceToFile = flagForceToFile
	}
	if flags.Changed("message-buffer-capacity") {
		opts.MessageBufferCapacity = flagBufCapacity
	}
	if flags.Changed("deduplicate") {
		opts.Deduplicate = flagDeduplicate
	}

	logrus.Info("reading mapping plan...")
	raw, err := os.ReadFile(flagMappingFile)
	if err != nil {
		return fmt.Errorf("mapping file not found: %s", flagMappingFile)
	}
	mapping := string(raw)

	if parentDir := filepath.Dir(flagMappingFile); parentDir != "." && parentDir != "" {
		opts.WorkingDirHint = parentDir
	}

	if flagMappingLang != "" {
		translated, err := translate.Translate(translate.Lang(strings.ToLower(flagMappingLang)), mapping)
		if err != nil {
			return err
		}
		mapping = translated
	}

	return mopper.Start(newReader(mapping), opts)
}

func newReader(s string) io.Reader {
	return strings.NewReader(s)
}

// configureLogging maps the repeatable -v flag and -q onto logrus'
// verbosity levels at the root logger.
func configureLogging(verbosity int, quiet bool) {
	if quiet {
		logrus.SetLevel(logrus.PanicLevel)
		return
	}
	switch {
	case verbosity <= 0:
		logrus.SetLevel(logrus.WarnLevel)
	case verbosity == 1:
		logrus.SetLevel(logrus.InfoLevel)
	default:
		logrus.SetLevel(logrus.DebugLevel)
	}
}
