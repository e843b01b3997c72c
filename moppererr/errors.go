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

// Package moppererr declares the error kinds a mapping run can fail with.
//
// Each kind follows the typed-error convention the teacher uses for its
// own named failures (auth.ErrNotAuthorized, auth.ErrParseUserFile, and
// similar): a package-level *errors.Kind built with a format string,
// instantiated with .New(args...) at the call site.
package moppererr

import errorkind "gopkg.in/src-d/go-errors.v1"

var (
	// ErrPlanParse is returned when the plan document cannot be decoded, or
	// references a node ID that does not exist.
	ErrPlanParse = errorkind.NewKind("malformed plan: %s")

	// ErrTemplateSyntax is returned when a "{var}" template (TemplateString
	// or TemplateFunctionValue) fails to parse.
	ErrTemplateSyntax = errorkind.NewKind("error parsing template %q: %s")

	// ErrSourceOpen is returned when a CSV source's file cannot be opened
	// or its header cannot be read.
	ErrSourceOpen = errorkind.NewKind("cannot open %s: %s")

	// ErrUnsupportedFeature is returned for plan constructs this engine
	// does not implement, such as non-inner joins or non-NT/NQ serializers.
	ErrUnsupportedFeature = errorkind.NewKind("unsupported feature: %s")

	// ErrRuntimeIO is returned when a source fails to read a row past its
	// header, or a sink fails to write or flush its output.
	ErrRuntimeIO = errorkind.NewKind("I/O error: %s")

	// ErrReference is returned when a Reference function names a column
	// that does not appear in the bound header.
	ErrReference = errorkind.NewKind("reference to unknown column %q")
)
