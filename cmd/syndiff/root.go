//  Copyright (c) 2023 Uber Technologies, Inc.
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

package main

import (
	"github.com/spf13/cobra"

	// register the language front ends
	_ "syndiff/lang/bazel"
	_ "syndiff/lang/gomod"
	_ "syndiff/lang/protobuf"
	_ "syndiff/lang/sql"
	_ "syndiff/lang/srcml"
	_ "syndiff/lang/starlark"
	_ "syndiff/lang/thrift"
	_ "syndiff/lang/yamllang"
)

// exitCode is the process exit code chosen by the executed subcommand.
var exitCode int

var rootCmd = &cobra.Command{
	Use:           "syndiff",
	Short:         "syndiff is a syntax-aware structural differencing tool",
	Long:          `syndiff compares two versions of a source file structurally and renders a side-by-side diff that highlights semantic changes rather than textual noise.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
