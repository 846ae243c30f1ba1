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
	"os"

	"github.com/spf13/cobra"

	"syndiff/differ"
)

var diffFlags = struct {
	color    *bool
	fineOnly *bool
	useTED   *bool
	lang     *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "diff <old file> <new file>",
		Short:   "Compare two versions of a file structurally",
		Example: `  syndiff diff old/main.c.xml new/main.c.xml`,
		Args:    cobra.ExactArgs(2),
		RunE:    runDiff,
	}
	diffFlags.color = cmd.Flags().Bool("color", false, "force colorization of output")
	diffFlags.fineOnly = cmd.Flags().Bool("fine-only", false, "use only fine-grained tree")
	diffFlags.useTED = cmd.Flags().Bool("ted", false, "match with tree edit distance instead of the distiller")
	diffFlags.lang = cmd.Flags().String("lang", "", "force language by name")
	rootCmd.AddCommand(cmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	opts := differ.Options{
		Color:    *diffFlags.color,
		FineOnly: *diffFlags.fineOnly,
		UseTED:   *diffFlags.useTED,
		Lang:     *diffFlags.lang,
	}

	res, err := differ.DiffFiles(args[0], args[1], os.Stdout, opts)
	if err != nil {
		return err
	}
	if !res.Equal {
		exitCode = differ.Different
	}
	return nil
}
