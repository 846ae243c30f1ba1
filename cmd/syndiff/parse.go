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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"syndiff/differ"
	"syndiff/tree"
)

var parseFlags = struct {
	fineOnly *bool
	lang     *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <file>",
		Short:   "Parse a file and dump its semantic tree",
		Example: `  syndiff parse BUILD`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	parseFlags.fineOnly = cmd.Flags().Bool("fine-only", false, "use only fine-grained tree")
	parseFlags.lang = cmd.Flags().String("lang", "", "force language by name")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	opts := differ.Options{
		FineOnly: *parseFlags.fineOnly,
		Lang:     *parseFlags.lang,
	}

	t, _, err := differ.BuildTreeFromFile(args[0], opts)
	if err != nil {
		return err
	}
	if t.Root() == nil {
		return nil
	}
	fmt.Println("Tree:")
	tree.PostOrder(t.Root())
	tree.Dump(os.Stdout, t.Root())
	return nil
}
