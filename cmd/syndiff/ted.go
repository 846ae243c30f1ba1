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
	"syndiff/ted"
	"syndiff/tree"
)

var tedFlags = struct {
	fineOnly *bool
	lang     *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "ted <old file> <new file>",
		Short:   "Report the tree edit distance between two versions of a file",
		Example: `  syndiff ted old/go.mod new/go.mod`,
		Args:    cobra.ExactArgs(2),
		RunE:    runTed,
	}
	tedFlags.fineOnly = cmd.Flags().Bool("fine-only", false, "use only fine-grained tree")
	tedFlags.lang = cmd.Flags().String("lang", "", "force language by name")
	rootCmd.AddCommand(cmd)
}

func runTed(cmd *cobra.Command, args []string) error {
	opts := differ.Options{
		FineOnly: *tedFlags.fineOnly,
		Lang:     *tedFlags.lang,
	}

	t1, _, err := differ.BuildTreeFromFile(args[0], opts)
	if err != nil {
		return err
	}
	t2, _, err := differ.BuildTreeFromFile(args[1], opts)
	if err != nil {
		return err
	}
	if t1.Root() == nil || t2.Root() == nil {
		cost := 0
		if t1.Root() != nil {
			cost = len(tree.PostOrder(t1.Root()))
		} else if t2.Root() != nil {
			cost = len(tree.PostOrder(t2.Root()))
		}
		fmt.Printf("cost: %d\n", cost)
		if cost != 0 {
			exitCode = differ.Different
		}
		return nil
	}

	cost := ted.Distance(t1.Root(), t2.Root())
	fmt.Printf("cost: %d\n", cost)

	fmt.Println("Old tree:")
	tree.Dump(os.Stdout, t1.Root())
	fmt.Println("New tree:")
	tree.Dump(os.Stdout, t2.Root())

	if cost != 0 {
		exitCode = differ.Different
	}
	return nil
}
