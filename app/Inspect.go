/*
Copyright 2019-2024 Sho Nakatani
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"fmt"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	succinct "github.com/laysakura/succinct-go"
)

func newInspectCommand() *cobra.Command {
	var showOnes bool

	cmd := &cobra.Command{
		Use:   "inspect PATTERN",
		Short: "Build a vector from a '0'/'1' pattern literal and report on it",
		Long: "Build a vector from a '0'/'1' pattern literal ('_' separators accepted)\n" +
			"and report its length, popcount and storage footprint.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args[0], showOnes)
		},
	}

	cmd.Flags().BoolVar(&showOnes, "ones", false, "list the positions of all 1 bits via select")
	return cmd
}

func runInspect(pattern string, showOnes bool) error {
	bvs, err := succinct.NewBitVectorString(pattern)

	if err != nil {
		return err
	}

	bv := succinct.NewBitVectorBuilderFromString(bvs).Build()
	n := bv.Length()
	total := bv.Rank(n - 1)

	fmt.Printf("Length:   %v bits\n", humanize.Comma(int64(n)))
	fmt.Printf("Popcount: %v (%.1f%% ones)\n", humanize.Comma(int64(total)),
		float64(total)/float64(n)*100)
	reportStorage(bv)

	if showOnes {
		fmt.Printf("Ones:    ")

		for k := uint64(1); k <= total; k++ {
			i, _ := bv.Select(k)
			fmt.Printf(" %v", i)
		}

		fmt.Println()
	}

	return nil
}
