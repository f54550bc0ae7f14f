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
	"math/rand"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	succinct "github.com/laysakura/succinct-go"
)

func newBenchCommand() *cobra.Command {
	var length uint64
	var density float64
	var queries int
	var seed int64

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Build a random bit vector and time access, rank and select",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(length, density, queries, seed)
		},
	}

	cmd.Flags().Uint64VarP(&length, "length", "n", 1<<20, "number of bits in the vector")
	cmd.Flags().Float64VarP(&density, "density", "d", 0.5, "probability of a 1 bit")
	cmd.Flags().IntVarP(&queries, "queries", "q", 1<<20, "number of queries per operation")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 means time based)")
	return cmd
}

func runBench(length uint64, density float64, queries int, seed int64) error {
	if density < 0 || density > 1 {
		return errors.Errorf("Invalid density: %v (must be in [0, 1])", density)
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	builder, err := succinct.NewBitVectorBuilderFromLength(length)

	if err != nil {
		return err
	}

	r := rand.New(rand.NewSource(seed))

	for i := uint64(0); i < length; i++ {
		if r.Float64() < density {
			builder.SetBit(i)
		}
	}

	before := time.Now()
	bv := builder.Build()
	delta := time.Since(before)
	total := bv.Rank(length - 1)

	fmt.Printf("%v\n\n", _APP_HEADER)
	fmt.Printf("Bits:       %v\n", humanize.Comma(int64(length)))
	fmt.Printf("Popcount:   %v\n", humanize.Comma(int64(total)))
	fmt.Printf("Build time: %v (%v bits/s)\n", delta, humanize.Comma(rate(length, delta)))
	reportStorage(bv)
	fmt.Println()

	// access
	before = time.Now()
	sink := uint64(0)

	for q := 0; q < queries; q++ {
		if bv.Access(r.Uint64() % length) {
			sink++
		}
	}

	reportOp("access", queries, time.Since(before))

	// rank
	before = time.Now()

	for q := 0; q < queries; q++ {
		sink += bv.Rank(r.Uint64() % length)
	}

	reportOp("rank", queries, time.Since(before))

	// select
	before = time.Now()

	for q := 0; q < queries; q++ {
		if i, ok := bv.Select(r.Uint64() % (total + 1)); ok {
			sink += i
		}
	}

	reportOp("select", queries, time.Since(before))
	_ = sink
	return nil
}

func reportOp(name string, queries int, delta time.Duration) {
	fmt.Printf("%-8v %v queries in %v (%v/s)\n", name, humanize.Comma(int64(queries)),
		delta, humanize.Comma(rate(uint64(queries), delta)))
}

func reportStorage(bv *succinct.BitVector) {
	n := bv.Length()
	bits := bv.StorageBits()
	overhead := float64(bits-n) / float64(n) * 100
	fmt.Printf("Storage:    %v bits for %v data bits (%.1f%% overhead, %v)\n",
		humanize.Comma(int64(bits)), humanize.Comma(int64(n)), overhead,
		humanize.Bytes(bits/8))
}

func rate(count uint64, delta time.Duration) int64 {
	if delta <= 0 {
		return 0
	}

	return int64(float64(count) / delta.Seconds())
}
