package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"

	"github.com/status-im/backoff-common/backoff"
)

func main() {
	slots := flag.Int("slots", 1024, "permutation modulus")
	replicas := flag.Int("replicas", 128, "number of simulated clients")
	steps := flag.Int("steps", 20, "retry steps to simulate")
	seed := flag.Uint64("seed", 27, "collatz seed")
	rngSeed := flag.Int64("rng-seed", 1337, "seed for the RNG jitter baseline")
	mode := flag.String("mode", "all", "collatz|random|hybrid|all")
	hybridProb := flag.Float64("hybrid-prob", 0.1, "probability of RNG jitter in hybrid mode")
	flag.Parse()

	fmt.Println("Benchmark: collision counts per retry step")
	fmt.Printf("slots=%d replicas=%d steps=%d\n\n", *slots, *replicas, *steps)

	b, err := backoff.New(backoff.Config{SlotsM: *slots, CollatzSeed: *seed})
	if err != nil {
		log.Fatal("invalid configuration: ", err)
	}

	if *mode == "collatz" || *mode == "all" {
		summarize("collatz", runCollatz(b, *replicas, *steps))
	}
	if *mode == "random" || *mode == "all" {
		summarize("random", runRandom(*slots, *replicas, *steps, *rngSeed))
	}
	if *mode == "hybrid" || *mode == "all" {
		label := fmt.Sprintf("hybrid p=%.2f", *hybridProb)
		summarize(label, runHybrid(b, *replicas, *steps, *rngSeed, *hybridProb))
	}
}

// runCollatz counts collisions of the deterministic schedule; zero for
// every step whenever replicas <= slots and the modulus is a power of two.
func runCollatz(b *backoff.Backoff, replicas, steps int) []int {
	collisions := make([]int, steps)
	for k := 0; k < steps; k++ {
		seen := make(map[uint64]bool, replicas)
		for id := 0; id < replicas; id++ {
			seen[b.OffsetSlot(uint64(id), k)] = true
		}
		collisions[k] = replicas - len(seen)
	}
	return collisions
}

// runRandom is the thundering-herd baseline: every client rolls its own slot.
func runRandom(slots, replicas, steps int, rngSeed int64) []int {
	rng := rand.New(rand.NewSource(rngSeed)) // #nosec G404 -- benchmark baseline
	collisions := make([]int, steps)
	for k := 0; k < steps; k++ {
		seen := make(map[int]bool, replicas)
		for i := 0; i < replicas; i++ {
			seen[rng.Intn(slots)] = true
		}
		collisions[k] = replicas - len(seen)
	}
	return collisions
}

// runHybrid mixes the two: each client keeps its deterministic slot except
// with probability prob, where it rolls randomly.
func runHybrid(b *backoff.Backoff, replicas, steps int, rngSeed int64, prob float64) []int {
	rng := rand.New(rand.NewSource(rngSeed)) // #nosec G404 -- benchmark baseline
	slots := b.Config().SlotsM

	collisions := make([]int, steps)
	for k := 0; k < steps; k++ {
		seen := make(map[uint64]bool, replicas)
		for id := 0; id < replicas; id++ {
			if rng.Float64() < prob {
				seen[uint64(rng.Intn(slots))] = true
			} else {
				seen[b.OffsetSlot(uint64(id), k)] = true
			}
		}
		collisions[k] = replicas - len(seen)
	}
	return collisions
}

func summarize(label string, collisions []int) {
	counts := make(map[int]int)
	worst := 0
	for _, c := range collisions {
		counts[c]++
		if c > worst {
			worst = c
		}
	}
	fmt.Printf("%s collisions per step: %v\n", label, counts)
	fmt.Printf("%s worst-step collisions: %d\n", label, worst)
}
