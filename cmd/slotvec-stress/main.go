package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/plus3/slotvec"
)

type item struct {
	ID      int
	Payload [4]float64
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	itemCount := flag.Int("items", 100000, "The number of items kept live in the container.")
	churn := flag.Int("churn", 1000, "The number of remove+insert pairs per cycle.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting slotvec stress test...")

	// 1. Populate the container
	vec := slotvec.NewWithCapacity[item](*itemCount)
	handles := make([]slotvec.Handle, *itemCount)

	log.Printf("Populating container with %d items...\n", *itemCount)
	for i := 0; i < *itemCount; i++ {
		handles[i] = vec.Insert(item{ID: i})
	}
	log.Println("Population complete.")

	report := &Report{
		Duration:       *duration,
		Items:          *itemCount,
		Churn:          *churn,
		GCPauseMetrics: *gcPauseMetrics,
		CycleTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	// 2. Churn until the deadline: remove and re-insert random items, then
	// walk the whole container. Steady churn must recycle freed slots, so
	// the slot count has to stay flat.
	log.Printf("Running churn for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	baseline := vec.CollectStats().Slots
	startTime := time.Now()
	var totalCycles int64
	nextID := *itemCount

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			cycleStart := time.Now()

			for i := 0; i < *churn; i++ {
				victim := rand.Intn(len(handles))
				if _, ok := vec.Remove(handles[victim]); !ok {
					log.Fatalf("live handle %v failed to remove", handles[victim])
				}
				handles[victim] = vec.Insert(item{ID: nextID})
				nextID++
			}

			var checksum int
			for _, it := range vec.Iter() {
				checksum += it.ID
			}
			report.Checksum = checksum

			report.CycleTime.Samples = append(report.CycleTime.Samples, time.Since(cycleStart))
			totalCycles++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalCycles = totalCycles
	report.CycleTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	stats := vec.CollectStats()
	report.FinalStats = stats

	log.Println("Churn finished.")

	// 3. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	if stats.Slots != baseline {
		log.Fatalf("slot count grew under steady churn: %d -> %d", baseline, stats.Slots)
	}
	if stats.Len != *itemCount {
		log.Fatalf("length drifted: expected %d, got %d", *itemCount, stats.Len)
	}

	log.Println("Stress test complete.")
}
