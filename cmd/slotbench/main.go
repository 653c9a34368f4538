// Benchmark harness for the timeslot package: timed runs of insertion,
// point search, navigation, shifting and bulk assignment at increasing
// sizes, printed as a min/avg/max table.
package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/nodashin6/timeslotassigner/timeslot"
)

type benchStats struct {
	name       string
	iterations int
	min        time.Duration
	max        time.Duration
	avg        time.Duration
	total      time.Duration
}

type runner struct {
	results []benchStats
}

func (r *runner) run(name string, iterations int, f func()) {
	s := benchStats{name: name, iterations: iterations}
	for i := 0; i < iterations; i++ {
		start := time.Now()
		f()
		elapsed := time.Since(start)

		if i == 0 || elapsed < s.min {
			s.min = elapsed
		}
		if elapsed > s.max {
			s.max = elapsed
		}
		s.total += elapsed
	}
	s.avg = s.total / time.Duration(iterations)
	r.results = append(r.results, s)
}

func (r *runner) print() {
	fmt.Println()
	fmt.Println("================================================================================")
	fmt.Println("TIMESLOTASSIGNER PERFORMANCE BENCHMARKS")
	fmt.Println("================================================================================")
	fmt.Printf("%-44s %-12s %-12s %-12s\n", "Benchmark", "Avg Time", "Min Time", "Max Time")
	fmt.Println("--------------------------------------------------------------------------------")
	for _, s := range r.results {
		fmt.Printf("%-44s %-12s %-12s %-12s\n", s.name, fmtDur(s.avg), fmtDur(s.min), fmtDur(s.max))
	}
	fmt.Println("================================================================================")
}

func fmtDur(d time.Duration) string {
	return fmt.Sprintf("%.3fms", float64(d.Nanoseconds())/1e6)
}

func benchInsertion(r *runner) {
	for _, size := range []int{1000, 5000, 10000, 50000, 100000} {
		size := size
		r.run(fmt.Sprintf("Insert %d slots", size), 3, func() {
			store := timeslot.NewStore("bench")
			for i := 0; i < size; i++ {
				store.Add(int64(i*2), int64(i*2+1), fmt.Sprintf("slot_%d", i))
			}
		})
	}
}

func benchSearch(r *runner) {
	store := timeslot.NewStore("bench")
	const size = 100000
	for i := 0; i < size; i++ {
		store.Add(int64(i*2), int64(i*2+1), fmt.Sprintf("slot_%d", i))
	}

	positions := []struct {
		name string
		at   int64
	}{
		{"beginning", 10},
		{"middle", size},
		{"end", size*2 - 10},
	}
	for _, p := range positions {
		p := p
		r.run(fmt.Sprintf("Search at %s (100K slots)", p.name), 1000, func() {
			store.SlotAt(p.at)
		})
	}
}

func benchNavigation(r *runner) {
	store := timeslot.NewStore("bench")
	const size = 50000
	for i := 0; i < size; i++ {
		store.Add(int64(i*3), int64(i*3+1), fmt.Sprintf("slot_%d", i))
	}

	middleStart := int64((size / 2) * 3)
	r.run("Left slot navigation (50K slots)", 1000, func() {
		store.LeftSlot(middleStart)
	})
	r.run("Right slot navigation (50K slots)", 1000, func() {
		store.RightSlot(middleStart)
	})
}

func benchShift(r *runner) {
	store := timeslot.NewStore("bench")
	for i := 0; i < 1000; i += 10 {
		store.Add(int64(i), int64(i+1), fmt.Sprintf("slot_%d", i))
	}

	r.run("Add with shift (sparse store)", 100, func() {
		store.AddWithShift(5, 8, "shifted_slot")
	})
}

func benchGroup(r *runner) {
	resources := make([]string, 100)
	for i := range resources {
		resources[i] = fmt.Sprintf("resource_%d", i)
	}
	group := timeslot.NewGroup(resources...)

	r.run("Add slots (100 resources)", 10, func() {
		for i, id := range resources {
			start := int64(i * 100)
			group.AddSlotWithShift(id, start, start+50, fmt.Sprintf("task_%d", i))
		}
	})
	r.run("Query slots (100 resources)", 1000, func() {
		group.SlotsAt(50 * 100)
	})
}

func benchRegistry(r *runner) {
	registry := timeslot.NewRegistry[string]()
	departments := []string{"engineering", "marketing", "sales", "support", "facilities"}
	for _, dept := range departments {
		registry.AddCalendar(dept, nil)
		for i := 0; i < 20; i++ {
			registry.AddResourceToCalendar(dept, fmt.Sprintf("%s_person_%d", dept, i))
		}
	}

	r.run("Bulk shift assignment (5x20 resources)", 10, func() {
		var assignments []timeslot.Assignment[string]
		for _, dept := range departments {
			for i := 0; i < 20; i++ {
				start := int64(rand.Intn(1000))
				assignments = append(assignments, timeslot.Assignment[string]{
					Key:        dept,
					ResourceID: fmt.Sprintf("%s_person_%d", dept, i),
					Start:      start,
					End:        start + 60,
					Data:       fmt.Sprintf("meeting_%d", i),
				})
			}
		}
		registry.BulkAssignSlotsWithShift(assignments)
	})
	r.run("Cross-calendar query (5 calendars)", 1000, func() {
		registry.AllSlotsAt(500)
	})
}

func hostReport() {
	cpuUsage, err := cpu.Percent(time.Second, false)
	if err != nil {
		log.Println("cpu stats unavailable:", err)
		return
	}
	memInfo, err := mem.VirtualMemory()
	if err != nil {
		log.Println("memory stats unavailable:", err)
		return
	}
	fmt.Printf("host: cpu %.1f%%, memory %d/%d MB (%.1f%%)\n",
		cpuUsage[0], memInfo.Used>>20, memInfo.Total>>20, memInfo.UsedPercent)
}

func main() {
	r := &runner{}

	benchInsertion(r)
	benchSearch(r)
	benchNavigation(r)
	benchShift(r)
	benchGroup(r)
	benchRegistry(r)

	r.print()
	hostReport()
}
