// Command validate runs the historical validation suite against the impact
// model chain and reports how the computed yields compare to the published
// estimates for each event.
//
// Usage:
//
//	go run ./cmd/validate [-strict]
//
// With -strict the command exits non-zero when any event falls outside its
// published tolerance band.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/couchcryptid/asteroid-impact-service/internal/physics"
)

func main() {
	strict := flag.Bool("strict", false, "exit non-zero when any event is out of tolerance")
	flag.Parse()

	os.Exit(run(*strict))
}

func run(strict bool) int {
	fmt.Println("=== Historical Impact Validation ===")
	fmt.Println()

	records := physics.RunValidationSuite()

	allWithin := true
	for _, rec := range records {
		if rec.Err != "" {
			fmt.Printf("  %-14s \033[31mERROR\033[0m %s\n", rec.Event, rec.Err)
			allWithin = false
			continue
		}

		status := "\033[32mWITHIN TOLERANCE\033[0m"
		if !rec.WithinTolerance {
			status = "\033[31mOUT OF TOLERANCE\033[0m"
			allWithin = false
		}

		fmt.Printf("  %-14s %s\n", rec.Event, status)
		fmt.Printf("    expected   %.4f Mt (±%.4f)\n", rec.ExpectedMegatons, rec.ToleranceMegatons)
		fmt.Printf("    calculated %.4f Mt\n", rec.CalculatedMegatons)
		fmt.Printf("    error      %.2f%%\n", rec.ErrorPct)
		fmt.Println()
	}

	if allWithin {
		fmt.Println("All events within published tolerance.")
		return 0
	}

	fmt.Println("One or more events outside published tolerance.")
	if strict {
		return 1
	}
	return 0
}
