package main

import (
	"fmt"
	"time"

	"github.com/consensys/novafold/fold"
)

// report is the once-per-run summary: circuit statistics from the public
// parameters plus the two timing samples. Output is human readable, not a
// machine contract.
type report struct {
	params   fold.PublicParams
	prove    time.Duration
	verify   time.Duration
	verified bool
}

func printReport(r report) {
	cPrimary, cSecondary := r.params.NbConstraints()
	vPrimary, vSecondary := r.params.NbVariables()

	fmt.Printf("Number of constraints per step (primary circuit): %d\n", cPrimary)
	fmt.Printf("Number of constraints per step (secondary circuit): %d\n", cSecondary)
	fmt.Printf("Number of variables per step (primary circuit): %d\n", vPrimary)
	fmt.Printf("Number of variables per step (secondary circuit): %d\n", vSecondary)
	fmt.Printf("prover time=%v, verifier time=%v\n", r.prove, r.verify)
	if r.verified {
		fmt.Println("recursive proof verified")
	} else {
		fmt.Println("recursive proof rejected")
	}
}
