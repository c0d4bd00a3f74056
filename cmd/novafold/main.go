// novafold is a benchmark driver for incremental verifiable computation:
// it folds a fixed sequence of step-circuit executions into a single
// recursive artifact, verifies it, and reports circuit statistics and
// prove/verify timings.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/consensys/novafold/circom"
	"github.com/consensys/novafold/fold"
	"github.com/consensys/novafold/fold/mimc"
	"github.com/consensys/novafold/input"
	"github.com/consensys/novafold/logger"
)

var (
	fR1CSPath    string
	fGenPath     string
	fInputs      string
	fIterations  int
	fParamsPath  string
	fProfileMode string
)

var rootCmd = &cobra.Command{
	Use:   "novafold",
	Short: "fold a sequence of circom step executions into one recursive proof and verify it",
	RunE:  run,
	// errors are printed by main with the run context already logged
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVar(&fR1CSPath, "r1cs", "", "compiled step circuit (.r1cs)")
	rootCmd.Flags().StringVar(&fGenPath, "witness-generator", "", "native witness generator binary")
	rootCmd.Flags().StringVar(&fInputs, "inputs", "input_%d.json", "per-step input path template, %d is the step index")
	rootCmd.Flags().IntVar(&fIterations, "iterations", 3, "number of steps to fold")
	rootCmd.Flags().StringVar(&fParamsPath, "params", "novafold.params", "public parameter cache file")
	rootCmd.Flags().StringVar(&fProfileMode, "profile", "", "profiling mode (cpu, mem or trace)")
	_ = rootCmd.MarkFlagRequired("r1cs")
	_ = rootCmd.MarkFlagRequired("witness-generator")
}

func run(cmd *cobra.Command, args []string) error {
	switch fProfileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	case "trace":
		defer profile.Start(profile.TraceProfile, profile.ProfilePath(".")).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", fProfileMode)
	}

	log := logger.Logger()
	scheme := mimc.Scheme{}

	r1cs, err := circom.Load(fR1CSPath)
	if err != nil {
		return err
	}
	log.Info().Str("path", fR1CSPath).Int("nbConstraints", r1cs.GetNbConstraints()).Int("nbWires", r1cs.GetNbWires()).Msg("loaded step circuit")

	pp, err := fold.Params(scheme, r1cs, fParamsPath)
	if err != nil {
		return err
	}

	batch, err := input.Load(fInputs, fIterations)
	if err != nil {
		return err
	}

	gen := circom.NewGenerator(fGenPath)

	log.Info().Int("iterations", fIterations).Msg("creating recursive proof")
	start := time.Now()
	proof, err := fold.Fold(scheme, gen, pp, batch.Steps, batch.Z0)
	proveTime := time.Since(start)
	if err != nil {
		return err
	}
	log.Info().Dur("took", proveTime).Msg("recursive proof created")

	log.Info().Msg("verifying recursive proof")
	start = time.Now()
	_, err = proof.Verify(pp, fIterations, batch.Z0, fold.Z0Secondary())
	verifyTime := time.Since(start)
	verified := err == nil
	if err != nil && !errors.Is(err, fold.ErrVerificationFailed) {
		return err
	}
	if err != nil {
		// a failed verification is a result, not a fault
		log.Warn().Err(err).Dur("took", verifyTime).Msg("verification rejected the proof")
	} else {
		log.Info().Dur("took", verifyTime).Msg("verification passed")
	}

	printReport(report{
		params:   pp,
		prove:    proveTime,
		verify:   verifyTime,
		verified: verified,
	})
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
