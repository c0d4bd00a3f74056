package fold

import (
	"fmt"
	"os"

	"github.com/consensys/novafold/circom"
	"github.com/consensys/novafold/logger"
)

// Params returns the scheme's public parameters for r1cs, reusing the
// serialized copy at cachePath when one is present and readable.
//
// The cache is keyed by path alone: no fingerprint of the circuit shape is
// stored, so a cache produced for a different circuit is accepted silently
// and proving or verification will misbehave downstream. Clearing the file
// after a circuit change is the operator's job.
//
// On a miss the freshly generated parameters are written back on a best
// effort basis; a write failure is logged and the in-memory parameters are
// used for the rest of the run.
func Params(scheme Scheme, r1cs *circom.R1CS, cachePath string) (PublicParams, error) {
	log := logger.Logger()

	if f, err := os.Open(cachePath); err == nil {
		pp := scheme.NewParams()
		_, err = pp.ReadFrom(f)
		f.Close()
		if err == nil {
			log.Info().Str("path", cachePath).Msg("public parameters cache hit")
			return pp, nil
		}
		// unreadable cache counts as a miss and gets regenerated
		log.Warn().Str("path", cachePath).Err(err).Msg("discarding unreadable parameter cache")
	}

	log.Info().Str("path", cachePath).Msg("public parameters cache miss, generating")
	pp, err := scheme.Setup(r1cs)
	if err != nil {
		return nil, fmt.Errorf("parameter generation: %w", err)
	}

	if err := writeParams(pp, cachePath); err != nil {
		log.Warn().Str("path", cachePath).Err(err).Msg("could not persist public parameters")
	} else {
		log.Info().Str("path", cachePath).Msg("public parameters persisted")
	}
	return pp, nil
}

func writeParams(pp PublicParams, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := pp.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
