// Command starkcore is a small end-to-end driver exercising the library: it
// builds a Goldilocks codeword, commits it with a Merkle tree, accumulates
// the commitment into a Merkle mountain range, and persists the result as a
// CBOR proof bundle. It is host-side plumbing around the algebraic core; it
// owns no algebraic semantics of its own.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/bircni/twenty-first/field"
	"github.com/bircni/twenty-first/fft"
	"github.com/bircni/twenty-first/internal/obslog"
	"github.com/bircni/twenty-first/internal/proofcodec"
	"github.com/bircni/twenty-first/internal/runconfig"
	"github.com/bircni/twenty-first/merkletree"
	"github.com/bircni/twenty-first/mmr"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML run config (optional)")
	seed := flag.Uint64("seed", 1, "seed for the codeword's polynomial coefficients")
	runID := flag.String("run-id", "", "UUID to stamp the proof bundle with (random if omitted)")
	flag.Parse()

	if err := run(*configPath, *seed, *runID); err != nil {
		fmt.Fprintln(os.Stderr, "starkcore:", err)
		os.Exit(1)
	}
}

// run executes one end-to-end proving pass. runIDStr, if non-empty, must
// parse as a UUID and is stamped onto the output bundle verbatim; this lets
// repeated runs with the same seed and run-id produce byte-identical CBOR,
// which a random uuid.New() per run would otherwise always break.
func run(configPath string, seed uint64, runIDStr string) error {
	cfg := runconfig.Default()
	if configPath != "" {
		loaded, err := runconfig.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if err := obslog.Init(cfg.LogLevel); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	log := obslog.Sugar

	codeword, err := buildCodeword(cfg.CodewordLength, seed)
	if err != nil {
		return fmt.Errorf("building codeword: %w", err)
	}
	log.Infow("codeword built", "length", len(codeword))

	leafs := make([][]field.Element, len(codeword))
	for i, v := range codeword {
		leafs[i] = []field.Element{v}
	}
	tree, err := merkletree.FromValues(leafs)
	if err != nil {
		return fmt.Errorf("committing codeword: %w", err)
	}
	log.Infow("codeword committed", "root", tree.Root())

	multiProof, err := tree.NewMultiProof(cfg.QueryIndices)
	if err != nil {
		return fmt.Errorf("building multi-proof: %w", err)
	}

	acc := mmr.Empty()
	acc.Append(tree.Root())
	log.Infow("accumulated into mmr", "num_leafs", acc.NumLeafs, "num_peaks", len(acc.Peaks))

	runID := uuid.New()
	if runIDStr != "" {
		parsed, err := uuid.Parse(runIDStr)
		if err != nil {
			return fmt.Errorf("parsing run-id: %w", err)
		}
		runID = parsed
	}

	bundle := proofcodec.ProofBundle{
		SchemaVersion: 1,
		RunID:         runID,
		Root:          tree.Root(),
		MultiProof:    *multiProof,
		Accumulator:   acc,
	}

	codec, err := proofcodec.NewCBORCodec()
	if err != nil {
		return fmt.Errorf("building codec: %w", err)
	}
	data, err := codec.EncodeBundle(bundle)
	if err != nil {
		return fmt.Errorf("encoding bundle: %w", err)
	}

	if err := os.WriteFile(cfg.OutputPath, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.OutputPath, err)
	}
	log.Infow("proof bundle written", "path", cfg.OutputPath, "run_id", bundle.RunID, "bytes", len(data))

	return nil
}

// buildCodeword evaluates a fixed low-degree polynomial, seeded by seed,
// over the order-n subgroup via NTT, producing n field elements to commit.
func buildCodeword(n int, seed uint64) ([]field.Element, error) {
	if n <= 0 || n&(n-1) != 0 {
		return nil, fmt.Errorf("codeword length %d must be a positive power of two", n)
	}

	logN := 0
	for (1 << logN) < n {
		logN++
	}

	omega, err := field.PrimitiveRootOfUnity(uint64(n))
	if err != nil {
		return nil, err
	}

	coefficients := make([]field.Element, n)
	for i := range coefficients {
		coefficients[i] = field.New(seed + uint64(i)*uint64(i) + 1)
		if i >= 4 {
			coefficients[i] = field.Zero
		}
	}

	if err := fft.NTT(coefficients, omega); err != nil {
		return nil, err
	}
	return coefficients, nil
}
