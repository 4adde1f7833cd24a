// Package proofcodec defines the CBOR wire format the CLI driver persists:
// a host-facing envelope bundling a Merkle root, a multi-proof, and an MMR
// accumulator snapshot. It wraps a matched encMode/decMode pair built from
// explicit, canonical options, so a given ProofBundle always serializes to
// the same bytes.
//
// This format sits entirely outside the algebraic core: none of field,
// fft, polynomial, tip5, merkletree, or mmr import this package.
package proofcodec

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/bircni/twenty-first/merkletree"
	"github.com/bircni/twenty-first/mmr"
	"github.com/bircni/twenty-first/tip5"
)

// ProofBundle is the persisted output of a single run of cmd/starkcore: the
// commitment to a codeword plus the long-term MMR accumulator it was folded
// into.
type ProofBundle struct {
	SchemaVersion int
	RunID         uuid.UUID
	Root          tip5.Digest
	MultiProof    merkletree.MultiProof
	Accumulator   mmr.Accumulator
}

// CBORCodec wraps a matched encode/decode mode pair built with canonical,
// deterministic options.
type CBORCodec struct {
	encMode cbor.EncMode
	decMode cbor.DecMode
}

// NewCBORCodec builds the codec used throughout this package.
func NewCBORCodec() (CBORCodec, error) {
	encOpts := cbor.CanonicalEncOptions()
	encMode, err := encOpts.EncMode()
	if err != nil {
		return CBORCodec{}, fmt.Errorf("proofcodec: building encode mode: %w", err)
	}

	decOpts := cbor.DecOptions{}
	decMode, err := decOpts.DecMode()
	if err != nil {
		return CBORCodec{}, fmt.Errorf("proofcodec: building decode mode: %w", err)
	}

	return CBORCodec{encMode: encMode, decMode: decMode}, nil
}

// EncodeBundle serializes a ProofBundle to canonical CBOR.
func (c CBORCodec) EncodeBundle(bundle ProofBundle) ([]byte, error) {
	data, err := c.encMode.Marshal(bundle)
	if err != nil {
		return nil, fmt.Errorf("proofcodec: encoding bundle: %w", err)
	}
	return data, nil
}

// DecodeBundle deserializes a ProofBundle from CBOR produced by EncodeBundle.
func (c CBORCodec) DecodeBundle(data []byte) (ProofBundle, error) {
	var bundle ProofBundle
	if err := c.decMode.Unmarshal(data, &bundle); err != nil {
		return ProofBundle{}, fmt.Errorf("proofcodec: decoding bundle: %w", err)
	}
	return bundle, nil
}
