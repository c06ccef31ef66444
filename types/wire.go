// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import "github.com/luxfi/election/codec"

// EncodeRawSolution and its DecodeRawSolution counterpart, and the three
// pairs below it, are the wire boundary a host uses to persist or gossip
// these four types (queue storage, off-chain worker candidate handoff,
// phase snapshots taken for diagnostics). Encode-then-decode must be the
// identity for each.

func EncodeRawSolution(v RawSolution) ([]byte, error) {
	return codec.Codec.Marshal(codec.CurrentVersion, v)
}

func DecodeRawSolution(data []byte) (RawSolution, error) {
	var v RawSolution
	_, err := codec.Codec.Unmarshal(data, &v)
	return v, err
}

func EncodeReadySolution(v ReadySolution) ([]byte, error) {
	return codec.Codec.Marshal(codec.CurrentVersion, v)
}

func DecodeReadySolution(data []byte) (ReadySolution, error) {
	var v ReadySolution
	_, err := codec.Codec.Unmarshal(data, &v)
	return v, err
}

func EncodePhase(v Phase) ([]byte, error) {
	return codec.Codec.Marshal(codec.CurrentVersion, v)
}

func DecodePhase(data []byte) (Phase, error) {
	var v Phase
	_, err := codec.Codec.Unmarshal(data, &v)
	return v, err
}

func EncodeSignedSubmission(v SignedSubmission) ([]byte, error) {
	return codec.Codec.Marshal(codec.CurrentVersion, v)
}

func DecodeSignedSubmission(data []byte) (SignedSubmission, error) {
	var v SignedSubmission
	_, err := codec.Codec.Unmarshal(data, &v)
	return v, err
}
