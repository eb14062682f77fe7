package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// DatasetFingerprint hashes a feature matrix deterministically so two
// detection runs can prove they saw the same input. Rows are hashed in
// order; feature keys are sorted so map iteration order cannot leak in.
type DatasetFingerprint Hash

func (f DatasetFingerprint) String() string { return Hash(f).String() }

// ComputeDatasetFingerprint fingerprints rows of (feature map, outcome).
func ComputeDatasetFingerprint(rows []map[FeatureKey]float64, outcomes []float64) DatasetFingerprint {
	hasher := sha256.New()
	buf := make([]byte, 8)

	writeFloat := func(v float64) {
		binary.BigEndian.PutUint64(buf, math.Float64bits(v))
		hasher.Write(buf)
	}

	for i, row := range rows {
		keys := make([]string, 0, len(row))
		for k := range row {
			keys = append(keys, string(k))
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprint(hasher, k)
			writeFloat(row[FeatureKey(k)])
		}
		if i < len(outcomes) {
			writeFloat(outcomes[i])
		}
	}

	return DatasetFingerprint(hex.EncodeToString(hasher.Sum(nil)))
}
