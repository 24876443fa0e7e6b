package storage

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/rpgo/nestegg/internal/domain"
)

func encodeInputs(in domain.Inputs) ([]byte, error) {
	return json.Marshal(in)
}

// decodeInputs reads a stored record. Fields missing from the document keep
// their default values; an unknown frequency counts as corrupt data.
func decodeInputs(data []byte) (domain.Inputs, error) {
	in := domain.DefaultInputs()
	if err := json.Unmarshal(data, &in); err != nil {
		return domain.Inputs{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if in.ContributionFrequency == "" {
		in.ContributionFrequency = domain.Monthly
	}
	if !in.ContributionFrequency.Valid() {
		return domain.Inputs{}, fmt.Errorf("%w: contribution frequency %q", ErrCorrupt, in.ContributionFrequency)
	}
	return in, nil
}

// isEmptySlot treats a missing or blank value as an empty slot.
func isEmptySlot(data []byte) bool {
	return len(bytes.TrimSpace(data)) == 0
}
