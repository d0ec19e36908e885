package domain

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// Provenance identifies where a catalog record originated.
type Provenance string

const (
	// ProvenanceLocal marks records authored through the local store.
	ProvenanceLocal Provenance = "local"
	// ProvenanceExternal marks records sourced from the remote provider.
	ProvenanceExternal Provenance = "external"
)

// externalIDPrefix is the serialized marker for externally-sourced
// record ids. The prefix is an interface-compatibility detail; the
// structured RecordID is the source of truth for provenance.
const externalIDPrefix = "ext_"

// RecordID is a provenance-tagged record identifier.
type RecordID struct {
	Provenance Provenance
	Value      string
}

// NewLocalID creates a unique id for a locally-authored record.
func NewLocalID() RecordID {
	return RecordID{Provenance: ProvenanceLocal, Value: uuid.NewString()}
}

// ExternalID creates an id for a record sourced from the provider.
func ExternalID(providerID string) RecordID {
	return RecordID{Provenance: ProvenanceExternal, Value: providerID}
}

// ParseRecordID parses the serialized form of a record id.
func ParseRecordID(s string) RecordID {
	if v, ok := strings.CutPrefix(s, externalIDPrefix); ok {
		return RecordID{Provenance: ProvenanceExternal, Value: v}
	}
	return RecordID{Provenance: ProvenanceLocal, Value: s}
}

// IsExternal reports whether the record is provider-sourced and
// therefore read-only.
func (id RecordID) IsExternal() bool {
	return id.Provenance == ProvenanceExternal
}

// IsZero reports whether the id is unset.
func (id RecordID) IsZero() bool {
	return id.Value == ""
}

// String returns the serialized form, prefixing external ids.
func (id RecordID) String() string {
	if id.Provenance == ProvenanceExternal {
		return externalIDPrefix + id.Value
	}
	return id.Value
}

// MarshalJSON serializes the id as its prefixed string form.
func (id RecordID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

// UnmarshalJSON parses the prefixed string form.
func (id *RecordID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*id = ParseRecordID(s)
	return nil
}
