package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinomedia/kino/internal/catalog/domain"
)

func TestNewLocalID(t *testing.T) {
	id := domain.NewLocalID()

	assert.Equal(t, domain.ProvenanceLocal, id.Provenance)
	assert.NotEmpty(t, id.Value)
	assert.False(t, id.IsExternal())

	other := domain.NewLocalID()
	assert.NotEqual(t, id.Value, other.Value)
}

func TestExternalID_Serialization(t *testing.T) {
	id := domain.ExternalID("550")

	assert.True(t, id.IsExternal())
	assert.Equal(t, "ext_550", id.String())
	assert.Equal(t, "550", id.Value)
}

func TestParseRecordID(t *testing.T) {
	tests := []struct {
		name       string
		serialized string
		provenance domain.Provenance
		value      string
	}{
		{"external prefix", "ext_550", domain.ProvenanceExternal, "550"},
		{"local uuid", "8c9f2f6e-4dd1-4b39-9f5c-1a2b3c4d5e6f", domain.ProvenanceLocal, "8c9f2f6e-4dd1-4b39-9f5c-1a2b3c4d5e6f"},
		{"local with ext inside", "movie_ext_1", domain.ProvenanceLocal, "movie_ext_1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := domain.ParseRecordID(tt.serialized)

			assert.Equal(t, tt.provenance, id.Provenance)
			assert.Equal(t, tt.value, id.Value)
			assert.Equal(t, tt.serialized, id.String())
		})
	}
}

func TestRecordID_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(domain.ExternalID("603"))
	require.NoError(t, err)
	assert.Equal(t, `"ext_603"`, string(data))

	var id domain.RecordID
	require.NoError(t, json.Unmarshal(data, &id))
	assert.True(t, id.IsExternal())
	assert.Equal(t, "603", id.Value)
}
