package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSeedFile(t *testing.T) {
	seed, err := LoadSeedFile(seedPath)
	require.NoError(t, err)

	assert.Len(t, seed.Catalog.Locations, 4)
	assert.Len(t, seed.Catalog.Activities, 6)
	assert.Len(t, seed.Catalog.Lodging, 4)
	assert.Len(t, seed.Catalog.Transportation, 2)
	require.Len(t, seed.Itineraries, 3)

	// Sorted by id.
	assert.Equal(t, "it-denali-explorer", seed.Itineraries[0].ID)
	require.NotNil(t, seed.Itineraries[0].Availability)
	assert.Nil(t, seed.Itineraries[1].Availability)
}

func TestLoadSeedFile_Missing(t *testing.T) {
	_, err := LoadSeedFile("does-not-exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading seed file")
}

func TestParseSeed(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
		check   func(t *testing.T, seed *Seed)
	}{
		{
			name: "defaults capacity to one adult",
			yaml: `
itineraries:
  - id: it-1
    name: Minimal
    price: 10
    duration_days: 1
`,
			check: func(t *testing.T, seed *Seed) {
				assert.Equal(t, 1, seed.Itineraries[0].Capacity.Adults)
			},
		},
		{
			name: "open-ended availability",
			yaml: `
itineraries:
  - id: it-1
    name: From June
    available_from: "2026-06-01"
`,
			check: func(t *testing.T, seed *Seed) {
				require.NotNil(t, seed.Itineraries[0].Availability)
				assert.Equal(t, openEnd, seed.Itineraries[0].Availability.Departure)
			},
		},
		{
			name:    "missing id",
			yaml:    "itineraries:\n  - name: Nameless\n",
			wantErr: "has no id",
		},
		{
			name:    "duplicate id",
			yaml:    "itineraries:\n  - id: a\n  - id: a\n",
			wantErr: "duplicate itinerary id",
		},
		{
			name: "inverted availability",
			yaml: `
itineraries:
  - id: it-1
    available_from: "2026-09-01"
    available_to: "2026-06-01"
`,
			wantErr: "available_from must be before available_to",
		},
		{
			name: "bad date",
			yaml: `
itineraries:
  - id: it-1
    available_from: "next tuesday"
`,
			wantErr: "available_from",
		},
		{
			name:    "invalid yaml",
			yaml:    "itineraries: [",
			wantErr: "yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed, err := ParseSeed([]byte(tt.yaml))

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, seed)
		})
	}
}
