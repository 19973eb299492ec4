package domain

import "time"

// IndexStatus summarizes how the search index answered.
type IndexStatus string

// Index outcomes reported in search metadata.
const (
	IndexStatusOK          IndexStatus = "ok"
	IndexStatusEmpty       IndexStatus = "empty"
	IndexStatusUnavailable IndexStatus = "unavailable"
	IndexStatusMalformed   IndexStatus = "malformed"
)

// SearchResponse is the ranked result of an itinerary search.
type SearchResponse struct {
	// SearchID identifies this search in the search log
	SearchID string `json:"search_id"`

	// Criteria is the normalized criteria the search ran with
	Criteria SearchCriteria `json:"criteria"`

	// Metadata describes how the result was assembled
	Metadata SearchMetadata `json:"metadata"`

	// Itineraries are ordered best first; generated candidates always come last
	Itineraries []Candidate `json:"itineraries"`
}

// SearchMetadata contains information about the search execution.
type SearchMetadata struct {
	TotalResults   int `json:"total_results"`
	IndexedCount   int `json:"indexed_count"`
	StoredCount    int `json:"stored_count"`
	GeneratedCount int `json:"generated_count"`

	// IndexStatus is the outcome of the last index attempt
	IndexStatus IndexStatus `json:"index_status"`

	// IndexAttempts counts index calls including retries
	IndexAttempts int `json:"index_attempts"`

	// FallbackUsed is true when the structured store was consulted
	FallbackUsed bool `json:"fallback_used"`

	// GenerationExhausted is true when the catalog could not fill the minimum
	GenerationExhausted bool `json:"generation_exhausted"`

	// CatalogUnavailable is true when generation was needed but the catalog
	// snapshot could not be read
	CatalogUnavailable bool `json:"catalog_unavailable"`

	SearchTimeMs int64 `json:"search_time_ms"`
}

// NewSearchResponse creates a SearchResponse and fills the per-origin counts.
func NewSearchResponse(searchID string, criteria SearchCriteria, itineraries []Candidate, metadata SearchMetadata) SearchResponse {
	if itineraries == nil {
		itineraries = []Candidate{}
	}

	metadata.TotalResults = len(itineraries)
	metadata.IndexedCount, metadata.StoredCount, metadata.GeneratedCount = 0, 0, 0
	for _, c := range itineraries {
		switch c.Origin {
		case OriginIndexed:
			metadata.IndexedCount++
		case OriginStored:
			metadata.StoredCount++
		case OriginGenerated:
			metadata.GeneratedCount++
		}
	}

	return SearchResponse{
		SearchID:    searchID,
		Criteria:    criteria,
		Metadata:    metadata,
		Itineraries: itineraries,
	}
}

// SearchRecord is the persisted summary of one completed search.
type SearchRecord struct {
	ID                  string         `msgpack:"id" json:"id"`
	Criteria            SearchCriteria `msgpack:"criteria" json:"criteria"`
	ResultIDs           []string       `msgpack:"result_ids" json:"result_ids"`
	IndexedCount        int            `msgpack:"indexed_count" json:"indexed_count"`
	StoredCount         int            `msgpack:"stored_count" json:"stored_count"`
	GeneratedCount      int            `msgpack:"generated_count" json:"generated_count"`
	IndexStatus         IndexStatus    `msgpack:"index_status" json:"index_status"`
	FallbackUsed        bool           `msgpack:"fallback_used" json:"fallback_used"`
	GenerationExhausted bool           `msgpack:"generation_exhausted" json:"generation_exhausted"`
	DurationMs          int64          `msgpack:"duration_ms" json:"duration_ms"`
	CreatedAt           time.Time      `msgpack:"created_at" json:"created_at"`
}

// NewSearchRecord summarizes a response for the search log.
func NewSearchRecord(resp *SearchResponse, at time.Time) SearchRecord {
	ids := make([]string, len(resp.Itineraries))
	for i, c := range resp.Itineraries {
		ids[i] = c.ID
	}

	return SearchRecord{
		ID:                  resp.SearchID,
		Criteria:            resp.Criteria,
		ResultIDs:           ids,
		IndexedCount:        resp.Metadata.IndexedCount,
		StoredCount:         resp.Metadata.StoredCount,
		GeneratedCount:      resp.Metadata.GeneratedCount,
		IndexStatus:         resp.Metadata.IndexStatus,
		FallbackUsed:        resp.Metadata.FallbackUsed,
		GenerationExhausted: resp.Metadata.GenerationExhausted,
		DurationMs:          resp.Metadata.SearchTimeMs,
		CreatedAt:           at.UTC(),
	}
}
