package index

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/tripfinder/itinerary-search-service/internal/domain"
)

// Indexed field names.
const (
	fieldName             = "name"
	fieldDescription      = "description"
	fieldLocations        = "locations"
	fieldActivities       = "activities"
	fieldLodging          = "lodging"
	fieldTransportation   = "transportation"
	fieldCapacityAdults   = "capacity_adults"
	fieldCapacityChildren = "capacity_children"
	fieldCapacityInfants  = "capacity_infants"
	fieldAvailableFrom    = "available_from"
	fieldAvailableTo      = "available_to"
	fieldPayload          = "payload"
)

// Open availability bounds, in unix seconds.
const (
	openAvailableFrom = 0
	openAvailableTo   = 1 << 45
)

// itineraryDoc is the document structure indexed by Bleve.
type itineraryDoc struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Locations        []string `json:"locations"`
	Activities       []string `json:"activities"`
	Lodging          []string `json:"lodging"`
	Transportation   string   `json:"transportation"`
	CapacityAdults   float64  `json:"capacity_adults"`
	CapacityChildren float64  `json:"capacity_children"`
	CapacityInfants  float64  `json:"capacity_infants"`
	AvailableFrom    float64  `json:"available_from"`
	AvailableTo      float64  `json:"available_to"`

	// Payload is the stored itinerary, returned with every hit
	Payload string `json:"payload"`
}

// buildIndexMapping creates the Bleve index mapping: analyzed text for
// relevance, keywords and numbers for filters, and one stored payload.
func buildIndexMapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	docMapping.Dynamic = false

	textField := bleve.NewTextFieldMapping()
	textField.Analyzer = "en"
	textField.Store = false
	docMapping.AddFieldMappingsAt(fieldName, textField)
	docMapping.AddFieldMappingsAt(fieldDescription, textField)

	keywordField := bleve.NewKeywordFieldMapping()
	keywordField.Store = false
	docMapping.AddFieldMappingsAt(fieldLocations, keywordField)
	docMapping.AddFieldMappingsAt(fieldActivities, keywordField)
	docMapping.AddFieldMappingsAt(fieldLodging, keywordField)
	docMapping.AddFieldMappingsAt(fieldTransportation, keywordField)

	numericField := bleve.NewNumericFieldMapping()
	numericField.Store = false
	docMapping.AddFieldMappingsAt(fieldCapacityAdults, numericField)
	docMapping.AddFieldMappingsAt(fieldCapacityChildren, numericField)
	docMapping.AddFieldMappingsAt(fieldCapacityInfants, numericField)
	docMapping.AddFieldMappingsAt(fieldAvailableFrom, numericField)
	docMapping.AddFieldMappingsAt(fieldAvailableTo, numericField)

	payloadField := bleve.NewTextFieldMapping()
	payloadField.Analyzer = "keyword"
	payloadField.Index = false
	payloadField.Store = true
	payloadField.IncludeInAll = false
	payloadField.IncludeTermVectors = false
	docMapping.AddFieldMappingsAt(fieldPayload, payloadField)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// itineraryToDoc converts an itinerary to the indexed document format.
func itineraryToDoc(it domain.Itinerary) (itineraryDoc, error) {
	it = it.Canonical()

	payload, err := json.Marshal(it)
	if err != nil {
		return itineraryDoc{}, fmt.Errorf("encode itinerary %s: %w", it.ID, err)
	}

	from, to := float64(openAvailableFrom), float64(openAvailableTo)
	if it.Availability != nil {
		from = float64(it.Availability.Arrival.Unix())
		to = float64(it.Availability.Departure.Unix())
	}

	return itineraryDoc{
		Name:             it.Name,
		Description:      strings.TrimSpace(it.Description + " " + strings.Join(it.Activities, " ")),
		Locations:        it.Locations,
		Activities:       it.Activities,
		Lodging:          it.Lodging,
		Transportation:   it.Transportation,
		CapacityAdults:   float64(it.Capacity.Adults),
		CapacityChildren: float64(it.Capacity.Children),
		CapacityInfants:  float64(it.Capacity.Infants),
		AvailableFrom:    from,
		AvailableTo:      to,
		Payload:          string(payload),
	}, nil
}

// docToItinerary decodes the stored payload of a hit.
func docToItinerary(id string, fields map[string]interface{}) (domain.Itinerary, error) {
	raw, ok := fields[fieldPayload].(string)
	if !ok {
		return domain.Itinerary{}, fmt.Errorf("hit %s has no stored payload", id)
	}

	var it domain.Itinerary
	if err := json.Unmarshal([]byte(raw), &it); err != nil {
		return domain.Itinerary{}, fmt.Errorf("decode hit %s: %w", id, err)
	}
	if it.ID == "" {
		it.ID = id
	}
	return it, nil
}
