package index

import (
	"github.com/blevesearch/bleve/v2"
	blevequery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/tripfinder/itinerary-search-service/internal/domain"
)

// Relevance boosts for optional clauses.
const (
	transportationBoost = 2.0
	nameBoost           = 1.5
)

// buildQuery translates criteria into a Bleve boolean query.
//
// Must clauses (membership):
//   - each non-empty tag dimension is a disjunction of exact terms
//   - party size becomes capacity ranges
//   - a date range must fall inside the availability window
//
// Should clauses (relevance only): activity tags with synonyms and location
// names over the analyzed text fields, and the transportation preference.
func buildQuery(criteria domain.SearchCriteria) blevequery.Query {
	must := make([]blevequery.Query, 0, 8)

	if criteria.HasLocations() {
		must = append(must, anyTerm(fieldLocations, criteria.Locations))
	}
	if criteria.HasActivities() {
		must = append(must, anyTerm(fieldActivities, criteria.Activities))
	}
	if criteria.HasLodging() {
		must = append(must, anyTerm(fieldLodging, criteria.Lodging))
	}

	must = append(must,
		atLeast(fieldCapacityAdults, criteria.Party.Adults),
		atLeast(fieldCapacityChildren, criteria.Party.Children),
		atLeast(fieldCapacityInfants, criteria.Party.Infants),
	)

	if criteria.DateRange != nil {
		arrival := float64(criteria.DateRange.Arrival.Unix())
		departure := float64(criteria.DateRange.Departure.Unix())
		must = append(must,
			numericRange(fieldAvailableFrom, nil, &arrival),
			numericRange(fieldAvailableTo, &departure, nil),
		)
	}

	boolQuery := bleve.NewBooleanQuery()
	boolQuery.AddMust(must...)

	var should []blevequery.Query
	for _, text := range freeText(criteria) {
		should = append(should, matchText(fieldName, text, nameBoost), matchText(fieldDescription, text, 1.0))
	}
	if criteria.Transportation != "" {
		tq := bleve.NewTermQuery(criteria.Transportation)
		tq.SetField(fieldTransportation)
		tq.SetBoost(transportationBoost)
		should = append(should, tq)
	}
	if len(should) > 0 {
		boolQuery.AddShould(should...)
	}

	return boolQuery
}

// freeText returns the phrases that steer relevance: activity synonyms and
// location names.
func freeText(criteria domain.SearchCriteria) []string {
	text := domain.ExpandActivities(criteria.Activities)
	return append(text, criteria.Locations...)
}

func anyTerm(field string, values []string) blevequery.Query {
	terms := make([]blevequery.Query, 0, len(values))
	for _, v := range values {
		tq := bleve.NewTermQuery(v)
		tq.SetField(field)
		terms = append(terms, tq)
	}
	return bleve.NewDisjunctionQuery(terms...)
}

func atLeast(field string, n int) blevequery.Query {
	min := float64(n)
	return numericRange(field, &min, nil)
}

func numericRange(field string, min, max *float64) blevequery.Query {
	inclusive := true
	q := bleve.NewNumericRangeInclusiveQuery(min, max, &inclusive, &inclusive)
	q.SetField(field)
	return q
}

func matchText(field, text string, boost float64) blevequery.Query {
	mq := bleve.NewMatchQuery(text)
	mq.SetField(field)
	mq.SetBoost(boost)
	return mq
}
