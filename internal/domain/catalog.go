package domain

// FlexibleLocation is used for generated itineraries when the traveler did
// not restrict locations.
const FlexibleLocation = "flexible"

// CatalogActivity is a bookable activity building block.
type CatalogActivity struct {
	ID            string   `json:"id" yaml:"id"`
	Tag           string   `json:"tag" yaml:"tag"`
	Name          string   `json:"name" yaml:"name"`
	Location      string   `json:"location" yaml:"location"`
	Price         float64  `json:"price" yaml:"price"`
	DurationHours float64  `json:"duration_hours" yaml:"duration_hours"`
	MediaRefs     []string `json:"media_refs,omitempty" yaml:"media_refs"`
}

// CatalogLodging is a lodging building block, priced per night.
type CatalogLodging struct {
	ID           string  `json:"id" yaml:"id"`
	Tag          string  `json:"tag" yaml:"tag"`
	Name         string  `json:"name" yaml:"name"`
	Location     string  `json:"location" yaml:"location"`
	NightlyPrice float64 `json:"nightly_price" yaml:"nightly_price"`
	Capacity     Party   `json:"capacity" yaml:"capacity"`
}

// CatalogTransportation is a transportation option, priced per person.
type CatalogTransportation struct {
	ID    string  `json:"id" yaml:"id"`
	Tag   string  `json:"tag" yaml:"tag"`
	Name  string  `json:"name" yaml:"name"`
	Price float64 `json:"price" yaml:"price"`
}

// CatalogSnapshot is a point-in-time read of all catalog primitives.
// Generation works on exactly one snapshot per request.
type CatalogSnapshot struct {
	Locations      []string
	Activities     []CatalogActivity
	Lodging        []CatalogLodging
	Transportation []CatalogTransportation
}

// IsEmpty reports whether the snapshot has no building blocks at all.
func (s CatalogSnapshot) IsEmpty() bool {
	return len(s.Locations) == 0 && len(s.Activities) == 0 &&
		len(s.Lodging) == 0 && len(s.Transportation) == 0
}
