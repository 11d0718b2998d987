// Package overpass provides a client for the Overpass OpenStreetMap query API.
package overpass

// Response is the JSON document returned by an Overpass interpreter.
type Response struct {
	Elements []Element `json:"elements"`
}

// Element is a single OSM element. Only ways carrying geometry are of
// interest here; other element types pass through untouched.
type Element struct {
	ID       int64             `json:"id"`
	Type     string            `json:"type"`
	Tags     map[string]string `json:"tags,omitempty"`
	Geometry []Node            `json:"geometry,omitempty"`
}

// Node is an ordered vertex of a way's geometry.
type Node struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// IsWay reports whether the element is a way with usable geometry.
func (e Element) IsWay() bool {
	return e.Type == "way" && len(e.Geometry) > 0
}
