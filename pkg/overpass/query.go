package overpass

import (
	"fmt"
	"strings"
)

// Query limits sent to the interpreter: a 90 second server-side timeout and a
// 512 MiB response cap.
const (
	queryTimeoutSecs = 90
	queryMaxSize     = 536870912
)

// wayFilters are the feature-category selectors combined into a single query.
// Fetching every category in one round trip trades a larger response for a
// single interpreter dispatch.
var wayFilters = []string{
	`way[building](%s);`,
	`way["amenity"="parking"](%s);`,
	`way["landuse"~"^(industrial|commercial|retail|construction|railway)$"](%s);`,
	`way["highway"](%s);`,
	`way["railway"](%s);`,
	`way["aeroway"~"^(runway|taxiway|apron|helipad)$"](%s);`,
	`way["leisure"~"^(pitch|track|sports_centre)$"](%s);`,
	`way["natural"~"^(wood|grassland|scrub|wetland|beach|sand)$"](%s);`,
	`way["landuse"~"^(forest|farmland|meadow|grass|orchard|vineyard|allotments|cemetery|recreation_ground)$"](%s);`,
	`way["leisure"~"^(park|garden|golf_course|nature_reserve)$"](%s);`,
}

// BuildQuery renders the combined Overpass QL query for all surface-layer
// feature categories within the bounding box. Coordinates follow the Overpass
// bbox convention: south, west, north, east.
func BuildQuery(south, west, north, east float64) string {
	bbox := fmt.Sprintf("%v,%v,%v,%v", south, west, north, east)

	var b strings.Builder
	fmt.Fprintf(&b, "[out:json][timeout:%d][maxsize:%d];\n(\n", queryTimeoutSecs, queryMaxSize)
	for _, f := range wayFilters {
		fmt.Fprintf(&b, "  "+f+"\n", bbox)
	}
	b.WriteString(");\nout geom;\n")
	return b.String()
}
