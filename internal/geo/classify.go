package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/surface-labs/surface-layers/pkg/overpass"
)

// Surface classification labels.
const (
	ClassSealed   = "sealed"
	ClassUnsealed = "unsealed"
)

// sealedRule is a single predicate over an element's tags. Rules are
// evaluated in order with short-circuit any-match semantics.
type sealedRule struct {
	name  string
	match func(tags map[string]string) bool
}

// sealedRules classify an element as sealed (impermeable/built) surface.
// The first rule matches on key presence alone: any amenity, building,
// highway, railway, or aeroway value counts. The landuse and leisure rules
// match specific values only; the remaining values of those keys fall
// through to unsealed.
var sealedRules = []sealedRule{
	{name: "sealed-key", match: hasAnyKey("building", "highway", "railway", "aeroway", "amenity")},
	{name: "sealed-landuse", match: hasValue("landuse", "industrial", "commercial", "retail", "construction", "railway")},
	{name: "sealed-leisure", match: hasValue("leisure", "pitch", "track", "sports_centre")},
}

func hasAnyKey(keys ...string) func(map[string]string) bool {
	return func(tags map[string]string) bool {
		for _, k := range keys {
			if _, ok := tags[k]; ok {
				return true
			}
		}
		return false
	}
}

func hasValue(key string, values ...string) func(map[string]string) bool {
	return func(tags map[string]string) bool {
		v, ok := tags[key]
		if !ok {
			return false
		}
		for _, want := range values {
			if v == want {
				return true
			}
		}
		return false
	}
}

// ClassifyTags returns the surface label for a tag mapping. It is a total,
// deterministic function of the tags.
func ClassifyTags(tags map[string]string) string {
	for _, r := range sealedRules {
		if r.match(tags) {
			return ClassSealed
		}
	}
	return ClassUnsealed
}

// Classify converts Overpass way elements into closed polygon features and
// partitions them into sealed and unsealed collections. Elements that are not
// ways, lack geometry, or have fewer than three vertices are dropped. Every
// kept element lands in exactly one collection, in source order.
func Classify(resp *overpass.Response) (sealed, unsealed *geojson.FeatureCollection) {
	sealed = geojson.NewFeatureCollection()
	unsealed = geojson.NewFeatureCollection()
	if resp == nil {
		return sealed, unsealed
	}

	for _, elem := range resp.Elements {
		if !elem.IsWay() {
			continue
		}

		ring := make(orb.Ring, 0, len(elem.Geometry)+1)
		for _, node := range elem.Geometry {
			ring = append(ring, orb.Point{node.Lon, node.Lat})
		}
		if len(ring) < 3 {
			continue
		}
		if ring[0] != ring[len(ring)-1] {
			ring = append(ring, ring[0])
		}

		feature := geojson.NewFeature(orb.Polygon{ring})
		feature.Properties = tagProperties(elem.Tags)

		if ClassifyTags(elem.Tags) == ClassSealed {
			sealed.Append(feature)
		} else {
			unsealed.Append(feature)
		}
	}

	return sealed, unsealed
}

func tagProperties(tags map[string]string) geojson.Properties {
	props := make(geojson.Properties, len(tags))
	for k, v := range tags {
		props[k] = v
	}
	return props
}
