package services

import "strings"

// Point values per material type. This mirrors the material recognizer's
// output so that offline scans replayed later resolve to the same award as
// live scans.
var materialPoints = map[string]int{
	"plastic":  5,
	"glass":    10,
	"aluminum": 7,
	"paper":    3,
}

// MaterialPoints resolves a material type to its point value.
func MaterialPoints(materialType string) (int, bool) {
	points, ok := materialPoints[strings.ToLower(strings.TrimSpace(materialType))]
	return points, ok
}
