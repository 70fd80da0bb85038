package logger

import "regexp"

var uuidSegment = regexp.MustCompile(`(?i)/[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

// SanitizePath collapses UUID path segments so request logs group by route
// instead of by entity.
func SanitizePath(path string) string {
	return uuidSegment.ReplaceAllString(path, "/:id")
}
