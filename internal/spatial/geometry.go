package spatial

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// PathLength calculates the total length of a path (sequence of points) in meters
func PathLength(points []orb.Point) float64 {
	if len(points) < 2 {
		return 0
	}

	var totalDist float64
	for i := 1; i < len(points); i++ {
		totalDist += PointDistance(points[i-1], points[i])
	}

	return totalDist
}

// ChunkLineString splits a line into consecutive pieces of at most maxVertices
// points. Each piece starts at the last vertex of the previous one so the
// rendered route has no gaps. maxVertices below 2 disables chunking.
func ChunkLineString(ls orb.LineString, maxVertices int) []orb.LineString {
	if len(ls) == 0 {
		return nil
	}
	if maxVertices < 2 || len(ls) <= maxVertices {
		return []orb.LineString{ls}
	}

	var chunks []orb.LineString
	for start := 0; start < len(ls)-1; start += maxVertices - 1 {
		end := start + maxVertices
		if end > len(ls) {
			end = len(ls)
		}
		chunks = append(chunks, ls[start:end])
	}
	return chunks
}

// SimplifyPath simplifies a path using the Ramer-Douglas-Peucker algorithm.
// tolerance is planar, in degrees; zero or less returns the input unchanged.
func SimplifyPath(ls orb.LineString, tolerance float64) orb.LineString {
	if tolerance <= 0 || len(ls) < 3 {
		return ls
	}
	return simplify.DouglasPeucker(tolerance).LineString(ls.Clone())
}
