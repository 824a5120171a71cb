package systems

import "math"

// clamp clamps v between minVal and maxVal.
func clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps v to the [0, 1] range.
func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

// NormalizeAngle wraps an angle to [-Pi, Pi].
func NormalizeAngle(angle float64) float64 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// DistanceSq returns the squared distance between two points.
func DistanceSq(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}

// Distance returns the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Sqrt(DistanceSq(x1, y1, x2, y2))
}

// Bearing returns the absolute angle from (x1, y1) to (x2, y2).
func Bearing(x1, y1, x2, y2 float64) float64 {
	return math.Atan2(y2-y1, x2-x1)
}

// RelativeCos returns the cosine of the angle between a heading and the
// direction to a target. 1 means straight ahead, -1 straight behind.
func RelativeCos(heading, x1, y1, x2, y2 float64) float64 {
	return math.Cos(Bearing(x1, y1, x2, y2) - heading)
}
