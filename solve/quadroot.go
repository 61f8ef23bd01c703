// Package solve implements the continuous-time collision and
// separation solvers: given two shapes with linear position and
// resize velocities over a bounded duration, compute the earliest
// non-negative time at which they start or stop overlapping.
package solve

import "math"

// quadRootAscending finds the smallest non-negative root of
// a*t^2 + b*t + c == 0 using the numerically-stable form that avoids
// catastrophic cancellation between -b and sqrt(determinant): when b
// is non-negative we divide 2c by (-b - sqrt(det)) instead of the
// textbook (-b + sqrt(det)) / 2a, since that numerator and denominator
// share a sign and never nearly cancel.
//
// Returns ok=false if the determinant is non-positive (no real root,
// or a repeated root at a tangency that does not count as a crossing).
func quadRootAscending(a, b, c float64) (float64, bool) {
	det := b*b - 4*a*c
	if det <= 0 {
		return 0, false
	}
	root := math.Sqrt(det)
	if b >= 0 {
		return 2 * c / (-b - root), true
	}

	return (-b + root) / (2 * a), true
}
