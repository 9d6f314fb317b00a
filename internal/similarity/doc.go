// Package similarity classifies how close two 64-bit perceptual or semantic
// hashes are.
//
// Closeness is the Hamming distance between the hashes (the number of differing
// bits). Two thresholds split the distance range into four verdicts:
//
//	distance == 0            Exact
//	0 < distance <= Low      Duplicate
//	Low < distance <= High   Similar
//	distance > High          Different
//
// The defaults (Low=3, High=10) tolerate minor re-encoding or edits while
// rejecting unrelated content. Classification is pure and symmetric, so it can
// be called from any goroutine without coordination.
package similarity
