// Package visualhash computes 64-bit difference hashes (dHash) of images.
//
// An image is reduced to 8-bit luminance, scaled with a linear tent filter to
// a 9x8 grid, and each row contributes eight bits: one per horizontally
// adjacent pair, set when the left cell is brighter than the right. Bits are
// emitted row by row, most significant first. Re-encoding, resizing and mild
// color shifts keep the hash within a few bits; different pictures land about
// half the bits apart. Zero means no image could be decoded.
package visualhash
