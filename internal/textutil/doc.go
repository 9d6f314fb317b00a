// Package textutil splits prose into case-folded tokens for SimHash voting.
//
// Tokens are separated by ASCII whitespace and the sentence punctuation
// . , ! ? only; every other rune, including apostrophes and hyphens, stays
// part of its token. Folding uses Unicode full case folding, so "Straße" and
// "STRASSE" produce the same token.
package textutil
