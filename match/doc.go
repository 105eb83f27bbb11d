// Package match finds the verbatim text segments two documents share.
//
// Both documents are normalized (line breaks become spaces, runes are
// lowercased), then one of two matching strategies collects candidate
// segments of at least a minimum length: a Rabin-Karp style hashing matcher
// or a Knuth-Morris-Pratt automaton matcher. A shared resolver keeps the
// longest non-overlapping candidates and the scorer turns the matched
// character coverage into a similarity percentage.
//
// All offsets reported in a Result are rune offsets into the normalized
// texts, which are returned alongside the matches.
package match
