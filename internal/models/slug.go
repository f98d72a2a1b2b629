package models

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"strings"
)

// DefaultMapPool is used when match creation does not supply a custom pool.
var DefaultMapPool = []string{
	"AWOKEN",
	"BLOOD COVENANT",
	"BLOOD RUN",
	"CORRUPTED KEEP",
	"DEEP EMBRACE",
	"MOLTEN FALLS",
	"RUINS OF SARNATH",
	"VALE OF PNATH",
	"VESTIBULE OF EXILE",
	"INSOMNIA",
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slug derives the shareable match identifier from the two team names:
// lowercase, runs of non-alphanumeric characters collapsed to a single
// dash, joined with "-vs-".
func Slug(teamA, teamB string) string {
	return slugPart(teamA) + "-vs-" + slugPart(teamB)
}

func slugPart(name string) string {
	s := nonAlphanumeric.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

// Pairing is the order-insensitive identity of a matchup: the normalized
// team names sorted before joining, so "Alpha vs Bravo" and "Bravo vs
// Alpha" produce the same value. A unique constraint on it keeps a racing
// swapped-order creation from producing a second match.
func Pairing(teamA, teamB string) string {
	a, b := slugPart(teamA), slugPart(teamB)
	if b < a {
		a, b = b, a
	}
	return a + "-vs-" + b
}

const tokenBytes = 12

// NewToken returns an unguessable 24-character hex capability token.
func NewToken() string {
	var b [tokenBytes]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}
