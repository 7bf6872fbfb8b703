package models

import (
	"math/rand"
	"strconv"
	"time"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewNoteID builds a locally-unique note id from the base-36 encoded
// millisecond timestamp plus three random base-36 characters. This is a
// probabilistic scheme: a handful of devices creating notes in the same
// millisecond could collide, which is accepted rather than eliminated.
func NewNoteID(now time.Time) string {
	buf := make([]byte, 0, 16)
	buf = strconv.AppendInt(buf, now.UnixMilli(), 36)
	for i := 0; i < 3; i++ {
		buf = append(buf, base36[rand.Intn(len(base36))])
	}
	return string(buf)
}

// NewVerToken builds a version token from the millisecond timestamp.
// Tokens from the same clock are monotonically increasing, which is all
// the sync protocol needs from them.
func NewVerToken(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 36)
}
