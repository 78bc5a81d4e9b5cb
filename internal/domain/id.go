package domain

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"
)

// ErrMalformedID is returned when a string is not a 0x-prefixed hex literal
var ErrMalformedID = errors.New("malformed bubble ID")

// ID names a Bubble.
//
// The upper 60 bits hold the creation time in milliseconds since the epoch,
// the lower 4 bits a random disambiguator, so IDs sort roughly by age.
type ID uint64

const disambiguatorBits = 4

// NewID creates an ID stamped with the current time
func NewID() ID {
	return IDAt(time.Now(), uint8(rand.IntN(1<<disambiguatorBits)))
}

// IDAt builds the ID for a given instant and disambiguator (only the low 4 bits are kept)
func IDAt(t time.Time, disambiguator uint8) ID {
	ms := uint64(t.UnixMilli())
	return ID(ms<<disambiguatorBits | uint64(disambiguator&0xF))
}

// ParseID decodes a literal such as "0x1A". The whole text must be the
// literal; callers taking user input trim it first.
func ParseID(text string) (ID, error) {
	if len(text) < 3 || text[0] != '0' || (text[1] != 'x' && text[1] != 'X') {
		return 0, fmt.Errorf("%w: %q", ErrMalformedID, text)
	}
	raw, err := strconv.ParseUint(text[2:], 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedID, text)
	}
	return ID(raw), nil
}

// MustParseID is ParseID for literals known to be valid
func MustParseID(text string) ID {
	id, err := ParseID(text)
	if err != nil {
		panic(err)
	}
	return id
}

// CreatedAt recovers the creation instant, truncated to the second
func (id ID) CreatedAt() time.Time {
	return time.Unix(int64((uint64(id)>>disambiguatorBits)/1000), 0)
}

// Disambiguator returns the random low bits
func (id ID) Disambiguator() uint8 {
	return uint8(uint64(id) & 0xF)
}

// String renders the ID the way the node encoding writes it
func (id ID) String() string {
	return fmt.Sprintf("0x%X", uint64(id))
}
