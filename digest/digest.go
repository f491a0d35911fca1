/*
Package digest computes WS-Security username-token proof-of-possession
credentials.

The counterpart service validates the password digest profile of
WS-Security 1.0: a SHA-1 nonce derived from caller seed material, and
a password digest of the form

	Base64(SHA-1(nonce || created || SHA-1(password)))

SHA-1 is a fixed protocol contract here, not a configurable choice.
*/
package digest

import (
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"time"
)

// NonceSize is the wire size of a nonce in bytes
const NonceSize = 16

// Nonce derives a nonce from seed material and the creation timestamp.
// The value is the first NonceSize bytes of SHA-1(seed || created),
// collision-resistant per (seed, created) pair.
func Nonce(seed []byte, created string) []byte {
	h := sha1.New()
	h.Write(seed)
	h.Write([]byte(created))
	return h.Sum(nil)[:NonceSize]
}

// PasswordDigest computes the base64 password digest over the given
// nonce and creation timestamp. Both hash stages use SHA-1.
func PasswordDigest(password []byte, created string, nonce []byte) string {
	inner := sha1.Sum(password)
	h := sha1.New()
	h.Write(nonce)
	h.Write([]byte(created))
	h.Write(inner[:])
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// Created formats a creation timestamp for the username token.
//
// The counterpart service requires milliseconds separated from the
// seconds by a colon rather than a dot, so this is intentionally not a
// standard RFC3339/ISO-8601 rendering.
func Created(now time.Time) string {
	now = now.UTC()
	return fmt.Sprintf("%s:%03dZ", now.Format("2006-01-02T15:04:05"), now.Nanosecond()/int(time.Millisecond))
}
