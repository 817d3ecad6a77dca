package session

import "time"

// SubjectAdmin is the fixed identity marker carried by every session token.
// There is exactly one administrative identity in the system.
const SubjectAdmin = "admin"

// Claims is the payload embedded in a signed session token. It only ever
// exists inside a token; nothing is persisted server-side.
type Claims struct {
	Subject   string    // Fixed identity marker ("admin")
	IssuedAt  time.Time // When the token was minted
	ExpiresAt time.Time // IssuedAt + TTL; the token is dead at or past this instant
	TokenID   string    // Unique per mint, so consecutive mints are distinguishable
}
