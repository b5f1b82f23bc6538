package chat

// User is the sanitized projection of an account exposed by the chat core.
// Anything else on the account (email, verification state, audit timestamps)
// stays behind the identity provider and never leaves the stores.
type User struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
