// Package service declares the stateless contracts the domain depends on,
// keeping credential hashing and token issuance out of the entities.
package service

// PasswordHasher hides the concrete hashing algorithm from the domain.
type PasswordHasher interface {
	// Hash derives a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check reports whether the plaintext password matches the stored hash.
	Check(password, hash string) bool
}
