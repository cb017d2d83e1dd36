// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is an account that can author posts, comments and likes.
type User struct {
	ID           int64     // Serial primary key.
	Email        string    // Unique; also the subject of every token issued for this user.
	Username     string    // Unique display handle.
	PasswordHash string    // bcrypt digest. The plaintext is never stored.
	Confirmed    bool      // Flipped to true once a confirmation token is redeemed; never reverts.
	CreatedAt    time.Time // Timestamp of registration.
}
