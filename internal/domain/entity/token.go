// Package entity contains the core business objects of the project.
package entity

// TokenPurpose is the tag embedded in every signed token restricting which
// validation flow may accept it.
type TokenPurpose string

const (
	// TokenPurposeAccess marks short-lived tokens authorizing API calls.
	TokenPurposeAccess TokenPurpose = "access"
	// TokenPurposeConfirmation marks long-lived tokens proving control of an email address.
	TokenPurposeConfirmation TokenPurpose = "confirmation"
)

// String returns the string representation of the TokenPurpose.
func (p TokenPurpose) String() string {
	return string(p)
}

// IsValid checks if the TokenPurpose is a known value.
func (p TokenPurpose) IsValid() bool {
	switch p {
	case TokenPurposeAccess, TokenPurposeConfirmation:
		return true
	default:
		return false
	}
}
