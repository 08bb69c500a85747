// Package schema defines the data structures shared by the server, the SDK and the CLI.
package schema

// User represents a single entry of the user directory.
// ID is assigned by the store and never changes once set.
type User struct {
	ID        int    `json:"id" yaml:"id"`
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName"`
	Email     string `json:"email" yaml:"email"`
	Address   string `json:"address" yaml:"address"`
	Age       int    `json:"age" yaml:"age"`
	Job       string `json:"job" yaml:"job"`
}

// LoginRequest is the body accepted by the login endpoint.
type LoginRequest struct {
	Email string `json:"email"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}

// ErrorResponse is the fixed-shape payload written for internal faults.
type ErrorResponse struct {
	Error string `json:"error"`
}
