// Package auth provides the session identity passed into the service layer
// and the JWT machinery that produces it.
package auth

// Session identifies the authenticated caller. Services take it as an
// explicit parameter; there is no ambient current-user state anywhere.
type Session struct {
	UserID uint
	Email  string
}
