package domain

import "time"

// Session is the single-admin login record held in the local store under the
// "user" key. There is no server-side session behind it.
type Session struct {
	Email         string    `json:"email"`
	Authenticated bool      `json:"isAuthenticated"`
	LoginTime     time.Time `json:"loginTime"`
}
