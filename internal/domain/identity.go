package domain

// Identity is the verified caller attached to a request after the auth
// middleware resolved the token. Usecases receive it by value and never
// re-verify credentials; how it was produced (token today, session in the
// legacy system) is invisible below the transport.
type Identity struct {
	UserID   string
	Username string
	Role     string
}

// IsZero reports whether no identity was attached.
func (i Identity) IsZero() bool {
	return i.UserID == ""
}
