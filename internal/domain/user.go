package domain

// User is the authenticated Clockify user, as returned by the
// "who am I" endpoint.
type User struct {
	ID               string
	Name             string
	Email            string
	DefaultWorkspace string
}
