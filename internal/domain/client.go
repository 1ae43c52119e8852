package domain

// Client represents a Clockify client (customer) in the domain layer.
type Client struct {
	ID          string
	WorkspaceID string
	Name        string
	Note        string
	Archived    bool
}
