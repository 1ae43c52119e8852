package domain

// Project represents a Clockify project in the domain layer.
type Project struct {
	ID          string
	WorkspaceID string
	Name        string
	ClientID    string // empty when the project has no client
	ClientName  string
	Color       string
	Public      bool
	Archived    bool
	Billable    bool
}

// ProjectList is the cached, ordered project/client sequence shown to the
// user. A refresh replaces the whole list; it is never mutated in place.
type ProjectList struct {
	Projects []Project
	Clients  []Client
}

// ForClient returns the projects belonging to clientID. An empty clientID
// selects projects with no client assigned.
func (l ProjectList) ForClient(clientID string) []Project {
	out := make([]Project, 0, len(l.Projects))
	for _, p := range l.Projects {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out
}

// ByID looks a project up in the cached list.
func (l ProjectList) ByID(id string) (Project, bool) {
	for _, p := range l.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

// ClientName resolves a client ID against the cached client list.
func (l ProjectList) ClientName(clientID string) string {
	for _, c := range l.Clients {
		if c.ID == clientID {
			return c.Name
		}
	}
	return ""
}
