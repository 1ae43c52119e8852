package clockify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"clockify-tracker/internal/domain"
)

// Client implements ports.ClockifyAPI against the Clockify REST API v1.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *slog.Logger
}

func NewClient(baseURL, apiKey string, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://api.clockify.me"
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// CurrentUser fetches the authenticated user ("who am I").
func (c *Client) CurrentUser(ctx context.Context) (domain.User, error) {
	var raw rawUser
	if err := c.do(ctx, http.MethodGet, "/api/v1/user", nil, nil, &raw, http.StatusOK); err != nil {
		return domain.User{}, err
	}
	return domain.User{
		ID:               raw.ID,
		Name:             raw.Name,
		Email:            raw.Email,
		DefaultWorkspace: raw.DefaultWorkspace,
	}, nil
}

// ListProjects fetches all projects in the workspace.
func (c *Client) ListProjects(ctx context.Context, workspaceID string) ([]domain.Project, error) {
	if workspaceID == "" {
		return nil, fmt.Errorf("%w: missing workspace id", ErrValidation)
	}
	var raw []rawProject
	path := fmt.Sprintf("/api/v1/workspaces/%s/projects", workspaceID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &raw, http.StatusOK); err != nil {
		return nil, err
	}
	out := make([]domain.Project, 0, len(raw))
	for _, p := range raw {
		out = append(out, p.toDomain())
	}
	return out, nil
}

// ListClients fetches the workspace's clients.
func (c *Client) ListClients(ctx context.Context, workspaceID string) ([]domain.Client, error) {
	if workspaceID == "" {
		return nil, fmt.Errorf("%w: missing workspace id", ErrValidation)
	}
	var raw []rawClient
	path := fmt.Sprintf("/api/v1/workspaces/%s/clients", workspaceID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &raw, http.StatusOK); err != nil {
		return nil, err
	}
	out := make([]domain.Client, 0, len(raw))
	for _, cl := range raw {
		out = append(out, domain.Client{
			ID:          cl.ID,
			WorkspaceID: cl.WorkspaceID,
			Name:        cl.Name,
			Note:        cl.Note,
			Archived:    cl.Archived,
		})
	}
	return out, nil
}

// CreateProject creates a project, optionally attached to a client.
// New projects get Clockify's default blue and stay private.
func (c *Client) CreateProject(ctx context.Context, workspaceID, name, clientID string) (domain.Project, error) {
	if workspaceID == "" {
		return domain.Project{}, fmt.Errorf("%w: missing workspace id", ErrValidation)
	}
	body := map[string]any{
		"name":     name,
		"isPublic": false,
		"color":    "#3498db",
	}
	if clientID != "" {
		body["clientId"] = clientID
	}
	var raw rawProject
	path := fmt.Sprintf("/api/v1/workspaces/%s/projects", workspaceID)
	if err := c.do(ctx, http.MethodPost, path, nil, body, &raw, http.StatusCreated); err != nil {
		return domain.Project{}, err
	}
	return raw.toDomain(), nil
}

// CreateClient creates a client in the workspace.
func (c *Client) CreateClient(ctx context.Context, workspaceID, name string) (domain.Client, error) {
	if workspaceID == "" {
		return domain.Client{}, fmt.Errorf("%w: missing workspace id", ErrValidation)
	}
	body := map[string]any{
		"name": name,
		"note": "Created by clockify-tracker",
	}
	var raw rawClient
	path := fmt.Sprintf("/api/v1/workspaces/%s/clients", workspaceID)
	if err := c.do(ctx, http.MethodPost, path, nil, body, &raw, http.StatusCreated); err != nil {
		return domain.Client{}, err
	}
	return domain.Client{
		ID:          raw.ID,
		WorkspaceID: raw.WorkspaceID,
		Name:        raw.Name,
		Note:        raw.Note,
	}, nil
}

// StartTimeEntry creates a running time entry starting now.
func (c *Client) StartTimeEntry(ctx context.Context, workspaceID, projectID, description string) (domain.TimeEntry, error) {
	if workspaceID == "" {
		return domain.TimeEntry{}, fmt.Errorf("%w: missing workspace id", ErrValidation)
	}
	body := map[string]any{
		"start":       time.Now().UTC().Format(time.RFC3339),
		"description": description,
	}
	if projectID != "" {
		body["projectId"] = projectID
	}
	var raw rawTimeEntry
	path := fmt.Sprintf("/api/v1/workspaces/%s/time-entries", workspaceID)
	if err := c.do(ctx, http.MethodPost, path, nil, body, &raw, http.StatusCreated); err != nil {
		return domain.TimeEntry{}, err
	}
	return raw.toDomain()
}

// StopTimeEntry closes entry by rewriting it with an end timestamp, the
// way the Clockify PUT endpoint expects the full interval back.
func (c *Client) StopTimeEntry(ctx context.Context, workspaceID string, entry domain.TimeEntry, end time.Time) (domain.TimeEntry, error) {
	if workspaceID == "" {
		return domain.TimeEntry{}, fmt.Errorf("%w: missing workspace id", ErrValidation)
	}
	if entry.ID == "" {
		return domain.TimeEntry{}, fmt.Errorf("%w: missing time entry id", ErrValidation)
	}
	tagIDs := entry.TagIDs
	if tagIDs == nil {
		tagIDs = []string{}
	}
	body := map[string]any{
		"start":       entry.Start.UTC().Format(time.RFC3339),
		"end":         end.UTC().Format(time.RFC3339),
		"billable":    entry.Billable,
		"description": entry.Description,
		"tagIds":      tagIDs,
	}
	if entry.ProjectID != "" {
		body["projectId"] = entry.ProjectID
	}
	if entry.TaskID != "" {
		body["taskId"] = entry.TaskID
	}
	var raw rawTimeEntry
	path := fmt.Sprintf("/api/v1/workspaces/%s/time-entries/%s", workspaceID, entry.ID)
	if err := c.do(ctx, http.MethodPut, path, nil, body, &raw, http.StatusOK); err != nil {
		return domain.TimeEntry{}, err
	}
	return raw.toDomain()
}

// InProgressEntry returns the user's running entry, or nil when none.
func (c *Client) InProgressEntry(ctx context.Context, workspaceID, userID string) (*domain.TimeEntry, error) {
	if workspaceID == "" || userID == "" {
		return nil, fmt.Errorf("%w: missing workspace or user id", ErrValidation)
	}
	q := url.Values{}
	q.Set("in-progress", "true")
	var raw []rawTimeEntry
	path := fmt.Sprintf("/api/v1/workspaces/%s/user/%s/time-entries", workspaceID, userID)
	if err := c.do(ctx, http.MethodGet, path, q, nil, &raw, http.StatusOK); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	entry, err := raw[0].toDomain()
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListTimeEntries fetches the user's entries in [from, to], optionally
// scoped to one project.
func (c *Client) ListTimeEntries(ctx context.Context, workspaceID, userID string, from, to time.Time, projectID string) ([]domain.TimeEntry, error) {
	if workspaceID == "" || userID == "" {
		return nil, fmt.Errorf("%w: missing workspace or user id", ErrValidation)
	}
	q := url.Values{}
	q.Set("start", from.UTC().Format(time.RFC3339))
	q.Set("end", to.UTC().Format(time.RFC3339))
	q.Set("page-size", "200")
	if projectID != "" {
		q.Set("project", projectID)
	}
	var raw []rawTimeEntry
	path := fmt.Sprintf("/api/v1/workspaces/%s/user/%s/time-entries", workspaceID, userID)
	if err := c.do(ctx, http.MethodGet, path, q, nil, &raw, http.StatusOK); err != nil {
		return nil, err
	}
	out := make([]domain.TimeEntry, 0, len(raw))
	for _, r := range raw {
		entry, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, wantStatus int) error {
	if c.apiKey == "" {
		return fmt.Errorf("%w: missing api key", ErrAuth)
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return err
	}
	u.Path = path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return err
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return statusError(resp.StatusCode, string(msg))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("clockify: decode response: %w", err)
	}
	return nil
}

// rawProject mirrors the JSON from Clockify v1.
type rawProject struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	WorkspaceID string `json:"workspaceId"`
	ClientID    string `json:"clientId"`
	ClientName  string `json:"clientName"`
	Color       string `json:"color"`
	Public      bool   `json:"public"`
	Archived    bool   `json:"archived"`
	Billable    bool   `json:"billable"`
}

func (p rawProject) toDomain() domain.Project {
	return domain.Project{
		ID:          p.ID,
		WorkspaceID: p.WorkspaceID,
		Name:        p.Name,
		ClientID:    p.ClientID,
		ClientName:  p.ClientName,
		Color:       p.Color,
		Public:      p.Public,
		Archived:    p.Archived,
		Billable:    p.Billable,
	}
}

type rawClient struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	WorkspaceID string `json:"workspaceId"`
	Note        string `json:"note"`
	Archived    bool   `json:"archived"`
}

type rawUser struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	DefaultWorkspace string `json:"defaultWorkspace"`
}

type rawTimeEntry struct {
	ID           string   `json:"id"`
	Description  string   `json:"description"`
	ProjectID    string   `json:"projectId"`
	TaskID       string   `json:"taskId"`
	WorkspaceID  string   `json:"workspaceId"`
	UserID       string   `json:"userId"`
	TagIDs       []string `json:"tagIds"`
	Billable     bool     `json:"billable"`
	TimeInterval struct {
		Start    time.Time  `json:"start"`
		End      *time.Time `json:"end"`
		Duration string     `json:"duration"`
	} `json:"timeInterval"`
}

func (r rawTimeEntry) toDomain() (domain.TimeEntry, error) {
	dur, err := domain.ParseISODuration(r.TimeInterval.Duration)
	if err != nil {
		return domain.TimeEntry{}, err
	}
	var end *time.Time
	if r.TimeInterval.End != nil {
		e := *r.TimeInterval.End
		end = &e
	}
	return domain.TimeEntry{
		ID:          r.ID,
		Description: r.Description,
		ProjectID:   r.ProjectID,
		TaskID:      r.TaskID,
		WorkspaceID: r.WorkspaceID,
		UserID:      r.UserID,
		TagIDs:      r.TagIDs,
		Billable:    r.Billable,
		Start:       r.TimeInterval.Start,
		End:         end,
		DurationSec: int64(dur / time.Second),
	}, nil
}
