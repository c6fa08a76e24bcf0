package gitlab

// Project represents a GitLab project as returned by the GraphQL API.
// Records are immutable once fetched.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	WebURL      string `json:"webUrl"`
}

// PageInfo carries cursor pagination metadata. EndCursor is an opaque
// server-issued token, used at most once.
type PageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

// projectNode is the raw GraphQL shape for a project (description is nullable
// on the wire).
type projectNode struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	WebURL      string  `json:"webUrl"`
}

// toProject converts the raw node to a Project.
func (n *projectNode) toProject() Project {
	p := Project{
		ID:     n.ID,
		Name:   n.Name,
		WebURL: n.WebURL,
	}
	if n.Description != nil {
		p.Description = *n.Description
	}
	return p
}

// projectsPage is the decoded `data` payload for one page of the projects
// query.
type projectsPage struct {
	Projects struct {
		Nodes    []*projectNode `json:"nodes"`
		PageInfo PageInfo       `json:"pageInfo"`
	} `json:"projects"`
}
