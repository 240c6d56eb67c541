package ingest

// DocumentInput is one source text submitted for ingestion.
type DocumentInput struct {
	Title    string `json:"title"`
	Text     string `json:"text"`
	Filename string `json:"filename,omitempty"`
	Page     *int   `json:"page,omitempty"`
}

// IngestRequest is the body of POST /v1/projects/{id}/documents.
type IngestRequest struct {
	Documents []DocumentInput `json:"documents"`
}

// DocumentResult reports what one document produced.
type DocumentResult struct {
	DocumentID string `json:"document_id"`
	Title      string `json:"title"`
	Chunks     int    `json:"chunks"`
}

// IngestResponse summarizes a completed ingest call.
type IngestResponse struct {
	ProjectID string           `json:"project_id"`
	Documents []DocumentResult `json:"documents"`
}

// CreateProjectRequest is the body of POST /v1/projects.
type CreateProjectRequest struct {
	Name     string `json:"name"`
	OwnerRef string `json:"owner_ref,omitempty"`
}

// ProjectResponse is the wire shape of a project.
type ProjectResponse struct {
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	OwnerRef  string `json:"owner_ref,omitempty"`
	CreatedAt string `json:"created_at"`
}
