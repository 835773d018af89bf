package types

// DocumentChunk is one slice of an uploaded document, stored in session
// memory and retrieved by keyword relevance.
type DocumentChunk struct {
	Content     string `json:"content"`
	Filename    string `json:"filename"`
	ChunkIndex  int    `json:"chunk_index"`
	TotalChunks int    `json:"total_chunks"`
}

// DocumentUploadResponse is returned after a successful upload.
type DocumentUploadResponse struct {
	Filename  string `json:"filename"`
	Chunks    int    `json:"chunks"`
	Status    string `json:"status"`
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// SessionInfoResponse describes a session's stored documents.
type SessionInfoResponse struct {
	SessionID string `json:"session_id"`
	Exists    bool   `json:"exists"`
	Count     int    `json:"count"`
}
