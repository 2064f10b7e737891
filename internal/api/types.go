package api

import "shortcast/internal/media"

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// QueueItem describes a queue entry in a transport-friendly format.
type QueueItem struct {
	ID             int64         `json:"id"`
	JobID          string        `json:"jobId"`
	Title          string        `json:"title"`
	SourcePath     string        `json:"sourcePath"`
	Status         string        `json:"status"`
	Progress       QueueProgress `json:"progress"`
	ErrorMessage   string        `json:"errorMessage,omitempty"`
	CreatedAt      string        `json:"createdAt,omitempty"`
	UpdatedAt      string        `json:"updatedAt,omitempty"`
	TranscriptPath string        `json:"transcriptPath,omitempty"`
	HighlightsPath string        `json:"highlightsPath,omitempty"`
	VideoFiles     []string      `json:"videoFiles,omitempty"`
}

// QueueProgress captures stage progress information for a queue entry.
type QueueProgress struct {
	Stage   string  `json:"stage"`
	Percent float64 `json:"percent"`
	Message string  `json:"message"`
}

// WorkflowStatus summarizes workflow execution state.
type WorkflowStatus struct {
	Running     bool           `json:"running"`
	QueueStats  map[string]int `json:"queueStats"`
	LastError   string         `json:"lastError,omitempty"`
	LastItem    *QueueItem     `json:"lastItem,omitempty"`
	StageHealth []StageHealth  `json:"stageHealth"`
}

// StageHealth mirrors readiness reporting for workflow stages.
type StageHealth struct {
	Name   string `json:"name"`
	Ready  bool   `json:"ready"`
	Detail string `json:"detail,omitempty"`
}

// DependencyStatus captures availability of an external dependency.
type DependencyStatus struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail,omitempty"`
}

// DaemonStatus aggregates daemon runtime information for API consumers.
type DaemonStatus struct {
	Running      bool               `json:"running"`
	PID          int                `json:"pid"`
	QueueDBPath  string             `json:"queueDbPath"`
	LockFilePath string             `json:"lockFilePath"`
	APIBind      string             `json:"apiBind,omitempty"`
	Workflow     WorkflowStatus     `json:"workflow"`
	Dependencies []DependencyStatus `json:"dependencies"`
}

// QueueListResponse wraps a collection of queue items for API responses.
type QueueListResponse struct {
	Items []QueueItem `json:"items"`
}

// QueueItemResponse wraps a single queue item.
type QueueItemResponse struct {
	Item QueueItem `json:"item"`
}

// UploadResponse reports the job created for an uploaded audio file.
type UploadResponse struct {
	JobID    string `json:"jobId"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	FileName string `json:"fileName"`
}

// ProcessResponse acknowledges a processing request for a job.
type ProcessResponse struct {
	JobID  string `json:"jobId"`
	Status string `json:"status"`
}

// JobStatusResponse reports current pipeline state for a job.
type JobStatusResponse struct {
	JobID      string            `json:"jobId"`
	Title      string            `json:"title,omitempty"`
	Status     string            `json:"status"`
	Progress   QueueProgress     `json:"progress"`
	Error      string            `json:"error,omitempty"`
	Highlights []media.Highlight `json:"highlights,omitempty"`
	Transcript string            `json:"transcript,omitempty"`
	VideoFiles []string          `json:"videoFiles,omitempty"`
}

// ErrorResponse is the JSON error envelope for the HTTP API.
type ErrorResponse struct {
	Error string `json:"error"`
}
