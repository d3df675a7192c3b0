// Package remote contains the HTTP client for the chores server API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ramitsuri/chores-client-sub000/internal/models"
	"github.com/ramitsuri/chores-client-sub000/internal/ports/secondary"
)

// RequestError is the typed failure result for network operations. Callers
// distinguish it from store errors to decide retry behavior: network
// failures are recoverable and retried on the next periodic refresh.
type RequestError struct {
	Op         string // "get assignments" or "update assignments"
	StatusCode int    // 0 when the request never reached the server
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: server returned %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Client implements secondary.TaskAssignmentsAPI against the chores server.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new chores server client.
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// taskDTO mirrors the server's nested task representation.
type taskDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	RepeatUnit string `json:"repeatUnit"`
}

// memberDTO mirrors the server's member representation.
type memberDTO struct {
	ID string `json:"id"`
}

// taskAssignmentDTO is the wire format for one assignment.
type taskAssignmentDTO struct {
	ID                 string    `json:"id"`
	ProgressStatus     string    `json:"progressStatus"`
	ProgressStatusDate int64     `json:"progressStatusDate"`
	Task               taskDTO   `json:"task"`
	Member             memberDTO `json:"member"`
	DueDateTime        int64     `json:"dueDateTime"`
	CreatedDate        int64     `json:"createdDate"`
}

func dtoToAssignment(dto taskAssignmentDTO) *models.TaskAssignment {
	status := models.ProgressStatus(dto.ProgressStatus)
	switch status {
	case models.ProgressStatusTodo, models.ProgressStatusDone, models.ProgressStatusWontDo:
	default:
		status = models.ProgressStatusUnknown
	}

	return &models.TaskAssignment{
		ID:                 dto.ID,
		TaskID:             dto.Task.ID,
		TaskName:           dto.Task.Name,
		MemberID:           dto.Member.ID,
		DueDateTime:        dto.DueDateTime,
		RepeatUnit:         models.RepeatUnit(dto.Task.RepeatUnit),
		ProgressStatus:     status,
		ProgressStatusDate: dto.ProgressStatusDate,
		CreatedDate:        dto.CreatedDate,
	}
}

func assignmentToDTO(a *models.TaskAssignment) taskAssignmentDTO {
	return taskAssignmentDTO{
		ID:                 a.ID,
		ProgressStatus:     string(a.ProgressStatus),
		ProgressStatusDate: a.ProgressStatusDate,
		Task: taskDTO{
			ID:         a.TaskID,
			Name:       a.TaskName,
			RepeatUnit: string(a.RepeatUnit),
		},
		Member:      memberDTO{ID: a.MemberID},
		DueDateTime: a.DueDateTime,
		CreatedDate: a.CreatedDate,
	}
}

// GetTaskAssignments fetches the full current assignment set.
func (c *Client) GetTaskAssignments(ctx context.Context) ([]*models.TaskAssignment, error) {
	const op = "get assignments"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/task-assignments", nil)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &RequestError{Op: op, StatusCode: resp.StatusCode}
	}

	var dtos []taskAssignmentDTO
	if err := json.NewDecoder(resp.Body).Decode(&dtos); err != nil {
		return nil, &RequestError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	assignments := make([]*models.TaskAssignment, len(dtos))
	for i, dto := range dtos {
		assignments[i] = dtoToAssignment(dto)
	}

	c.logger.Debug("fetched assignments", "count", len(assignments))
	return assignments, nil
}

// UpdateTaskAssignments uploads locally mutated assignments and returns the
// ids the server confirms as durably received.
func (c *Client) UpdateTaskAssignments(ctx context.Context, assignments []*models.TaskAssignment) ([]string, error) {
	const op = "update assignments"

	dtos := make([]taskAssignmentDTO, len(assignments))
	for i, a := range assignments {
		dtos[i] = assignmentToDTO(a)
	}

	body, err := json.Marshal(dtos)
	if err != nil {
		return nil, &RequestError{Op: op, Err: fmt.Errorf("failed to encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/task-assignments", bytes.NewReader(body))
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &RequestError{Op: op, StatusCode: resp.StatusCode}
	}

	var confirmedIDs []string
	if err := json.NewDecoder(resp.Body).Decode(&confirmedIDs); err != nil {
		return nil, &RequestError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	c.logger.Debug("uploaded assignments", "sent", len(assignments), "confirmed", len(confirmedIDs))
	return confirmedIDs, nil
}

func (c *Client) setHeaders(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")
}

// Ensure Client implements the interface
var _ secondary.TaskAssignmentsAPI = (*Client)(nil)
