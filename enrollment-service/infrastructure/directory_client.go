package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/campusflow/enrollment-system/enrollment-service/domain"
	"github.com/campusflow/enrollment-system/shared/apperrors"
)

var (
	_ domain.StudentDirectory = (*HTTPDirectoryClient)(nil)
	_ domain.CourseCatalog    = (*HTTPDirectoryClient)(nil)
)

// HTTPDirectoryClient calls the student and course services.
// Lookups are single attempts: no retries and no caching.
type HTTPDirectoryClient struct {
	studentsURL string
	coursesURL  string
	client      *http.Client
}

// NewHTTPDirectoryClient creates a client for the given base URLs
func NewHTTPDirectoryClient(studentsURL, coursesURL string, timeout time.Duration) *HTTPDirectoryClient {
	return &HTTPDirectoryClient{
		studentsURL: strings.TrimRight(studentsURL, "/"),
		coursesURL:  strings.TrimRight(coursesURL, "/"),
		client:      &http.Client{Timeout: timeout},
	}
}

// the directories return numeric ids, so the requested id is used instead
type studentResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type courseResponse struct {
	Title         string `json:"title"`
	Capacity      int    `json:"capacity"`
	EnrolledCount int    `json:"enrolledCount"`
}

// GetStudent implements domain.StudentDirectory
func (c *HTTPDirectoryClient) GetStudent(ctx context.Context, id string) (*domain.Student, error) {
	var body studentResponse
	found, err := c.get(ctx, c.studentsURL+"/students/"+url.PathEscape(id), &body)
	if err != nil || !found {
		return nil, err
	}

	return &domain.Student{ID: id, Name: body.Name, Email: body.Email}, nil
}

// GetCourse implements domain.CourseCatalog
func (c *HTTPDirectoryClient) GetCourse(ctx context.Context, id string) (*domain.Course, error) {
	var body courseResponse
	found, err := c.get(ctx, c.coursesURL+"/courses/"+url.PathEscape(id), &body)
	if err != nil || !found {
		return nil, err
	}

	return &domain.Course{
		ID:            id,
		Title:         body.Title,
		Capacity:      body.Capacity,
		EnrolledCount: body.EnrolledCount,
	}, nil
}

func (c *HTTPDirectoryClient) get(ctx context.Context, target string, out interface{}) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return false, apperrors.Unavailable(err, "failed to build directory request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return false, apperrors.Unavailable(err, "directory request failed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode >= 300:
		return false, apperrors.Unavailable(fmt.Errorf("status %d", resp.StatusCode), "directory request to "+target+" failed")
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, apperrors.Unavailable(err, "failed to decode directory response")
	}

	return true, nil
}
