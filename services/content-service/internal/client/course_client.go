package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type CourseClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewCourseClient(baseURL string) *CourseClient {
	return &CourseClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
}

// CourseExists probes the course registration service. 2xx is Valid,
// 404 is NotFound, anything else is Unreachable; callers decide whether
// Unreachable blocks them.
func (c *CourseClient) CourseExists(ctx context.Context, courseID string) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/courses/"+courseID, nil)
	if err != nil {
		return Result{Status: StatusUnreachable, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{Status: StatusUnreachable, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Result{Status: StatusNotFound}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{Status: StatusUnreachable, Err: fmt.Errorf("course service returned status %d", resp.StatusCode)}
	}

	return Result{Status: StatusValid}
}

type RegistrationInfo struct {
	ID               string `json:"id"`
	CourseID         string `json:"course_id"`
	Status           string `json:"status"`
	RegistrationDate string `json:"registration_date"`
}

// StudentRegistrations fetches the registrations of a student from the
// course registration service.
func (c *CourseClient) StudentRegistrations(ctx context.Context, studentID string) ([]RegistrationInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/registrations/student/"+studentID, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("course service returned status %d", resp.StatusCode)
	}

	var body struct {
		Registrations []RegistrationInfo `json:"registrations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	return body.Registrations, nil
}
