package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type EnrollmentClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewEnrollmentClient(baseURL string) *EnrollmentClient {
	return &EnrollmentClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
}

// ValidateStudent asks the enrollment service whether the student exists.
// A 2xx with valid=true is Valid, a 404 or valid=false is NotFound,
// anything else is Unreachable. No retries, default client timeout.
func (c *EnrollmentClient) ValidateStudent(ctx context.Context, studentID string) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/validate/"+studentID, nil)
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
		return Result{Status: StatusUnreachable, Err: fmt.Errorf("enrollment service returned status %d", resp.StatusCode)}
	}

	var body struct {
		Valid bool `json:"valid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{Status: StatusUnreachable, Err: err}
	}
	if !body.Valid {
		return Result{Status: StatusNotFound}
	}

	return Result{Status: StatusValid}
}
