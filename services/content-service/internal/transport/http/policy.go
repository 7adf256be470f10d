package handlers

import (
	"net/http"

	"eduplatform/services/content-service/internal/client"
	"eduplatform/services/content-service/internal/domain"
)

type rejection struct {
	code int
	body map[string]interface{}
}

// authorizeAuthor applies the fail-closed author policy shared by the
// content write endpoints: the user must exist and hold the instructor
// or admin role, and an unreachable user service blocks the write.
func authorizeAuthor(res client.Result, action string) *rejection {
	switch res.Status {
	case client.StatusNotFound:
		return &rejection{http.StatusNotFound, map[string]interface{}{"error": "User not found"}}
	case client.StatusUnreachable:
		return &rejection{http.StatusInternalServerError, map[string]interface{}{
			"error":   "Failed to validate user",
			"details": res.Err.Error(),
		}}
	}

	if res.Role != domain.RoleInstructor && res.Role != domain.RoleAdmin {
		return &rejection{http.StatusForbidden, map[string]interface{}{
			"error": "Only instructors and administrators can " + action + " content",
		}}
	}

	return nil
}
