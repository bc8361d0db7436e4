package token

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/wistefan/shirt-store/model"
)

func TestGetByClientId(t *testing.T) {

	applicationRepo := getApplicationRepo()

	t.Run("Return the application for a known client.", func(t *testing.T) {
		application, httpErr := applicationRepo.GetByClientId("reader-client")
		if httpErr != (model.HttpError{}) {
			t.Fatalf("The application should have been found, but got %v.", httpErr)
		}
		if application.Name != "test-reader" {
			t.Errorf("Did not receive the expected application, but %v.", application)
		}
	})

	t.Run("Fail with unauthorized for an unknown client.", func(t *testing.T) {
		_, httpErr := applicationRepo.GetByClientId("no-such-client")
		if httpErr.Status != http.StatusUnauthorized {
			t.Errorf("An unknown client should be unauthorized, but got %v.", httpErr)
		}
	})
}

func TestLoadApplicationsFromFile(t *testing.T) {

	applicationsFile := filepath.Join(t.TempDir(), "applications.json")
	fileContent := `[{"id": 1, "name": "file-app", "clientId": "file-client", "secret": "file-secret", "scopes": "read,write"}]`
	if err := os.WriteFile(applicationsFile, []byte(fileContent), 0644); err != nil {
		t.Fatalf("Was not able to write the applications file. Err: %v", err)
	}

	applicationRepo := NewApplicationRepository(mockConfig{applicationsFile: applicationsFile})

	application, httpErr := applicationRepo.GetByClientId("file-client")
	if httpErr != (model.HttpError{}) {
		t.Fatalf("The application should have been loaded from the file, but got %v.", httpErr)
	}
	if application.Scopes != "read,write" {
		t.Errorf("Did not receive the expected application, but %v.", application)
	}
}

func TestDefaultApplications(t *testing.T) {

	applicationRepo := NewApplicationRepository(mockConfig{})

	for _, clientId := range []string{"53D3C1E6-5487-43B2-9EB0-2E78C4F00303", "18C273E4-9B1A-445B-B8F5-8D42A46D2F61", "E0A8C7B1-3F2D-4D89-A94C-61B94C53D0DB"} {
		if _, httpErr := applicationRepo.GetByClientId(clientId); httpErr != (model.HttpError{}) {
			t.Errorf("The development application %s should be available, but got %v.", clientId, httpErr)
		}
	}
}
