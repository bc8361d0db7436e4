package token

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/wistefan/shirt-store/config"
	"github.com/wistefan/shirt-store/logging"
	"github.com/wistefan/shirt-store/model"
)

var logger = logging.Log()

type ApplicationRepository interface {
	GetByClientId(clientId string) (application model.Application, httpErr model.HttpError)
}

/**
* In-memory registry of the client applications. The list is loaded once at
* startup and read-only afterwards.
 */
type InMemoryApplicationRepo struct {
	applications []model.Application
}

/**
* Development fallback, used when no applications file is configured.
 */
var defaultApplications = []model.Application{
	{Id: 1, Name: "shirts-reader", ClientId: "53D3C1E6-5487-43B2-9EB0-2E78C4F00303", Secret: "reader-secret", Scopes: "read"},
	{Id: 2, Name: "shirts-writer", ClientId: "18C273E4-9B1A-445B-B8F5-8D42A46D2F61", Secret: "writer-secret", Scopes: "read,write"},
	{Id: 3, Name: "shirts-admin", ClientId: "E0A8C7B1-3F2D-4D89-A94C-61B94C53D0DB", Secret: "admin-secret", Scopes: "read,write,delete"},
}

func NewApplicationRepository(appConfig config.Config) *InMemoryApplicationRepo {
	applicationsFile := appConfig.ApplicationsFile()
	if applicationsFile == "" {
		logger.Warn("No applications file is configured, the built-in development applications are used. Do NEVER use those for anything but development or testing!")
		return &InMemoryApplicationRepo{applications: defaultApplications}
	}

	fileData, err := os.ReadFile(applicationsFile)
	if err != nil {
		logger.Fatalf("Was not able to read the applications file %s. Err: %v", applicationsFile, err)
	}
	var applications []model.Application
	err = json.Unmarshal(fileData, &applications)
	if err != nil {
		logger.Fatalf("Was not able to unmarshal the applications file %s. Err: %v", applicationsFile, err)
	}
	logger.Infof("Loaded %d applications from %s.", len(applications), applicationsFile)
	return &InMemoryApplicationRepo{applications: applications}
}

func (repo *InMemoryApplicationRepo) GetByClientId(clientId string) (application model.Application, httpErr model.HttpError) {
	for _, app := range repo.applications {
		if app.ClientId == clientId {
			return app, httpErr
		}
	}
	logger.Debugf("No application exists for client %s.", clientId)
	return application, model.HttpError{Status: http.StatusUnauthorized, Message: "Invalid client credentials.", RootError: nil}
}
