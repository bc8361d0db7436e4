package shirts

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wistefan/shirt-store/logging"
	"github.com/wistefan/shirt-store/model"
)

/**
* Context key the existence check stores the resolved shirt under.
 */
const resolvedShirtKey = "resolvedShirt"

type ShirtController struct {
	shirtRepo ShirtRepository
}

func NewShirtController(shirtRepo ShirtRepository) *ShirtController {
	return &ShirtController{shirtRepo: shirtRepo}
}

/**
* Existence check, run before get-by-id, update and delete. Resolves the
* shirt for the route id and makes it available to the handler.
 */
func (sc *ShirtController) ShirtExists(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.Atoi(idParam)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, model.ProblemDetails{Type: "InvalidParameter", Status: http.StatusBadRequest, Title: "Invalid path parameter", Detail: fmt.Sprintf("The id has to be a positive number, but was: %s", idParam)})
		return
	}
	shirt, httpErr := sc.shirtRepo.GetShirt(id)
	if httpErr != (model.HttpError{}) {
		c.AbortWithStatusJSON(http.StatusNotFound, model.ProblemDetails{Type: "NotFound", Status: http.StatusNotFound, Title: "Shirt not found.", Detail: httpErr.Message})
		return
	}
	c.Set(resolvedShirtKey, shirt)
	c.Next()
}

func (sc *ShirtController) GetShirts(c *gin.Context) {
	query := c.Request.URL.Query()
	limitParam := query.Get("limit")
	if limitParam == "" {
		limitParam = "100"
	}
	offsetParam := query.Get("offset")
	if offsetParam == "" {
		offsetParam = "0"
	}
	limit, err := strconv.Atoi(limitParam)
	if err != nil || limit < 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, model.ProblemDetails{Type: "InvalidParameter", Status: http.StatusBadRequest, Title: "Invalid query parameter", Detail: fmt.Sprintf("Limit is not a valid number: %s", limitParam)})
		return
	}
	offset, err := strconv.Atoi(offsetParam)
	if err != nil || offset < 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, model.ProblemDetails{Type: "InvalidParameter", Status: http.StatusBadRequest, Title: "Invalid query parameter", Detail: fmt.Sprintf("Offset is not a valid number: %s", offsetParam)})
		return
	}

	shirts, httpErr := sc.shirtRepo.GetShirts(limit, offset)
	if httpErr != (model.HttpError{}) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, model.ProblemDetails{Type: "RepositoryError", Status: http.StatusInternalServerError, Title: "Unable to get shirts from repo", Detail: httpErr.Message})
		return
	}
	c.AbortWithStatusJSON(http.StatusOK, shirts)
}

func (sc *ShirtController) GetShirtById(c *gin.Context) {
	shirt := c.MustGet(resolvedShirtKey).(model.Shirt)
	c.AbortWithStatusJSON(http.StatusOK, shirt)
}

func (sc *ShirtController) CreateShirt(c *gin.Context) {

	shirt, problem := readShirtBody(c)
	if problem != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, *problem)
		return
	}

	if httpErr := validateRequiredFields(*shirt); httpErr != (model.HttpError{}) {
		c.AbortWithStatusJSON(httpErr.Status, model.ProblemDetails{Type: "BadRequest", Status: httpErr.Status, Title: "Invalid shirt.", Detail: httpErr.Message})
		return
	}

	exists, httpErr := sc.shirtRepo.FindDuplicate(*shirt)
	if httpErr != (model.HttpError{}) {
		c.AbortWithStatusJSON(httpErr.Status, model.ProblemDetails{Type: "RepositoryError", Status: httpErr.Status, Title: "Failed to create shirt.", Detail: httpErr.Message})
		return
	}
	if exists {
		logger.Debugf("Shirt %s already exists.", logging.PrettyPrintObject(shirt))
		c.AbortWithStatusJSON(http.StatusBadRequest, model.ProblemDetails{Type: "BadRequest", Status: http.StatusBadRequest, Title: "Invalid shirt.", Detail: "Shirt already exists."})
		return
	}

	if httpErr := validateSizing(*shirt); httpErr != (model.HttpError{}) {
		c.AbortWithStatusJSON(httpErr.Status, model.ProblemDetails{Type: "BadRequest", Status: httpErr.Status, Title: "Invalid shirt.", Detail: httpErr.Message})
		return
	}

	createdShirt, httpErr := sc.shirtRepo.CreateShirt(*shirt)
	if httpErr != (model.HttpError{}) {
		logger.Debugf("Was not able to create shirt %s.", logging.PrettyPrintObject(shirt))
		c.AbortWithStatusJSON(httpErr.Status, model.ProblemDetails{Type: "RepositoryError", Status: httpErr.Status, Title: "Failed to create shirt.", Detail: httpErr.Message})
		return
	}
	c.Header("Location", fmt.Sprintf("/api/shirts/%d", createdShirt.ShirtId))
	c.AbortWithStatusJSON(http.StatusCreated, createdShirt)
}

func (sc *ShirtController) ReplaceShirt(c *gin.Context) {

	existingShirt := c.MustGet(resolvedShirtKey).(model.Shirt)

	shirt, problem := readShirtBody(c)
	if problem != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, *problem)
		return
	}

	if shirt.ShirtId != existingShirt.ShirtId {
		c.AbortWithStatusJSON(http.StatusBadRequest, model.ProblemDetails{Type: "BadRequest", Status: http.StatusBadRequest, Title: "Invalid shirt.", Detail: fmt.Sprintf("The shirtId %d does not match the id %d of the route.", shirt.ShirtId, existingShirt.ShirtId)})
		return
	}

	if httpErr := validateRequiredFields(*shirt); httpErr != (model.HttpError{}) {
		c.AbortWithStatusJSON(httpErr.Status, model.ProblemDetails{Type: "BadRequest", Status: httpErr.Status, Title: "Invalid shirt.", Detail: httpErr.Message})
		return
	}

	if httpErr := validateSizing(*shirt); httpErr != (model.HttpError{}) {
		c.AbortWithStatusJSON(httpErr.Status, model.ProblemDetails{Type: "BadRequest", Status: httpErr.Status, Title: "Invalid shirt.", Detail: httpErr.Message})
		return
	}

	httpErr := sc.shirtRepo.UpdateShirt(*shirt)
	if httpErr != (model.HttpError{}) {
		logger.Debugf("Was not able to replace shirt %s.", logging.PrettyPrintObject(shirt))
		errorType := "RepositoryError"
		if httpErr.Status == http.StatusNotFound {
			errorType = "NotFound"
		}
		c.AbortWithStatusJSON(httpErr.Status, model.ProblemDetails{Type: errorType, Status: httpErr.Status, Title: "Failed to replace shirt.", Detail: httpErr.Message})
		return
	}
	c.AbortWithStatus(http.StatusNoContent)
}

func (sc *ShirtController) DeleteShirtById(c *gin.Context) {
	existingShirt := c.MustGet(resolvedShirtKey).(model.Shirt)

	deletedShirt, httpErr := sc.shirtRepo.DeleteShirt(existingShirt.ShirtId)
	if httpErr != (model.HttpError{}) {
		c.AbortWithStatusJSON(httpErr.Status, model.ProblemDetails{Type: "NotFound", Status: httpErr.Status, Title: "Shirt not found.", Detail: httpErr.Message})
		return
	}
	c.AbortWithStatusJSON(http.StatusOK, deletedShirt)
}

/**
* Reads and unmarshals the shirt from the request body. A missing body and the
* json literal null both count as "no shirt provided".
 */
func readShirtBody(c *gin.Context) (shirt *model.Shirt, problem *model.ProblemDetails) {
	bodyData, err := ioutil.ReadAll(c.Request.Body)
	if err != nil {
		logger.Debugf("Was not able to read the body, return error %v.", err)
		return nil, &model.ProblemDetails{Type: "BadRequest", Status: http.StatusBadRequest, Title: "Unable to read body", Detail: err.Error()}
	}

	err = json.Unmarshal(bodyData, &shirt)
	if err != nil {
		logger.Debugf("Was not able to unmarshal request body: %s", string(bodyData))
		return nil, &model.ProblemDetails{Type: "BadRequest", Status: http.StatusBadRequest, Title: "Unable to unmarshal body.", Detail: err.Error()}
	}
	if shirt == nil {
		return nil, &model.ProblemDetails{Type: "BadRequest", Status: http.StatusBadRequest, Title: "Invalid shirt.", Detail: "A shirt is required."}
	}
	return shirt, nil
}
