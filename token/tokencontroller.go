package token

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wistefan/shirt-store/model"
)

type TokenController struct {
	tokenHandler *TokenHandler
}

func NewTokenController(tokenHandler *TokenHandler) *TokenController {
	return &TokenController{tokenHandler: tokenHandler}
}

func (tc *TokenController) IssueToken(c *gin.Context) {

	bodyData, err := ioutil.ReadAll(c.Request.Body)
	if err != nil {
		logger.Debugf("Was not able to read the body, return error %v.", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, model.ProblemDetails{Type: "BadRequest", Status: http.StatusBadRequest, Title: "Unable to read body", Detail: err.Error()})
		return
	}

	var credential model.AppCredential
	err = json.Unmarshal(bodyData, &credential)
	if err != nil {
		logger.Debugf("Was not able to unmarshal request body: %s", string(bodyData))
		c.AbortWithStatusJSON(http.StatusBadRequest, model.ProblemDetails{Type: "BadRequest", Status: http.StatusBadRequest, Title: "Unable to unmarshal body.", Detail: err.Error()})
		return
	}

	accessToken, httpErr := tc.tokenHandler.Issue(credential.ClientId, credential.ClientSecret)
	if httpErr != (model.HttpError{}) {
		logger.Debugf("Was not able to issue a token for client %s.", credential.ClientId)
		c.AbortWithStatusJSON(httpErr.Status, model.ProblemDetails{Type: "Unauthenticated", Status: httpErr.Status, Title: "Failed to issue token.", Detail: httpErr.Message})
		return
	}
	c.AbortWithStatusJSON(http.StatusOK, accessToken)
}
