package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hellofresh/health-go/v5"
	"github.com/penglongli/gin-metrics/ginmetrics"
	"github.com/wistefan/shirt-store/authz"
	"github.com/wistefan/shirt-store/config"
	shirthttp "github.com/wistefan/shirt-store/http"
	"github.com/wistefan/shirt-store/logging"
	"github.com/wistefan/shirt-store/model"
	"github.com/wistefan/shirt-store/shirts"
	"github.com/wistefan/shirt-store/token"
)

/**
* Global logger
 */
var logger = logging.Log()

/**
* Port to run the api at. Default is 8080.
 */
var serverPort int = 8080

func init() {
	serverPortEnvVar := os.Getenv("SERVER_PORT")
	if serverPortEnvVar == "" {
		return
	}
	port, err := strconv.Atoi(serverPortEnvVar)
	if err != nil {
		logger.Fatalf("No valid server port was provided: %s.", serverPortEnvVar)
	}
	serverPort = port
}

/**
* Startup method to run the gin-server. All dependencies are composed here and
* handed to the controllers and middlewares explicitly.
 */
func main() {

	envConfig := config.EnvConfig{}

	applicationRepo := token.NewApplicationRepository(envConfig)
	tokenHandler := token.NewTokenHandler(applicationRepo, envConfig)
	tokenController := token.NewTokenController(tokenHandler)

	var shirtRepo shirts.ShirtRepository
	if os.Getenv("MYSQL_HOST") != "" {
		repository := shirts.GetMySqlRepository()
		shirtRepo = shirts.NewSqlRepository(repository)
		shirthttp.RegisterCheck(health.Config{
			Name:    "mysql",
			Timeout: 5 * time.Second,
			Check: func(ctx context.Context) error {
				return repository.Ping(ctx)
			},
		})
		logger.Infof("Connected to mysql as storage backend.")
	} else {
		logger.Warn("Shirt repository is kept in-memory. No persistence will be applied, do NEVER use this for anything but development or testing!")
		shirtRepo = shirts.NewInMemoryRepository()
	}
	shirtController := shirts.NewShirtController(shirtRepo)

	gate := authz.NewClaimGate(tokenHandler, envConfig)
	readAccess := gate.RequireClaims(model.RequiredClaim{Type: "read", Value: "true"})
	writeAccess := gate.RequireClaims(model.RequiredClaim{Type: "write", Value: "true"})
	deleteAccess := gate.RequireClaims(model.RequiredClaim{Type: "delete", Value: "true"})

	router := gin.New()
	router.Use(logging.GinHandlerFunc(), gin.Recovery())

	metricsMonitor := ginmetrics.GetMonitor()
	metricsMonitor.SetMetricPath("/metrics")
	metricsMonitor.Use(router)

	router.GET("/health", shirthttp.HealthReq)

	// token issuance
	router.POST("/auth", tokenController.IssueToken)

	// shirt crud
	router.GET("/api/shirts", readAccess, shirtController.GetShirts)
	router.GET("/api/shirts/:id", readAccess, shirtController.ShirtExists, shirtController.GetShirtById)
	router.POST("/api/shirts", writeAccess, shirtController.CreateShirt)
	router.PUT("/api/shirts/:id", writeAccess, shirtController.ShirtExists, shirtController.ReplaceShirt)
	router.DELETE("/api/shirts/:id", deleteAccess, shirtController.ShirtExists, shirtController.DeleteShirtById)

	logger.Infof("Starting router at %v", serverPort)
	router.Run(fmt.Sprintf("0.0.0.0:%v", serverPort))
}
