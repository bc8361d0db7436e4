package shirts

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/go-rel/mysql"
	"github.com/go-rel/rel"
	"github.com/go-rel/rel/where"
	_ "github.com/go-sql-driver/mysql"
	"github.com/wistefan/shirt-store/model"
	dbModel "github.com/wistefan/shirt-store/sql"
)

type SqlRepo struct {
	repo rel.Repository
}

/**
* Builds the repository from the MYSQL_* env vars. The connection itself, the
* per-request transactional behaviour and all timeouts are left to the driver.
 */
func GetMySqlRepository() rel.Repository {
	var err error

	mysqlHost := os.Getenv("MYSQL_HOST")
	if mysqlHost == "" {
		logger.Fatalf("No mysql host configured, mysql repo not available.")
	}
	var mySqlPort int
	mysqlPortEnv := os.Getenv("MYSQL_PORT")
	if mysqlPortEnv != "" {
		mySqlPort, err = strconv.Atoi(mysqlPortEnv)
		if err != nil {
			logger.Fatalf("Invalid mysql port configured: %s", mysqlPortEnv)
		}
	} else {
		mySqlPort = 3306
	}
	mysqlDb := os.Getenv("MYSQL_DATABASE")
	if mysqlDb == "" {
		logger.Fatal("No mysql db configured, mysql repo not available.")
	}
	authEnabled := true

	mysqlUser := os.Getenv("MYSQL_USERNAME")
	mysqlPassword := os.Getenv("MYSQL_PASSWORD")

	if mysqlUser == "" {
		logger.Infof("No user configured for mySql, will try to connect as root.")
		mysqlUser = "root"
	}

	if mysqlPassword == "" {
		logger.Infof("No password configured for mySql, will try to connect without credentials.")
		authEnabled = false
	}

	var connectionString string
	if authEnabled {
		connectionString = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s", mysqlUser, mysqlPassword, mysqlHost, mySqlPort, mysqlDb)
	} else {
		connectionString = fmt.Sprintf("%s@tcp(%s:%d)/%s", mysqlUser, mysqlHost, mySqlPort, mysqlDb)
	}

	adapter, err := mysql.Open(connectionString)
	if err != nil {
		logger.Fatalf("Was not able to connect to db: %s:%d/%s as user %s. Err: %v", mysqlHost, mySqlPort, mysqlDb, mysqlUser, err)
	}
	return rel.New(adapter)
}

func NewSqlRepository(repository rel.Repository) *SqlRepo {
	sqlRepo := new(SqlRepo)
	sqlRepo.repo = repository
	return sqlRepo
}

func (sqlRepo *SqlRepo) CreateShirt(shirt model.Shirt) (createdShirt model.Shirt, httpErr model.HttpError) {
	dbShirt := toSqlShirt(shirt)
	// id is assigned by the store
	dbShirt.ID = 0

	err := sqlRepo.repo.Insert(context.TODO(), &dbShirt)
	if err != nil {
		return createdShirt, model.HttpError{Status: http.StatusInternalServerError, Message: "Was not able to store the shirt.", RootError: err}
	}
	return fromSqlShirt(dbShirt), httpErr
}

func (sqlRepo *SqlRepo) GetShirt(id int) (shirt model.Shirt, httpErr model.HttpError) {
	var dbShirt dbModel.Shirt

	err := sqlRepo.repo.Find(context.TODO(), &dbShirt, where.Eq("id", id))
	if err != nil {
		return shirt, model.HttpError{Status: http.StatusNotFound, Message: fmt.Sprintf("Shirt %d not found.", id), RootError: err}
	}
	return fromSqlShirt(dbShirt), httpErr
}

func (sqlRepo *SqlRepo) GetShirts(limit int, offset int) (shirts []model.Shirt, httpErr model.HttpError) {
	var dbShirts []dbModel.Shirt

	err := sqlRepo.repo.FindAll(context.TODO(), &dbShirts, rel.Limit(limit), rel.Offset(offset))
	if err != nil {
		return shirts, model.HttpError{Status: http.StatusInternalServerError, Message: "Was not able to query for shirts.", RootError: err}
	}
	shirts = []model.Shirt{}
	for _, dbShirt := range dbShirts {
		shirts = append(shirts, fromSqlShirt(dbShirt))
	}
	return shirts, httpErr
}

func (sqlRepo *SqlRepo) UpdateShirt(shirt model.Shirt) (httpErr model.HttpError) {
	ctx := context.TODO()

	var dbShirt dbModel.Shirt
	err := sqlRepo.repo.Find(ctx, &dbShirt, where.Eq("id", shirt.ShirtId))
	if err != nil {
		return model.HttpError{Status: http.StatusNotFound, Message: fmt.Sprintf("Shirt %d not found.", shirt.ShirtId), RootError: err}
	}

	dbShirt = toSqlShirt(shirt)
	err = sqlRepo.repo.Update(ctx, &dbShirt)
	if err != nil {
		// the shirt might have been deleted while the request was in flight
		_, refindErr := sqlRepo.GetShirt(shirt.ShirtId)
		if refindErr != (model.HttpError{}) {
			return model.HttpError{Status: http.StatusNotFound, Message: fmt.Sprintf("Shirt %d not found.", shirt.ShirtId), RootError: err}
		}
		return model.HttpError{Status: http.StatusInternalServerError, Message: "Was not able to update the shirt.", RootError: err}
	}
	return httpErr
}

func (sqlRepo *SqlRepo) DeleteShirt(id int) (shirt model.Shirt, httpErr model.HttpError) {
	ctx := context.TODO()

	var dbShirt dbModel.Shirt
	err := sqlRepo.repo.Find(ctx, &dbShirt, where.Eq("id", id))
	if err != nil {
		return shirt, model.HttpError{Status: http.StatusNotFound, Message: fmt.Sprintf("Shirt %d not found.", id), RootError: err}
	}

	err = sqlRepo.repo.Delete(ctx, &dbShirt)
	if err != nil {
		return shirt, model.HttpError{Status: http.StatusInternalServerError, Message: fmt.Sprintf("Was not able to delete shirt %d.", id), RootError: err}
	}
	return fromSqlShirt(dbShirt), httpErr
}

func (sqlRepo *SqlRepo) FindDuplicate(shirt model.Shirt) (exists bool, httpErr model.HttpError) {
	var dbShirts []dbModel.Shirt

	err := sqlRepo.repo.FindAll(context.TODO(), &dbShirts)
	if err != nil {
		return false, model.HttpError{Status: http.StatusInternalServerError, Message: "Was not able to query for shirts.", RootError: err}
	}
	for _, dbShirt := range dbShirts {
		if isDuplicate(shirt, fromSqlShirt(dbShirt)) {
			return true, httpErr
		}
	}
	return false, httpErr
}

func toSqlShirt(shirt model.Shirt) dbModel.Shirt {
	return dbModel.Shirt{ID: shirt.ShirtId, Brand: shirt.Brand, Color: shirt.Color, Size: shirt.Size, Gender: shirt.Gender, Price: shirt.Price}
}

func fromSqlShirt(dbShirt dbModel.Shirt) model.Shirt {
	return model.Shirt{ShirtId: dbShirt.ID, Brand: dbShirt.Brand, Color: dbShirt.Color, Size: dbShirt.Size, Gender: dbShirt.Gender, Price: dbShirt.Price}
}
