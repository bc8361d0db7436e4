package shirts

import (
	"net/http"
	"sort"
	"sync"

	"github.com/wistefan/shirt-store/model"
)

/**
* Quick in-memory implementation of the shirt repository. Should only be used
* for dev and testing, does not have any persistence.
 */
type InMemoryRepo struct {
	mutex    sync.Mutex
	shirtMap map[int]model.Shirt
	nextId   int
}

func NewInMemoryRepository() *InMemoryRepo {
	return &InMemoryRepo{shirtMap: map[int]model.Shirt{}, nextId: 1}
}

func (repo *InMemoryRepo) CreateShirt(shirt model.Shirt) (createdShirt model.Shirt, httpErr model.HttpError) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	shirt.ShirtId = repo.nextId
	repo.nextId++
	repo.shirtMap[shirt.ShirtId] = shirt
	return shirt, httpErr
}

func (repo *InMemoryRepo) GetShirt(id int) (shirt model.Shirt, httpErr model.HttpError) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	shirt, ok := repo.shirtMap[id]
	if !ok {
		return shirt, model.HttpError{Status: http.StatusNotFound, Message: "Shirt not found.", RootError: nil}
	}
	return shirt, httpErr
}

func (repo *InMemoryRepo) GetShirts(limit int, offset int) (shirts []model.Shirt, httpErr model.HttpError) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	ids := []int{}
	for id := range repo.shirtMap {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	shirts = []model.Shirt{}
	for counter, id := range ids {
		if counter < offset {
			continue
		}
		if len(shirts) == limit {
			break
		}
		shirts = append(shirts, repo.shirtMap[id])
	}
	return shirts, httpErr
}

func (repo *InMemoryRepo) UpdateShirt(shirt model.Shirt) (httpErr model.HttpError) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	if _, ok := repo.shirtMap[shirt.ShirtId]; !ok {
		return model.HttpError{Status: http.StatusNotFound, Message: "Shirt not found.", RootError: nil}
	}
	repo.shirtMap[shirt.ShirtId] = shirt
	return httpErr
}

func (repo *InMemoryRepo) DeleteShirt(id int) (shirt model.Shirt, httpErr model.HttpError) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	shirt, ok := repo.shirtMap[id]
	if !ok {
		return shirt, model.HttpError{Status: http.StatusNotFound, Message: "Shirt not found.", RootError: nil}
	}
	delete(repo.shirtMap, id)
	return shirt, httpErr
}

func (repo *InMemoryRepo) FindDuplicate(shirt model.Shirt) (exists bool, httpErr model.HttpError) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	for _, existingShirt := range repo.shirtMap {
		if isDuplicate(shirt, existingShirt) {
			return true, httpErr
		}
	}
	return false, httpErr
}
