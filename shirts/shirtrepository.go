package shirts

import (
	"github.com/wistefan/shirt-store/logging"
	"github.com/wistefan/shirt-store/model"
)

var logger = logging.Log()

type ShirtRepository interface {
	CreateShirt(shirt model.Shirt) (createdShirt model.Shirt, httpErr model.HttpError)
	GetShirt(id int) (shirt model.Shirt, httpErr model.HttpError)
	GetShirts(limit int, offset int) (shirts []model.Shirt, httpErr model.HttpError)
	UpdateShirt(shirt model.Shirt) (httpErr model.HttpError)
	DeleteShirt(id int) (shirt model.Shirt, httpErr model.HttpError)
	FindDuplicate(shirt model.Shirt) (exists bool, httpErr model.HttpError)
}
