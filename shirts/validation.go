package shirts

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/wistefan/shirt-store/model"
)

/**
* Minimum sizes per gender. Only "men" and "women" carry a sizing rule, any
* other gender is accepted as-is.
 */
const minSizeMen = 8
const minSizeWomen = 6

func validateRequiredFields(shirt model.Shirt) (httpErr model.HttpError) {
	if shirt.Brand == "" {
		return model.HttpError{Status: http.StatusBadRequest, Message: "The field brand is required.", RootError: nil}
	}
	if shirt.Color == "" {
		return model.HttpError{Status: http.StatusBadRequest, Message: "The field color is required.", RootError: nil}
	}
	if shirt.Gender == "" {
		return model.HttpError{Status: http.StatusBadRequest, Message: "The field gender is required.", RootError: nil}
	}
	return httpErr
}

/**
* A shirt for men has to be at least size 8, a shirt for women at least size 6.
* Without a size or a gender, no rule applies.
 */
func validateSizing(shirt model.Shirt) (httpErr model.HttpError) {
	if shirt.Size == nil || shirt.Gender == "" {
		return httpErr
	}
	if strings.EqualFold(shirt.Gender, "men") && *shirt.Size < minSizeMen {
		return model.HttpError{Status: http.StatusBadRequest, Message: fmt.Sprintf("The field size has to be at least %d for men.", minSizeMen), RootError: nil}
	}
	if strings.EqualFold(shirt.Gender, "women") && *shirt.Size < minSizeWomen {
		return model.HttpError{Status: http.StatusBadRequest, Message: fmt.Sprintf("The field size has to be at least %d for women.", minSizeWomen), RootError: nil}
	}
	return httpErr
}

/**
* Shirts count as duplicates when brand, gender and color match
* case-insensitive and the size is equal.
 */
func isDuplicate(shirt model.Shirt, existingShirt model.Shirt) bool {
	if !strings.EqualFold(shirt.Brand, existingShirt.Brand) {
		return false
	}
	if !strings.EqualFold(shirt.Gender, existingShirt.Gender) {
		return false
	}
	if !strings.EqualFold(shirt.Color, existingShirt.Color) {
		return false
	}
	return equalSize(shirt.Size, existingShirt.Size)
}

func equalSize(size *int, otherSize *int) bool {
	if size == nil || otherSize == nil {
		return size == otherSize
	}
	return *size == *otherSize
}
