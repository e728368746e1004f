package models

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Food is a listing offered by its owner. Fields the client sends that are
// not declared here are kept in Extra and stored/returned unchanged.
type Food struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	FoodName     string             `json:"foodName" bson:"foodName"`
	FoodCategory string             `json:"foodCategory" bson:"foodCategory"`
	OwnerName    string             `json:"ownerName" bson:"ownerName"`
	OwnerEmail   string             `json:"ownerEmail" bson:"ownerEmail"`
	Quantity     int                `json:"quantity" bson:"quantity"`
	SoldCount    int                `json:"soldCount" bson:"soldCount"`
	Extra        map[string]any     `json:"-" bson:",inline"`
}

// Document field names referenced by the stores and services.
const (
	FieldID         = "_id"
	FieldOwnerEmail = "ownerEmail"
	FieldQuantity   = "quantity"
	FieldSoldCount  = "soldCount"
)

var foodFields = map[string]struct{}{
	FieldID:         {},
	"foodName":      {},
	"foodCategory":  {},
	"ownerName":     {},
	FieldOwnerEmail: {},
	FieldQuantity:   {},
	FieldSoldCount:  {},
}

func (f Food) MarshalJSON() ([]byte, error) {
	type known Food
	return mergeJSON(known(f), f.Extra)
}

func (f *Food) UnmarshalJSON(data []byte) error {
	type known Food
	var k known
	if err := json.Unmarshal(data, &k); err != nil {
		return err
	}
	extra, err := extraFields(data, foodFields)
	if err != nil {
		return err
	}
	*f = Food(k)
	f.Extra = extra
	return nil
}

// Clone returns a copy that shares no map with f.
func (f Food) Clone() Food {
	f.Extra = cloneExtra(f.Extra)
	return f
}

// ErrInvalidField reports an update value that does not fit the declared
// type of a known listing field.
var ErrInvalidField = errors.New("invalid field value")

// foodPatch holds the typed fields a partial update may change.
type foodPatch struct {
	FoodName     *string `json:"foodName"`
	FoodCategory *string `json:"foodCategory"`
	OwnerName    *string `json:"ownerName"`
	Quantity     *int    `json:"quantity"`
	SoldCount    *int    `json:"soldCount"`
}

func (p foodPatch) values() map[string]any {
	out := make(map[string]any)
	if p.FoodName != nil {
		out["foodName"] = *p.FoodName
	}
	if p.FoodCategory != nil {
		out["foodCategory"] = *p.FoodCategory
	}
	if p.OwnerName != nil {
		out["ownerName"] = *p.OwnerName
	}
	if p.Quantity != nil {
		out[FieldQuantity] = *p.Quantity
	}
	if p.SoldCount != nil {
		out[FieldSoldCount] = *p.SoldCount
	}
	return out
}

// NormalizeUpdate checks the known fields of a partial update against the
// Food schema and replaces them with their typed values, so a stored
// listing always decodes. Unknown fields are left untouched.
func NormalizeUpdate(fields map[string]any) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidField, err)
	}
	var patch foodPatch
	if err := json.Unmarshal(data, &patch); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return fmt.Errorf("%w: %s must be %s, got %s", ErrInvalidField, typeErr.Field, typeErr.Type, typeErr.Value)
		}
		return fmt.Errorf("%w: %v", ErrInvalidField, err)
	}

	typed := patch.values()
	for key := range fields {
		if _, known := foodFields[key]; !known || key == FieldID || key == FieldOwnerEmail {
			continue
		}
		v, ok := typed[key]
		if !ok {
			return fmt.Errorf("%w: %s must not be null", ErrInvalidField, key)
		}
		fields[key] = v
	}
	return nil
}

// UpdateQuantityRequest is the body of PUT /quantity/:id.
type UpdateQuantityRequest struct {
	NewQuantity *int `json:"newQuantity" binding:"required,gte=0"`
}

// UpdateSoldCountRequest is the body of PUT /updateSoldCount/:id.
type UpdateSoldCountRequest struct {
	NewSoldCount *int `json:"newSoldCount" binding:"required,gte=0"`
}
