package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking is a buyer's order. FoodID usually points at a Food listing but
// nothing enforces it.
type Booking struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	BuyerEmail string             `json:"buyerEmail" bson:"buyerEmail"`
	BuyerName  string             `json:"buyerName,omitempty" bson:"buyerName,omitempty"`
	FoodID     string             `json:"foodId,omitempty" bson:"foodId,omitempty"`
	Quantity   int                `json:"quantity,omitempty" bson:"quantity,omitempty"`
	Extra      map[string]any     `json:"-" bson:",inline"`
}

var bookingFields = map[string]struct{}{
	FieldID:      {},
	"buyerEmail": {},
	"buyerName":  {},
	"foodId":     {},
	"quantity":   {},
}

func (b Booking) MarshalJSON() ([]byte, error) {
	type known Booking
	return mergeJSON(known(b), b.Extra)
}

func (b *Booking) UnmarshalJSON(data []byte) error {
	type known Booking
	var k known
	if err := json.Unmarshal(data, &k); err != nil {
		return err
	}
	extra, err := extraFields(data, bookingFields)
	if err != nil {
		return err
	}
	*b = Booking(k)
	b.Extra = extra
	return nil
}

func (b Booking) Clone() Booking {
	b.Extra = cloneExtra(b.Extra)
	return b
}
