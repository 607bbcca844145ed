package model

import "github.com/google/uuid"

// ProductRating is a single user's rating of a product. At most one row
// exists per (productid, userid) pair.
type ProductRating struct {
	ID        uuid.UUID `json:"id"`
	ProductID int64     `json:"productid"`
	UserID    uuid.UUID `json:"userid"`
	Rating    int       `json:"rating"`
}
