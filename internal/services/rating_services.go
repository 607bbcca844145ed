package services

import (
	"context"

	"GameMarketAPI/internal/apperr"
	"GameMarketAPI/internal/model"
	"GameMarketAPI/internal/repository"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 10
)

// RatingService keeps Product.TotalRating equal to the mean of the
// product's live ratings and enforces one rating per (product, user).
type RatingService struct {
	Catalog repository.CatalogStore
}

func NewRatingService(c repository.CatalogStore) *RatingService {
	return &RatingService{Catalog: c}
}

// CreateRating inserts the user's rating and recomputes the aggregate.
// The rating row and the product's totalrating commit together. The
// product row is locked before the rating set is read, so concurrent
// raters of the same product queue up and each recompute sees the full
// committed set, never a stale snapshot of it.
func (s *RatingService) CreateRating(ctx context.Context, userID uuid.UUID, productID int64, value int) (*model.ProductRating, error) {
	if value < MinRating || value > MaxRating {
		return nil, apperr.Newf(apperr.InvalidData, "Rating must be between %d and %d.", MinRating, MaxRating)
	}

	var created *model.ProductRating
	err := s.Catalog.InTx(ctx, func(tx repository.CatalogStore) error {
		product, err := tx.GetProductForUpdate(ctx, productID, false)
		if err != nil {
			return err
		}
		if product == nil {
			return apperr.Newf(apperr.NotFound, "Product with id %d was not found.", productID)
		}

		ratings, err := tx.GetRatings(ctx, productID)
		if err != nil {
			return err
		}
		for _, r := range ratings {
			if r.UserID == userID {
				return apperr.New(apperr.InvalidOperation, "You have already reviewed this product.")
			}
		}

		rating := &model.ProductRating{
			ID:        uuid.New(),
			ProductID: productID,
			UserID:    userID,
			Rating:    value,
		}
		if err := tx.InsertRating(ctx, rating); err != nil {
			return err
		}

		sum := value
		for _, r := range ratings {
			sum += r.Rating
		}
		product.TotalRating = float64(sum) / float64(len(ratings)+1)

		if err := tx.SaveProduct(ctx, product); err != nil {
			return err
		}
		created = rating
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// DeleteRating removes the user's rating for the product and recomputes
// the aggregate from the remaining set. An emptied set pins the aggregate
// to 0 rather than dividing by the zero count. The only precondition is
// that the rating exists; soft-deleting the product does not strand the
// ratings left on it.
func (s *RatingService) DeleteRating(ctx context.Context, userID uuid.UUID, productID int64) error {
	return s.Catalog.InTx(ctx, func(tx repository.CatalogStore) error {
		product, err := tx.GetProductForUpdate(ctx, productID, true)
		if err != nil {
			return err
		}
		if product == nil {
			return apperr.New(apperr.NotFound, "Rating was not found.")
		}

		ratings, err := tx.GetRatings(ctx, productID)
		if err != nil {
			return err
		}

		var found *model.ProductRating
		for i := range ratings {
			if ratings[i].UserID == userID {
				found = &ratings[i]
				break
			}
		}
		if found == nil {
			return apperr.New(apperr.NotFound, "Rating was not found.")
		}

		if err := tx.DeleteRating(ctx, found.ID); err != nil {
			return err
		}

		sum := 0
		count := 0
		for _, r := range ratings {
			if r.ID == found.ID {
				continue
			}
			sum += r.Rating
			count++
		}
		if count == 0 {
			product.TotalRating = 0
		} else {
			product.TotalRating = float64(sum) / float64(count)
		}

		return tx.SaveProduct(ctx, product)
	})
}
