package services_test

import (
	"context"
	"sort"
	"strings"

	"GameMarketAPI/internal/apperr"
	"GameMarketAPI/internal/model"
	"GameMarketAPI/internal/repository"

	"github.com/google/uuid"
)

// fakeCatalog is an in-memory CatalogStore for service tests.
type fakeCatalog struct {
	products     map[int64]*model.Product
	ratings      map[uuid.UUID]model.ProductRating
	nextID       int64
	productLocks int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		products: map[int64]*model.Product{},
		ratings:  map[uuid.UUID]model.ProductRating{},
	}
}

func (f *fakeCatalog) addProduct(p model.Product) *model.Product {
	if p.ID == 0 {
		f.nextID++
		p.ID = f.nextID
	} else if p.ID > f.nextID {
		f.nextID = p.ID
	}
	cp := p
	f.products[p.ID] = &cp
	return &cp
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	p, ok := f.products[id]
	if !ok || p.IsDeleted {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeCatalog) GetProductForUpdate(ctx context.Context, id int64, includeDeleted bool) (*model.Product, error) {
	f.productLocks++
	p, ok := f.products[id]
	if !ok || (!includeDeleted && p.IsDeleted) {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeCatalog) CreateProduct(ctx context.Context, p *model.Product) (int64, error) {
	f.nextID++
	p.ID = f.nextID
	cp := *p
	f.products[p.ID] = &cp
	return p.ID, nil
}

func (f *fakeCatalog) SaveProduct(ctx context.Context, p *model.Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return apperr.Newf(apperr.NotFound, "Product with id %d does not exist.", p.ID)
	}
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeCatalog) GetRatings(ctx context.Context, productID int64) ([]model.ProductRating, error) {
	var list []model.ProductRating
	for _, r := range f.ratings {
		if r.ProductID == productID {
			list = append(list, r)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID.String() < list[j].ID.String() })
	return list, nil
}

func (f *fakeCatalog) InsertRating(ctx context.Context, r *model.ProductRating) error {
	f.ratings[r.ID] = *r
	return nil
}

func (f *fakeCatalog) DeleteRating(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.ratings[id]; !ok {
		return apperr.New(apperr.NotFound, "Rating was not found.")
	}
	delete(f.ratings, id)
	return nil
}

func (f *fakeCatalog) QueryProducts(ctx context.Context, q model.ProductQuery) ([]model.Product, int, error) {
	var filtered []model.Product
	for _, p := range f.products {
		if p.IsDeleted {
			continue
		}
		if q.Genre != "" && p.Genre != q.Genre {
			continue
		}
		if q.MinAge > 0 && int(p.Rating) < q.MinAge {
			continue
		}
		filtered = append(filtered, *p)
	}

	asc := strings.EqualFold(q.SortDirection, "asc")
	byPrice := strings.EqualFold(q.SortBy, "price")
	sort.SliceStable(filtered, func(i, j int) bool {
		var less bool
		if byPrice {
			less = filtered[i].Price < filtered[j].Price
		} else {
			less = filtered[i].TotalRating < filtered[j].TotalRating
		}
		if asc {
			return less
		}
		return !less
	})

	total := len(filtered)
	skip := (q.Page - 1) * q.PageSize
	if skip >= total {
		return nil, total, nil
	}
	end := skip + q.PageSize
	if end > total {
		end = total
	}
	return filtered[skip:end], total, nil
}

func (f *fakeCatalog) SearchProducts(ctx context.Context, term string, limit, offset int) ([]model.Product, error) {
	var matched []model.Product
	for _, p := range f.products {
		if p.IsDeleted {
			continue
		}
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(term)) {
			matched = append(matched, *p)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (f *fakeCatalog) TopPlatforms(ctx context.Context, limit int) ([]model.TopPlatform, error) {
	counts := map[model.Platform]int{}
	for _, p := range f.products {
		if !p.IsDeleted {
			counts[p.Platform]++
		}
	}
	var list []model.TopPlatform
	for platform, n := range counts {
		list = append(list, model.TopPlatform{Platform: platform.String(), ProductCount: n})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ProductCount > list[j].ProductCount })
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (f *fakeCatalog) InTx(ctx context.Context, fn func(repository.CatalogStore) error) error {
	return fn(f)
}

// fakeOrders is an in-memory OrderStore for service tests.
type fakeOrders struct {
	orders     map[int64]*model.Order
	nextID     int64
	orderLocks int
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{orders: map[int64]*model.Order{}}
}

func copyOrder(o *model.Order) *model.Order {
	cp := *o
	cp.Items = append([]model.OrderItem(nil), o.Items...)
	return &cp
}

func (f *fakeOrders) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	return copyOrder(o), nil
}

func (f *fakeOrders) GetOrderForUpdate(ctx context.Context, id int64) (*model.Order, error) {
	f.orderLocks++
	return f.GetOrder(ctx, id)
}

func (f *fakeOrders) SaveOrder(ctx context.Context, o *model.Order) error {
	if o.ID == 0 {
		f.nextID++
		o.ID = f.nextID
	}
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}
	f.orders[o.ID] = copyOrder(o)
	return nil
}

func (f *fakeOrders) DeleteOrder(ctx context.Context, o *model.Order) error {
	delete(f.orders, o.ID)
	return nil
}

func (f *fakeOrders) ListOrdersForUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	var list []model.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			list = append(list, *copyOrder(o))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (f *fakeOrders) InTx(ctx context.Context, fn func(repository.OrderStore) error) error {
	return fn(f)
}
