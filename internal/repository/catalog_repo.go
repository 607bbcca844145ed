package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"GameMarketAPI/internal/apperr"
	"GameMarketAPI/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CatalogRepository struct {
	DB pgdb
}

func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

// storeErr marks infrastructure failures so the service layer can tell them
// apart from business errors.
func storeErr(op string, err error) error {
	return apperr.Wrap(apperr.Unavailable, op, err)
}

func (r *CatalogRepository) InTx(ctx context.Context, fn func(CatalogStore) error) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return storeErr("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&CatalogRepository{DB: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return storeErr("commit tx", err)
	}
	return nil
}

const productColumns = `id, name, genre, platform, rating, price, totalrating, is_deleted, created_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Genre, &p.Platform, &p.Rating, &p.Price, &p.TotalRating, &p.IsDeleted, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *CatalogRepository) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id=$1 AND is_deleted=false`
	p, err := scanProduct(r.DB.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("get product", err)
	}
	return p, nil
}

// GetProductForUpdate reads the product with FOR UPDATE. Under the default
// read-committed isolation a plain SELECT can observe a rating set another
// transaction is about to change; the row lock makes concurrent aggregate
// recomputes queue up instead.
func (r *CatalogRepository) GetProductForUpdate(ctx context.Context, id int64, includeDeleted bool) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	if !includeDeleted {
		query += ` AND is_deleted=false`
	}
	query += ` FOR UPDATE`
	p, err := scanProduct(r.DB.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("get product for update", err)
	}
	return p, nil
}

func (r *CatalogRepository) CreateProduct(ctx context.Context, p *model.Product) (int64, error) {
	var id int64
	query := `INSERT INTO products (name, genre, platform, rating, price, totalrating, created_at)
		VALUES ($1, $2, $3, $4, $5, 0, $6) RETURNING id`
	if err := r.DB.QueryRow(ctx, query, p.Name, p.Genre, p.Platform, p.Rating, p.Price, time.Now()).Scan(&id); err != nil {
		return 0, storeErr("create product", err)
	}
	p.ID = id
	return id, nil
}

func (r *CatalogRepository) SaveProduct(ctx context.Context, p *model.Product) error {
	query := `UPDATE products SET name=$1, genre=$2, platform=$3, rating=$4, price=$5, totalrating=$6, is_deleted=$7 WHERE id=$8`
	tag, err := r.DB.Exec(ctx, query, p.Name, p.Genre, p.Platform, p.Rating, p.Price, p.TotalRating, p.IsDeleted, p.ID)
	if err != nil {
		return storeErr("save product", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.Newf(apperr.NotFound, "Product with id %d does not exist.", p.ID)
	}
	return nil
}

func (r *CatalogRepository) GetRatings(ctx context.Context, productID int64) ([]model.ProductRating, error) {
	query := `SELECT id, productid, userid, rating FROM product_ratings WHERE productid=$1`
	rows, err := r.DB.Query(ctx, query, productID)
	if err != nil {
		return nil, storeErr("get ratings", err)
	}
	defer rows.Close()

	var list []model.ProductRating
	for rows.Next() {
		var pr model.ProductRating
		if err := rows.Scan(&pr.ID, &pr.ProductID, &pr.UserID, &pr.Rating); err != nil {
			return nil, storeErr("scan rating", err)
		}
		list = append(list, pr)
	}
	return list, nil
}

func (r *CatalogRepository) InsertRating(ctx context.Context, rating *model.ProductRating) error {
	query := `INSERT INTO product_ratings (id, productid, userid, rating) VALUES ($1, $2, $3, $4)`
	if _, err := r.DB.Exec(ctx, query, rating.ID, rating.ProductID, rating.UserID, rating.Rating); err != nil {
		return storeErr("insert rating", err)
	}
	return nil
}

func (r *CatalogRepository) DeleteRating(ctx context.Context, id uuid.UUID) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM product_ratings WHERE id=$1`, id)
	if err != nil {
		return storeErr("delete rating", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "Rating was not found.")
	}
	return nil
}

// QueryProducts expects a query already normalized by the catalog service:
// page/pagesize positive, sortby "rating" or "price", direction "asc" or
// "desc". The total is counted over the filtered set before pagination.
func (r *CatalogRepository) QueryProducts(ctx context.Context, q model.ProductQuery) ([]model.Product, int, error) {
	where := []string{"is_deleted=false"}
	args := []any{}

	if q.Genre != "" {
		args = append(args, q.Genre)
		where = append(where, fmt.Sprintf("genre=$%d", len(args)))
	}
	if q.MinAge > 0 {
		args = append(args, q.MinAge)
		where = append(where, fmt.Sprintf("rating>=$%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, storeErr("count products", err)
	}

	orderCol := "totalrating"
	if strings.EqualFold(q.SortBy, "price") {
		orderCol = "price"
	}
	dir := "DESC"
	if strings.EqualFold(q.SortDirection, "asc") {
		dir = "ASC"
	}

	args = append(args, q.PageSize, (q.Page-1)*q.PageSize)
	query := fmt.Sprintf(`SELECT %s FROM products WHERE %s ORDER BY %s %s, id LIMIT $%d OFFSET $%d`,
		productColumns, cond, orderCol, dir, len(args)-1, len(args))

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, storeErr("query products", err)
	}
	defer rows.Close()

	var list []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Genre, &p.Platform, &p.Rating, &p.Price, &p.TotalRating, &p.IsDeleted, &p.CreatedAt); err != nil {
			return nil, 0, storeErr("scan product", err)
		}
		list = append(list, p)
	}
	return list, total, nil
}

func (r *CatalogRepository) SearchProducts(ctx context.Context, term string, limit, offset int) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE is_deleted=false AND name ILIKE '%' || $1 || '%'
		ORDER BY id LIMIT $2 OFFSET $3`
	rows, err := r.DB.Query(ctx, query, term, limit, offset)
	if err != nil {
		return nil, storeErr("search products", err)
	}
	defer rows.Close()

	var list []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Genre, &p.Platform, &p.Rating, &p.Price, &p.TotalRating, &p.IsDeleted, &p.CreatedAt); err != nil {
			return nil, storeErr("scan product", err)
		}
		list = append(list, p)
	}
	return list, nil
}

func (r *CatalogRepository) TopPlatforms(ctx context.Context, limit int) ([]model.TopPlatform, error) {
	query := `SELECT platform, COUNT(*) FROM products WHERE is_deleted=false
		GROUP BY platform ORDER BY COUNT(*) DESC LIMIT $1`
	rows, err := r.DB.Query(ctx, query, limit)
	if err != nil {
		return nil, storeErr("top platforms", err)
	}
	defer rows.Close()

	var list []model.TopPlatform
	for rows.Next() {
		var platform model.Platform
		var count int
		if err := rows.Scan(&platform, &count); err != nil {
			return nil, storeErr("scan platform", err)
		}
		list = append(list, model.TopPlatform{Platform: platform.String(), ProductCount: count})
	}
	return list, nil
}
