package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/christianotieno/product-catalog/internal/core/domain"
	"github.com/christianotieno/product-catalog/internal/core/ports"
)

var productColumns = []string{
	"id", "name", "description", "price", "category",
	"stock_quantity", "created_at", "updated_at",
}

const productReturning = "RETURNING id, name, description, price, category, stock_quantity, created_at, updated_at"

// ProductRepository is the PostgreSQL-backed catalog store. All dynamic
// queries (search, pagination) are composed with squirrel so that every
// filter is parameterized.
type ProductRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanProduct(row sq.RowScanner) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Category,
		&p.StockQuantity, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) collect(ctx context.Context, query string, args []any) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	query, args, err := r.builder.
		Insert("products").
		Columns("name", "description", "price", "category", "stock_quantity", "created_at", "updated_at").
		Values(p.Name, p.Description, p.Price, p.Category, p.StockQuantity, p.CreatedAt, p.UpdatedAt).
		Suffix(productReturning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert product: %w", err)
	}

	created, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return created, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query, args, err := r.builder.
		Select(productColumns...).
		From("products").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find product: %w", err)
	}

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product by id: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	query, args, err := r.builder.
		Select(productColumns...).
		From("products").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list products: %w", err)
	}
	return r.collect(ctx, query, args)
}

// FindPage returns one page of products plus the total row count, so the
// service can derive totalPages/first/last.
func (r *ProductRepository) FindPage(ctx context.Context, req ports.PageRequest) (*ports.ProductPage, error) {
	countQuery, countArgs, err := r.builder.
		Select("COUNT(*)").
		From("products").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count products: %w", err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	direction := "ASC"
	if req.SortDesc {
		direction = "DESC"
	}

	query, args, err := r.builder.
		Select(productColumns...).
		From("products").
		OrderBy(req.SortBy + " " + direction).
		Limit(uint64(req.Size)).
		Offset(uint64(req.Page) * uint64(req.Size)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build page products: %w", err)
	}

	items, err := r.collect(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return &ports.ProductPage{Items: items, TotalElements: total}, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	query, args, err := r.builder.
		Update("products").
		Set("name", p.Name).
		Set("description", p.Description).
		Set("price", p.Price).
		Set("category", p.Category).
		Set("stock_quantity", p.StockQuantity).
		Set("updated_at", p.UpdatedAt).
		Where(sq.Eq{"id": p.ID}).
		Suffix(productReturning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update product: %w", err)
	}

	updated, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return updated, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.builder.
		Delete("products").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete product: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// escapeLike neutralizes LIKE metacharacters so a literal "%" or "_" in
// the criteria matches itself instead of acting as a wildcard.
var escapeLike = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search composes the present criteria into ANDed WHERE clauses. Absent
// fields impose no constraint; an inverted price range matches no rows.
func (r *ProductRepository) Search(ctx context.Context, criteria ports.SearchCriteria) ([]*domain.Product, error) {
	q := r.builder.
		Select(productColumns...).
		From("products")

	if criteria.Name != "" {
		q = q.Where(sq.ILike{"name": "%" + escapeLike.Replace(criteria.Name) + "%"})
	}
	if criteria.Category != "" {
		q = q.Where(sq.Eq{"category": criteria.Category})
	}
	if criteria.MinPrice != nil {
		q = q.Where(sq.GtOrEq{"price": *criteria.MinPrice})
	}
	if criteria.MaxPrice != nil {
		q = q.Where(sq.LtOrEq{"price": *criteria.MaxPrice})
	}
	if criteria.InStockOnly {
		q = q.Where(sq.Gt{"stock_quantity": 0})
	}

	query, args, err := q.OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search products: %w", err)
	}
	return r.collect(ctx, query, args)
}

func (r *ProductRepository) FindByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	query, args, err := r.builder.
		Select(productColumns...).
		From("products").
		Where(sq.Eq{"category": category}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build products by category: %w", err)
	}
	return r.collect(ctx, query, args)
}

func (r *ProductRepository) FindLowStock(ctx context.Context, threshold int) ([]*domain.Product, error) {
	query, args, err := r.builder.
		Select(productColumns...).
		From("products").
		Where(sq.Lt{"stock_quantity": threshold}).
		OrderBy("stock_quantity").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build low stock products: %w", err)
	}
	return r.collect(ctx, query, args)
}

// Categories returns the distinct non-empty category names.
func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	query, args, err := r.builder.
		Select("DISTINCT category").
		From("products").
		Where(sq.NotEq{"category": ""}).
		OrderBy("category").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build categories: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}
