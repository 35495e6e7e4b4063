package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soundzyworld/site-backend/pkg/sitecontent"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements sitecontent.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) sitecontent.Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) sitecontent.Repository {
	return &Repository{db: pool}
}

// Error handling helper
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if strings.Contains(pgErr.ConstraintName, "slug") {
				return sitecontent.ErrDuplicateSlug
			}
			return fmt.Errorf("duplicate entry")
		case "23503": // foreign_key_violation
			return fmt.Errorf("referenced record not found")
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

// Collection operations

func (r *Repository) GetCollection(ctx context.Context, key string) (*sitecontent.ContentCollection, error) {
	query := `
        SELECT key, description, items, updated_at
        FROM site_settings WHERE key = $1`

	var col sitecontent.ContentCollection
	var items []byte
	err := r.db.QueryRow(ctx, query, key).Scan(&col.Key, &col.Description, &items, &col.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sitecontent.ErrCollectionNotFound
		}
		return nil, r.handlePostgresError("get collection", err)
	}

	col.Items = sitecontent.CoerceRaw(items)
	return &col, nil
}

func (r *Repository) ListCollections(ctx context.Context, keys []string) ([]*sitecontent.ContentCollection, error) {
	query := `
        SELECT key, description, items, updated_at
        FROM site_settings WHERE key = ANY($1)`

	rows, err := r.db.Query(ctx, query, keys)
	if err != nil {
		return nil, r.handlePostgresError("list collections", err)
	}
	defer rows.Close()

	byKey := make(map[string]*sitecontent.ContentCollection)
	for rows.Next() {
		var col sitecontent.ContentCollection
		var items []byte
		if err := rows.Scan(&col.Key, &col.Description, &items, &col.UpdatedAt); err != nil {
			return nil, err
		}
		col.Items = sitecontent.CoerceRaw(items)
		byKey[col.Key] = &col
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Preserve the requested key order.
	var result []*sitecontent.ContentCollection
	for _, key := range keys {
		if col, ok := byKey[key]; ok {
			result = append(result, col)
		}
	}
	return result, nil
}

func (r *Repository) SaveCollection(ctx context.Context, col *sitecontent.ContentCollection) error {
	items, err := json.Marshal(col.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}

	query := `
		INSERT INTO site_settings (key, description, items, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE SET
			description = EXCLUDED.description,
			items = EXCLUDED.items,
			updated_at = EXCLUDED.updated_at`

	_, err = r.db.Exec(ctx, query, col.Key, col.Description, items, col.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("save collection", err)
	}
	return nil
}

// Lead operations

func (r *Repository) CreateLead(ctx context.Context, lead *sitecontent.Lead) error {
	query := `
		INSERT INTO leads (
			id, name, email, phone, service_type, event_date, budget_range,
			message, status, priority, source, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.Exec(ctx, query,
		lead.ID, lead.Name, lead.Email, lead.Phone, lead.ServiceType,
		lead.EventDate, lead.BudgetRange, lead.Message, lead.Status,
		lead.Priority, lead.Source, lead.CreatedAt, lead.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("create lead", err)
	}
	return nil
}

func (r *Repository) GetLead(ctx context.Context, id uuid.UUID) (*sitecontent.Lead, error) {
	query := `
        SELECT id, name, email, phone, service_type, event_date, budget_range,
               message, status, priority, source, created_at, updated_at
        FROM leads WHERE id = $1`

	var lead sitecontent.Lead
	err := r.db.QueryRow(ctx, query, id).Scan(
		&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &lead.ServiceType,
		&lead.EventDate, &lead.BudgetRange, &lead.Message, &lead.Status,
		&lead.Priority, &lead.Source, &lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sitecontent.ErrLeadNotFound
		}
		return nil, r.handlePostgresError("get lead", err)
	}
	return &lead, nil
}

func (r *Repository) UpdateLead(ctx context.Context, lead *sitecontent.Lead) error {
	query := `
		UPDATE leads SET
			name = $2, email = $3, phone = $4, service_type = $5, event_date = $6,
			budget_range = $7, message = $8, status = $9, priority = $10,
			source = $11, updated_at = $12
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		lead.ID, lead.Name, lead.Email, lead.Phone, lead.ServiceType,
		lead.EventDate, lead.BudgetRange, lead.Message, lead.Status,
		lead.Priority, lead.Source, lead.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update lead", err)
	}
	if tag.RowsAffected() == 0 {
		return sitecontent.ErrLeadNotFound
	}
	return nil
}

func (r *Repository) DeleteLead(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete lead", err)
	}
	if tag.RowsAffected() == 0 {
		return sitecontent.ErrLeadNotFound
	}
	return nil
}

func (r *Repository) ListLeads(ctx context.Context) ([]*sitecontent.Lead, error) {
	query := `
        SELECT id, name, email, phone, service_type, event_date, budget_range,
               message, status, priority, source, created_at, updated_at
        FROM leads ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, r.handlePostgresError("list leads", err)
	}
	defer rows.Close()

	var result []*sitecontent.Lead
	for rows.Next() {
		var lead sitecontent.Lead
		if err := rows.Scan(
			&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &lead.ServiceType,
			&lead.EventDate, &lead.BudgetRange, &lead.Message, &lead.Status,
			&lead.Priority, &lead.Source, &lead.CreatedAt, &lead.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, &lead)
	}
	return result, rows.Err()
}

func (r *Repository) CountLeadsSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM leads WHERE created_at >= $1`, since).Scan(&count)
	if err != nil {
		return 0, r.handlePostgresError("count leads", err)
	}
	return count, nil
}

// Product operations

func (r *Repository) SaveProduct(ctx context.Context, product *sitecontent.Product) error {
	query := `
		INSERT INTO products (
			id, name, description, category, price_cents, original_price_cents,
			stock_quantity, image_url, rating, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			price_cents = EXCLUDED.price_cents,
			original_price_cents = EXCLUDED.original_price_cents,
			stock_quantity = EXCLUDED.stock_quantity,
			image_url = EXCLUDED.image_url,
			rating = EXCLUDED.rating,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Category,
		product.PriceCents, product.OriginalPriceCents, product.StockQuantity,
		product.ImageURL, product.Rating, product.IsActive,
		product.CreatedAt, product.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("save product", err)
	}
	return nil
}

func (r *Repository) GetProduct(ctx context.Context, id uuid.UUID) (*sitecontent.Product, error) {
	query := `
        SELECT id, name, description, category, price_cents, original_price_cents,
               stock_quantity, image_url, rating, is_active, created_at, updated_at
        FROM products WHERE id = $1`

	var p sitecontent.Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &p.PriceCents,
		&p.OriginalPriceCents, &p.StockQuantity, &p.ImageURL, &p.Rating,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sitecontent.ErrProductNotFound
		}
		return nil, r.handlePostgresError("get product", err)
	}
	return &p, nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete product", err)
	}
	if tag.RowsAffected() == 0 {
		return sitecontent.ErrProductNotFound
	}
	return nil
}

func (r *Repository) ListProducts(ctx context.Context, activeOnly bool) ([]*sitecontent.Product, error) {
	query := `
        SELECT id, name, description, category, price_cents, original_price_cents,
               stock_quantity, image_url, rating, is_active, created_at, updated_at
        FROM products`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, r.handlePostgresError("list products", err)
	}
	defer rows.Close()

	var result []*sitecontent.Product
	for rows.Next() {
		var p sitecontent.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Category, &p.PriceCents,
			&p.OriginalPriceCents, &p.StockQuantity, &p.ImageURL, &p.Rating,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, &p)
	}
	return result, rows.Err()
}

func (r *Repository) CountLowStock(ctx context.Context, threshold int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE is_active = TRUE AND stock_quantity < $1`,
		threshold).Scan(&count)
	if err != nil {
		return 0, r.handlePostgresError("count low stock", err)
	}
	return count, nil
}

// Announcement operations

func (r *Repository) SaveAnnouncement(ctx context.Context, a *sitecontent.Announcement) error {
	query := `
		INSERT INTO announcements (
			id, title, content, type, priority, status, target_audience,
			expires_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			type = EXCLUDED.type,
			priority = EXCLUDED.priority,
			status = EXCLUDED.status,
			target_audience = EXCLUDED.target_audience,
			expires_at = EXCLUDED.expires_at,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(ctx, query,
		a.ID, a.Title, a.Content, a.Type, a.Priority, a.Status,
		a.TargetAudience, a.ExpiresAt, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("save announcement", err)
	}
	return nil
}

func (r *Repository) GetAnnouncement(ctx context.Context, id uuid.UUID) (*sitecontent.Announcement, error) {
	query := `
        SELECT id, title, content, type, priority, status, target_audience,
               expires_at, created_at, updated_at
        FROM announcements WHERE id = $1`

	var a sitecontent.Announcement
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Title, &a.Content, &a.Type, &a.Priority, &a.Status,
		&a.TargetAudience, &a.ExpiresAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sitecontent.ErrAnnouncementNotFound
		}
		return nil, r.handlePostgresError("get announcement", err)
	}
	return &a, nil
}

func (r *Repository) DeleteAnnouncement(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete announcement", err)
	}
	if tag.RowsAffected() == 0 {
		return sitecontent.ErrAnnouncementNotFound
	}
	return nil
}

func (r *Repository) ListAnnouncements(ctx context.Context, publishedOnly bool) ([]*sitecontent.Announcement, error) {
	query := `
        SELECT id, title, content, type, priority, status, target_audience,
               expires_at, created_at, updated_at
        FROM announcements`
	if publishedOnly {
		query += ` WHERE status = 'published'`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, r.handlePostgresError("list announcements", err)
	}
	defer rows.Close()

	var result []*sitecontent.Announcement
	for rows.Next() {
		var a sitecontent.Announcement
		if err := rows.Scan(
			&a.ID, &a.Title, &a.Content, &a.Type, &a.Priority, &a.Status,
			&a.TargetAudience, &a.ExpiresAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, &a)
	}
	return result, rows.Err()
}

// DJ tape operations

func (r *Repository) SaveTape(ctx context.Context, tape *sitecontent.DJTape) error {
	query := `
		INSERT INTO dj_tapes (
			id, title, artist_name, description, audio_url, cover_image,
			duration, genre, tags, play_count, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			artist_name = EXCLUDED.artist_name,
			description = EXCLUDED.description,
			audio_url = EXCLUDED.audio_url,
			cover_image = EXCLUDED.cover_image,
			duration = EXCLUDED.duration,
			genre = EXCLUDED.genre,
			tags = EXCLUDED.tags,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(ctx, query,
		tape.ID, tape.Title, tape.ArtistName, tape.Description, tape.AudioURL,
		tape.CoverImage, tape.Duration, tape.Genre, tape.Tags, tape.PlayCount,
		tape.Status, tape.CreatedAt, tape.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("save tape", err)
	}
	return nil
}

func (r *Repository) GetTape(ctx context.Context, id uuid.UUID) (*sitecontent.DJTape, error) {
	query := `
        SELECT id, title, artist_name, description, audio_url, cover_image,
               duration, genre, tags, play_count, status, created_at, updated_at
        FROM dj_tapes WHERE id = $1`

	var tape sitecontent.DJTape
	err := r.db.QueryRow(ctx, query, id).Scan(
		&tape.ID, &tape.Title, &tape.ArtistName, &tape.Description,
		&tape.AudioURL, &tape.CoverImage, &tape.Duration, &tape.Genre,
		&tape.Tags, &tape.PlayCount, &tape.Status, &tape.CreatedAt, &tape.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sitecontent.ErrTapeNotFound
		}
		return nil, r.handlePostgresError("get tape", err)
	}
	return &tape, nil
}

func (r *Repository) DeleteTape(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM dj_tapes WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete tape", err)
	}
	if tag.RowsAffected() == 0 {
		return sitecontent.ErrTapeNotFound
	}
	return nil
}

func (r *Repository) ListTapes(ctx context.Context, includeArchived bool) ([]*sitecontent.DJTape, error) {
	query := `
        SELECT id, title, artist_name, description, audio_url, cover_image,
               duration, genre, tags, play_count, status, created_at, updated_at
        FROM dj_tapes`
	if !includeArchived {
		query += ` WHERE status <> 'archived'`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, r.handlePostgresError("list tapes", err)
	}
	defer rows.Close()

	var result []*sitecontent.DJTape
	for rows.Next() {
		var tape sitecontent.DJTape
		if err := rows.Scan(
			&tape.ID, &tape.Title, &tape.ArtistName, &tape.Description,
			&tape.AudioURL, &tape.CoverImage, &tape.Duration, &tape.Genre,
			&tape.Tags, &tape.PlayCount, &tape.Status, &tape.CreatedAt, &tape.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, &tape)
	}
	return result, rows.Err()
}

func (r *Repository) IncrementTapePlays(ctx context.Context, id uuid.UUID) (int64, error) {
	var plays int64
	err := r.db.QueryRow(ctx,
		`UPDATE dj_tapes SET play_count = play_count + 1 WHERE id = $1 RETURNING play_count`,
		id).Scan(&plays)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, sitecontent.ErrTapeNotFound
		}
		return 0, r.handlePostgresError("increment tape plays", err)
	}
	return plays, nil
}

// Blog post operations

func (r *Repository) SavePost(ctx context.Context, post *sitecontent.BlogPost) error {
	query := `
		INSERT INTO blog_posts (
			id, title, slug, excerpt, body, cover_image, tags,
			published, published_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			slug = EXCLUDED.slug,
			excerpt = EXCLUDED.excerpt,
			body = EXCLUDED.body,
			cover_image = EXCLUDED.cover_image,
			tags = EXCLUDED.tags,
			published = EXCLUDED.published,
			published_at = EXCLUDED.published_at,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(ctx, query,
		post.ID, post.Title, post.Slug, post.Excerpt, post.Body,
		post.CoverImage, post.Tags, post.Published, post.PublishedAt,
		post.CreatedAt, post.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("save post", err)
	}
	return nil
}

func (r *Repository) GetPost(ctx context.Context, id uuid.UUID) (*sitecontent.BlogPost, error) {
	return r.getPost(ctx, `WHERE id = $1`, id)
}

func (r *Repository) GetPostBySlug(ctx context.Context, slug string) (*sitecontent.BlogPost, error) {
	return r.getPost(ctx, `WHERE slug = $1`, slug)
}

func (r *Repository) getPost(ctx context.Context, where string, arg interface{}) (*sitecontent.BlogPost, error) {
	query := `
        SELECT id, title, slug, excerpt, body, cover_image, tags,
               published, published_at, created_at, updated_at
        FROM blog_posts ` + where

	var post sitecontent.BlogPost
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&post.ID, &post.Title, &post.Slug, &post.Excerpt, &post.Body,
		&post.CoverImage, &post.Tags, &post.Published, &post.PublishedAt,
		&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sitecontent.ErrPostNotFound
		}
		return nil, r.handlePostgresError("get post", err)
	}
	return &post, nil
}

func (r *Repository) DeletePost(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete post", err)
	}
	if tag.RowsAffected() == 0 {
		return sitecontent.ErrPostNotFound
	}
	return nil
}

func (r *Repository) ListPosts(ctx context.Context, publishedOnly bool) ([]*sitecontent.BlogPost, error) {
	query := `
        SELECT id, title, slug, excerpt, body, cover_image, tags,
               published, published_at, created_at, updated_at
        FROM blog_posts`
	if publishedOnly {
		query += ` WHERE published = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, r.handlePostgresError("list posts", err)
	}
	defer rows.Close()

	var result []*sitecontent.BlogPost
	for rows.Next() {
		var post sitecontent.BlogPost
		if err := rows.Scan(
			&post.ID, &post.Title, &post.Slug, &post.Excerpt, &post.Body,
			&post.CoverImage, &post.Tags, &post.Published, &post.PublishedAt,
			&post.CreatedAt, &post.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, &post)
	}
	return result, rows.Err()
}

// Order operations

func (r *Repository) CreateOrder(ctx context.Context, order *sitecontent.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}

	query := `
		INSERT INTO orders (
			id, customer_name, customer_email, items, total_cents,
			status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.db.Exec(ctx, query,
		order.ID, order.CustomerName, order.CustomerEmail, items,
		order.TotalCents, order.Status, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("create order", err)
	}
	return nil
}

func (r *Repository) ListOrders(ctx context.Context) ([]*sitecontent.Order, error) {
	return r.listOrders(ctx, `ORDER BY created_at DESC`)
}

func (r *Repository) OrdersSince(ctx context.Context, since time.Time) ([]*sitecontent.Order, error) {
	return r.listOrders(ctx, `WHERE created_at >= $1 ORDER BY created_at DESC`, since)
}

func (r *Repository) listOrders(ctx context.Context, tail string, args ...interface{}) ([]*sitecontent.Order, error) {
	query := `
        SELECT id, customer_name, customer_email, items, total_cents,
               status, created_at, updated_at
        FROM orders ` + tail

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, r.handlePostgresError("list orders", err)
	}
	defer rows.Close()

	var result []*sitecontent.Order
	for rows.Next() {
		var order sitecontent.Order
		var items []byte
		if err := rows.Scan(
			&order.ID, &order.CustomerName, &order.CustomerEmail, &items,
			&order.TotalCents, &order.Status, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, err
		}
		if len(items) > 0 {
			if err := json.Unmarshal(items, &order.Items); err != nil {
				return nil, fmt.Errorf("unmarshal order items: %w", err)
			}
		}
		result = append(result, &order)
	}
	return result, rows.Err()
}

// Chat operations

func (r *Repository) GetSession(ctx context.Context, sessionID string) (*sitecontent.ChatSession, error) {
	query := `
        SELECT id, session_id, visitor_info, status, last_activity, message_count, created_at
        FROM chat_sessions WHERE session_id = $1`

	var session sitecontent.ChatSession
	var visitorInfo []byte
	err := r.db.QueryRow(ctx, query, sessionID).Scan(
		&session.ID, &session.SessionID, &visitorInfo, &session.Status,
		&session.LastActivity, &session.MessageCount, &session.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sitecontent.ErrSessionNotFound
		}
		return nil, r.handlePostgresError("get session", err)
	}
	if len(visitorInfo) > 0 {
		if err := json.Unmarshal(visitorInfo, &session.VisitorInfo); err != nil {
			return nil, fmt.Errorf("unmarshal visitor info: %w", err)
		}
	}
	return &session, nil
}

func (r *Repository) SaveSession(ctx context.Context, session *sitecontent.ChatSession) error {
	visitorInfo, err := json.Marshal(session.VisitorInfo)
	if err != nil {
		return fmt.Errorf("marshal visitor info: %w", err)
	}

	query := `
		INSERT INTO chat_sessions (
			id, session_id, visitor_info, status, last_activity, message_count, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (session_id) DO UPDATE SET
			visitor_info = EXCLUDED.visitor_info,
			status = EXCLUDED.status,
			last_activity = EXCLUDED.last_activity,
			message_count = EXCLUDED.message_count`

	_, err = r.db.Exec(ctx, query,
		session.ID, session.SessionID, visitorInfo, session.Status,
		session.LastActivity, session.MessageCount, session.CreatedAt)
	if err != nil {
		return r.handlePostgresError("save session", err)
	}
	return nil
}

func (r *Repository) DeleteSession(ctx context.Context, sessionID string) error {
	// Messages cascade via the chat_messages session_id foreign key.
	tag, err := r.db.Exec(ctx, `DELETE FROM chat_sessions WHERE session_id = $1`, sessionID)
	if err != nil {
		return r.handlePostgresError("delete session", err)
	}
	if tag.RowsAffected() == 0 {
		return sitecontent.ErrSessionNotFound
	}
	return nil
}

func (r *Repository) ListSessions(ctx context.Context, filters sitecontent.SessionFilters) ([]*sitecontent.ChatSession, error) {
	query := `
        SELECT id, session_id, visitor_info, status, last_activity, message_count, created_at
        FROM chat_sessions`

	var conditions []string
	var args []interface{}
	if filters.Status != nil {
		args = append(args, *filters.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		conditions = append(conditions, fmt.Sprintf("session_id ILIKE $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY last_activity DESC`
	if filters.Limit != nil {
		args = append(args, *filters.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if filters.Offset != nil {
		args = append(args, *filters.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, r.handlePostgresError("list sessions", err)
	}
	defer rows.Close()

	var result []*sitecontent.ChatSession
	for rows.Next() {
		var session sitecontent.ChatSession
		var visitorInfo []byte
		if err := rows.Scan(
			&session.ID, &session.SessionID, &visitorInfo, &session.Status,
			&session.LastActivity, &session.MessageCount, &session.CreatedAt); err != nil {
			return nil, err
		}
		if len(visitorInfo) > 0 {
			if err := json.Unmarshal(visitorInfo, &session.VisitorInfo); err != nil {
				return nil, fmt.Errorf("unmarshal visitor info: %w", err)
			}
		}
		result = append(result, &session)
	}
	return result, rows.Err()
}

func (r *Repository) CountSessionsByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM chat_sessions WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, r.handlePostgresError("count sessions", err)
	}
	return count, nil
}

func (r *Repository) CreateMessage(ctx context.Context, msg *sitecontent.ChatMessage) error {
	metadata, err := json.Marshal(msg.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	query := `
		INSERT INTO chat_messages (id, session_id, direction, message, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.db.Exec(ctx, query,
		msg.ID, msg.SessionID, msg.Direction, msg.Message, metadata, msg.CreatedAt)
	if err != nil {
		return r.handlePostgresError("create message", err)
	}
	return nil
}

func (r *Repository) ListMessages(ctx context.Context, sessionID string) ([]*sitecontent.ChatMessage, error) {
	query := `
        SELECT id, session_id, direction, message, metadata, created_at
        FROM chat_messages WHERE session_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, r.handlePostgresError("list messages", err)
	}
	defer rows.Close()

	var result []*sitecontent.ChatMessage
	for rows.Next() {
		var msg sitecontent.ChatMessage
		var metadata []byte
		if err := rows.Scan(
			&msg.ID, &msg.SessionID, &msg.Direction, &msg.Message,
			&metadata, &msg.CreatedAt); err != nil {
			return nil, err
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &msg.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal metadata: %w", err)
			}
		}
		result = append(result, &msg)
	}
	return result, rows.Err()
}
