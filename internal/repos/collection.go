package repos

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"suraah/internal/domain"
)

// Fixed-width so lexicographic column order equals chronological order.
const timeLayout = "2006-01-02 15:04:05.000000000"

// Store bundles the typed document collections over one sqlite handle.
type Store struct {
	DB  *sqlx.DB
	hub *hub

	Products   *Collection[domain.Product]
	Categories *Collection[domain.Category]
	Orders     *Collection[domain.Order]
}

func NewStore(db *sqlx.DB) *Store {
	s := &Store{DB: db, hub: newHub()}
	s.Products = NewCollection[domain.Product](s, "products")
	s.Categories = NewCollection[domain.Category](s, "categories")
	s.Orders = NewCollection[domain.Order](s, "orders")
	return s
}

// Collection is a typed facade over the documents table: generic CRUD plus
// change subscriptions, shared by storefront and admin for every entity.
type Collection[T any] struct {
	store *Store
	name  string
}

func NewCollection[T any](s *Store, name string) *Collection[T] {
	return &Collection[T]{store: s, name: name}
}

func (c *Collection[T]) Name() string { return c.name }

var reField = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.]*$`)

type query struct {
	wheres  []whereClause
	orderBy string
	desc    bool
	limit   int
}

type whereClause struct {
	field string
	value any
}

type QueryOption func(*query)

// Where filters on document-field equality. Nested fields use dot paths
// ("customerInfo.email").
func Where(field string, value any) QueryOption {
	return func(q *query) { q.wheres = append(q.wheres, whereClause{field, value}) }
}

func OrderBy(field string) QueryOption {
	return func(q *query) { q.orderBy = field; q.desc = false }
}

func OrderByDesc(field string) QueryOption {
	return func(q *query) { q.orderBy = field; q.desc = true }
}

func Limit(n int) QueryOption {
	return func(q *query) { q.limit = n }
}

func jsonPath(field string) (string, error) {
	if !reField.MatchString(field) {
		return "", fmt.Errorf("bad field name %q", field)
	}
	return "json_extract(data, '$." + field + "')", nil
}

func whereArg(v any) any {
	// sqlite json_extract yields 0/1 for JSON booleans
	if b, ok := v.(bool); ok {
		if b {
			return 1
		}
		return 0
	}
	return v
}

// Create stores v as a new document and returns its generated id. The id and
// creation/update stamps are written into the document itself so a fetched
// copy is self-describing.
func (c *Collection[T]) Create(v T) (string, error) {
	m, err := toMap(v)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	now := time.Now().UTC()
	m["id"] = id
	m["createdAt"] = now
	m["updatedAt"] = now

	data, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	ts := now.Format(timeLayout)
	_, err = c.store.DB.Exec(`
	  INSERT INTO documents(collection, id, data, created_at, updated_at)
	  VALUES(?, ?, ?, ?, ?)
	`, c.name, id, string(data), ts, ts)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", c.name, err)
	}
	c.store.hub.notify(c.name)
	return id, nil
}

// Update shallow-merges patch into the stored document and stamps updatedAt.
// Fields absent from patch are left untouched; last write wins.
func (c *Collection[T]) Update(id string, patch map[string]any) error {
	var data string
	err := c.store.DB.Get(&data, `
	  SELECT data FROM documents WHERE collection = ? AND id = ?
	`, c.name, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update %s: %w", c.name, err)
	}

	m := map[string]any{}
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		return fmt.Errorf("update %s: corrupt document %s: %w", c.name, id, err)
	}
	for k, v := range patch {
		m[k] = v
	}
	now := time.Now().UTC()
	m["updatedAt"] = now
	m["id"] = id // the id field is not patchable

	merged, err := json.Marshal(m)
	if err != nil {
		return err
	}
	_, err = c.store.DB.Exec(`
	  UPDATE documents SET data = ?, updated_at = ? WHERE collection = ? AND id = ?
	`, string(merged), now.Format(timeLayout), c.name, id)
	if err != nil {
		return fmt.Errorf("update %s: %w", c.name, err)
	}
	c.store.hub.notify(c.name)
	return nil
}

// Delete removes the document. Deleting a missing id is a no-op.
func (c *Collection[T]) Delete(id string) error {
	res, err := c.store.DB.Exec(`
	  DELETE FROM documents WHERE collection = ? AND id = ?
	`, c.name, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", c.name, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		c.store.hub.notify(c.name)
	}
	return nil
}

func (c *Collection[T]) GetByID(id string) (T, error) {
	var zero T
	var data string
	err := c.store.DB.Get(&data, `
	  SELECT data FROM documents WHERE collection = ? AND id = ?
	`, c.name, id)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, domain.ErrNotFound
	}
	if err != nil {
		return zero, fmt.Errorf("get %s: %w", c.name, err)
	}
	var v T
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return zero, fmt.Errorf("get %s: corrupt document %s: %w", c.name, id, err)
	}
	return v, nil
}

func (c *Collection[T]) GetAll(opts ...QueryOption) ([]T, error) {
	var q query
	for _, opt := range opts {
		opt(&q)
	}

	sqlStr := `SELECT data FROM documents WHERE collection = ?`
	args := []any{c.name}
	for _, w := range q.wheres {
		path, err := jsonPath(w.field)
		if err != nil {
			return nil, err
		}
		sqlStr += ` AND ` + path + ` = ?`
		args = append(args, whereArg(w.value))
	}
	if q.orderBy != "" {
		var expr string
		switch q.orderBy {
		case "createdAt":
			expr = "created_at"
		case "updatedAt":
			expr = "updated_at"
		default:
			path, err := jsonPath(q.orderBy)
			if err != nil {
				return nil, err
			}
			expr = path
		}
		sqlStr += ` ORDER BY ` + expr
		if q.desc {
			sqlStr += ` DESC`
		}
	}
	if q.limit > 0 {
		sqlStr += ` LIMIT ?`
		args = append(args, q.limit)
	}

	var rows []string
	if err := c.store.DB.Select(&rows, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", c.name, err)
	}
	out := make([]T, 0, len(rows))
	for _, data := range rows {
		var v T
		if err := json.Unmarshal([]byte(data), &v); err != nil {
			return nil, fmt.Errorf("list %s: corrupt document: %w", c.name, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Count returns the number of documents in the collection.
func (c *Collection[T]) Count() (int, error) {
	var n int
	err := c.store.DB.Get(&n, `SELECT COUNT(*) FROM documents WHERE collection = ?`, c.name)
	return n, err
}

// Subscribe delivers a full snapshot (queried with opts) immediately and then
// after every mutation of the collection, until the subscription is canceled.
func (c *Collection[T]) Subscribe(fn func([]T), opts ...QueryOption) *Subscription {
	return c.store.hub.subscribe(c.name, func() {
		snap, err := c.GetAll(opts...)
		if err != nil {
			applogError("store.subscribe.snapshot", c.name, err)
			return
		}
		fn(snap)
	})
}

func toMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	// the collection owns the stamps; strip zero-value ones from the payload
	for _, k := range []string{"createdAt", "updatedAt"} {
		if s, ok := m[k].(string); ok && strings.HasPrefix(s, "0001-01-01") {
			delete(m, k)
		}
	}
	return m, nil
}
