package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- One row per document. Entity payloads live in the JSON data column so the
-- product/category/order shapes can evolve additively without migrations.
CREATE TABLE IF NOT EXISTS documents(
  collection TEXT NOT NULL,
  id         TEXT NOT NULL,
  data       TEXT NOT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL,
  PRIMARY KEY(collection, id)
);
CREATE INDEX IF NOT EXISTS idx_documents_created ON documents(collection, created_at);

-- At most one pending buy-now selection per browsing session.
CREATE TABLE IF NOT EXISTS order_intents(
  session_id TEXT PRIMARY KEY,
  data       TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	_, err := db.Exec(schema)
	return err
}

// SeedIfEmpty inserts a demo catalog when the store has no categories yet.
// Safe to run on every startup.
func SeedIfEmpty(s *Store) error {
	cats, err := s.Categories.GetAll()
	if err != nil {
		return err
	}
	if len(cats) > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/products")

	seedCats := []struct {
		name, desc string
		sort       int
	}{
		{"Premium Panjabi", "Hand-finished panjabis for festive wear", 1},
		{"Casual Panjabi", "Everyday comfort-fit panjabis", 2},
		{"Kabli Set", "Panjabi with matching pajama", 3},
	}
	for _, c := range seedCats {
		if _, err := s.Categories.Create(domainCategory(c.name, c.desc, c.sort)); err != nil {
			return err
		}
	}

	seedProds := []seedProduct{
		{"Midnight Black Panjabi", "Premium cotton panjabi with hand embroidery", 1690, 1890, "Premium Panjabi", "premium-cotton", "SRH-PP-001", 12},
		{"Ivory Silk Panjabi", "Silk-blend panjabi for festive occasions", 2450, 0, "Premium Panjabi", "silk-blend", "SRH-PP-002", 8},
		{"Slate Grey Casual Panjabi", "Soft everyday panjabi, relaxed fit", 990, 0, "Casual Panjabi", "cotton", "SRH-CP-001", 20},
	}
	for _, p := range seedProds {
		if _, err := s.Products.Create(p.toDomain()); err != nil {
			return err
		}
	}
	return nil
}
