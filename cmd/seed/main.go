package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"warehouse/internal/auth"
	"warehouse/internal/config"
	"warehouse/internal/model"
	"warehouse/internal/store"
)

// SeedProductData is one catalog entry in a seed source.
type SeedProductData struct {
	ID          int    `json:"id"`
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	Stock       int    `json:"stock"`
}

var defaultProducts = []SeedProductData{
	{ID: 1, SKU: "LAP-001", Name: "Laptop Pro 14", Description: "14 inch laptop, 16GB RAM", Price: "1299.99", Category: "electronics", Stock: 12},
	{ID: 2, SKU: "MOU-002", Name: "Wireless Mouse", Description: "Ergonomic 2.4GHz mouse", Price: "24.50", Category: "accessories", Stock: 150},
	{ID: 3, SKU: "KEY-003", Name: "Mechanical Keyboard", Description: "Tenkeyless, brown switches", Price: "89.90", Category: "accessories", Stock: 40},
	{ID: 4, SKU: "MON-004", Name: "27in Monitor", Description: "1440p IPS panel", Price: "319.00", Category: "electronics", Stock: 8},
	{ID: 5, SKU: "CAB-005", Name: "USB-C Cable", Description: "1m braided cable", Price: "9.99", Category: "cables", Stock: 0},
}

var defaultUsers = []model.User{
	{ID: 1, Username: "admin", Role: model.RoleAdmin, Password: "admin123"},
	{ID: 2, Username: "editor", Role: model.RoleEditor, Password: "editor123"},
	{ID: 3, Username: "viewer", Role: model.RoleViewer, Password: "viewer123"},
}

func main() {
	source := flag.String("catalog", "", "URL or file with a JSON array of products (built-in sample when empty)")
	hash := flag.Bool("hash", false, "store user passwords as bcrypt hashes")
	flag.Parse()

	log.Println("Starting seed script...")

	cfg := config.Load()
	documents, err := store.Open(cfg, stdLogger{})
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer documents.Close()
	log.Printf("Opened %s store", cfg.StoreDriver)

	items := defaultProducts
	if *source != "" {
		log.Printf("Fetching products from: %s", *source)
		items, err = fetchProducts(*source)
		if err != nil {
			log.Fatalf("Failed to fetch products: %v", err)
		}
		log.Printf("Fetched %d products", len(items))
	}

	incoming, skipped := toProducts(items)
	if skipped > 0 {
		log.Printf("Skipped %d invalid products", skipped)
	}

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)
	merged, created, updated := mergeProducts(documents.Products.Load(ctx), incoming, now)
	if err := documents.Products.Save(ctx, merged); err != nil {
		log.Fatalf("Failed to seed products: %v", err)
	}

	users, err := seedUsers(defaultUsers, *hash)
	if err != nil {
		log.Fatalf("Failed to prepare users: %v", err)
	}
	if err := documents.Users.Save(ctx, users); err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New products created: %d", created)
	log.Printf("  - Existing products updated: %d", updated)
	log.Printf("  - Users written: %d (hashed: %t)", len(users), *hash)
}

// fetchProducts reads seed data from an http(s) URL or a local file.
func fetchProducts(source string) ([]SeedProductData, error) {
	var body []byte
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Get(source)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch from API: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("API returned status code: %d", resp.StatusCode)
		}
		if body, err = io.ReadAll(resp.Body); err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}
	} else {
		var err error
		if body, err = os.ReadFile(source); err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
	}

	var items []SeedProductData
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return items, nil
}

// toProducts drops entries the API would reject: missing sku, a
// non-positive price or negative stock.
func toProducts(items []SeedProductData) ([]model.Product, int) {
	out := make([]model.Product, 0, len(items))
	skipped := 0
	for _, item := range items {
		price, err := decimal.NewFromString(item.Price)
		if err != nil || !price.IsPositive() || item.Stock < 0 || item.SKU == "" || item.ID < 1 {
			log.Printf("Skipping product %d (%s)", item.ID, item.SKU)
			skipped++
			continue
		}
		out = append(out, model.Product{
			ID:          item.ID,
			SKU:         item.SKU,
			Name:        item.Name,
			Description: item.Description,
			Price:       price,
			Category:    item.Category,
			Stock:       item.Stock,
		})
	}
	return out, skipped
}

// mergeProducts updates existing products by id and appends new ones. An
// incoming product whose sku is held by a different id is dropped.
func mergeProducts(existing, incoming []model.Product, now time.Time) (merged []model.Product, created, updated int) {
	merged = append(merged, existing...)
	byID := make(map[int]int, len(merged))
	bySKU := make(map[string]int, len(merged))
	for i, p := range merged {
		byID[p.ID] = i
		bySKU[p.SKU] = p.ID
	}

	for _, p := range incoming {
		if owner, taken := bySKU[p.SKU]; taken && owner != p.ID {
			log.Printf("Skipping product %d: sku %s belongs to product %d", p.ID, p.SKU, owner)
			continue
		}
		if i, ok := byID[p.ID]; ok {
			p.CreatedAt = merged[i].CreatedAt
			p.UpdatedAt = now
			delete(bySKU, merged[i].SKU)
			merged[i] = p
			updated++
		} else {
			p.CreatedAt, p.UpdatedAt = now, now
			byID[p.ID] = len(merged)
			merged = append(merged, p)
			created++
		}
		bySKU[p.SKU] = p.ID
	}
	return merged, created, updated
}

// seedUsers copies users, replacing plaintext passwords with bcrypt hashes
// when hash is set.
func seedUsers(users []model.User, hash bool) ([]model.User, error) {
	out := make([]model.User, len(users))
	copy(out, users)
	if !hash {
		return out, nil
	}
	for i := range out {
		hashed, err := auth.HashPassword(out[i].Password)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", out[i].Username, err)
		}
		out[i].Password = hashed
	}
	return out, nil
}

// stdLogger routes store diagnostics to the standard logger.
type stdLogger struct{}

func (stdLogger) Warnf(format string, args ...interface{}) {
	log.Printf("WARN "+format, args...)
}

func (stdLogger) Errorf(format string, args ...interface{}) {
	log.Printf("ERROR "+format, args...)
}
