//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"dante_properties/internal/domain"
	mysqlrepo "dante_properties/internal/storage/mysql"
)

// ---------- small helpers ----------
func pstr(s string) *string     { return &s }
func pfloat(f float64) *float64 { return &f }

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/migrations)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=dante",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/dante?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC", hostPort)

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

// ---------- the tests ----------

func TestRepo_MySQL_UpsertAndSearch(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	seed := []domain.Property{
		{
			ExternalID: "prop_0001", Title: "Casa en Pilar", Neighborhood: "Pilar",
			Price: 250000, Rooms: 4, SquareMeters: 180,
			Operation: "venta", Type: "casa",
			Currency: pstr("USD"), Garage: pstr("si"),
			Photos: []string{"a.jpg", "b.jpg"},
		},
		{
			ExternalID: "prop_0002", Title: "Depto en Palermo", Neighborhood: "Palermo",
			Price: 120000, Rooms: 2, SquareMeters: 55,
			Operation: "venta", Type: "departamento",
			Expenses: pfloat(90000),
		},
		{
			ExternalID: "prop_0003", Title: "Depto en Palermo chico", Neighborhood: "Palermo",
			Price: 98000, Rooms: 1, SquareMeters: 38,
			Operation: "venta", Type: "departamento",
		},
	}
	for _, p := range seed {
		if err := repo.UpsertProperty(ctx, p); err != nil {
			t.Fatalf("UpsertProperty %s: %v", p.ExternalID, err)
		}
	}

	// Re-upsert with a new price: external_id must stay unique.
	seed[0].Price = 240000
	if err := repo.UpsertProperty(ctx, seed[0]); err != nil {
		t.Fatalf("re-upsert: %v", err)
	}

	got, err := repo.Search(ctx, domain.FilterSet{Neighborhood: pstr("palermo")})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("results = %d, want 2", len(got))
	}
	if got[0].Price > got[1].Price {
		t.Fatalf("results not price-ascending: %v then %v", got[0].Price, got[1].Price)
	}

	got, err = repo.Search(ctx, domain.FilterSet{})
	if err != nil {
		t.Fatalf("Search all: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("results = %d, want 3 (upsert must not duplicate)", len(got))
	}
	for _, p := range got {
		if p.ExternalID == "prop_0001" {
			if p.Price != 240000 {
				t.Fatalf("upsert did not refresh price: %v", p.Price)
			}
			if len(p.Photos) != 2 || p.Garage == nil || *p.Garage != "si" {
				t.Fatalf("JSON/flag round-trip failed: %+v", p)
			}
		}
	}

	if err := repo.LogMiss(ctx, "prop_bad", "missing required attributes"); err != nil {
		t.Fatalf("LogMiss: %v", err)
	}
	if err := repo.LogMiss(ctx, "prop_bad", "missing required attributes"); err != nil {
		t.Fatalf("LogMiss repeat: %v", err)
	}
}

func TestRepo_MySQL_ContactsAndConversations(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	c := domain.Contact{
		CorrelationID: "corr-1",
		Name:          "Ana",
		Email:         pstr("ana@example.com"),
		Status:        "nuevo",
	}
	if err := repo.UpsertContact(ctx, c); err != nil {
		t.Fatalf("UpsertContact: %v", err)
	}
	c.Name = "Ana María"
	if err := repo.UpsertContact(ctx, c); err != nil {
		t.Fatalf("UpsertContact repeat: %v", err)
	}
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM contacts").Scan(&n); err != nil || n != 1 {
		t.Fatalf("contacts = %d (err %v), want 1 after double upsert", n, err)
	}
	var name string
	if err := db.QueryRow("SELECT name FROM contacts WHERE correlation_id = 'corr-1'").Scan(&name); err != nil || name != "Ana María" {
		t.Fatalf("name = %q (err %v), second submission must win", name, err)
	}

	if _, err := repo.LastBotReply(ctx, "web"); err != domain.ErrNotFound {
		t.Fatalf("LastBotReply on empty log: %v, want ErrNotFound", err)
	}

	turns := []domain.ConversationTurn{
		{Channel: "web", UserMessage: "hola", BotResponse: "bienvenida", ResponseSeconds: 0.1},
		{Channel: "web", UserMessage: "busco casa", BotResponse: "tengo opciones", SearchPerformed: true, ResultCount: 3},
		{Channel: "whatsapp", UserMessage: "hola", BotResponse: "hola!"},
	}
	for _, turn := range turns {
		if err := repo.Append(ctx, turn); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	recent, err := repo.Recent(ctx, "web", 5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("recent = %d, want 2 (channel-scoped)", len(recent))
	}
	if recent[0].UserMessage != "busco casa" {
		t.Fatalf("recent not newest-first: %+v", recent)
	}

	reply, err := repo.LastBotReply(ctx, "web")
	if err != nil || reply != "tengo opciones" {
		t.Fatalf("LastBotReply = %q (err %v)", reply, err)
	}
}
