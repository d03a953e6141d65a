package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/infrastructure/postgres/migrations"
	"github.com/MartinMaldo592/Mitiendaonline2026/pkg/config"
)

// gooseUp punto de reemplazo de goose.UpContext en tests.
var gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
	return goose.UpContext(ctx, db, dir)
}

// Migrate aplica las migraciones embebidas. Abre una conexión database/sql aparte del pool
// porque goose trabaja sobre *sql.DB.
func Migrate(ctx context.Context, cfg config.DBConfig) error {
	db, err := sql.Open("pgx", resolvedDSN(cfg))
	if err != nil {
		return fmt.Errorf("migrate: abrir conexión: %w", err)
	}
	defer db.Close()

	return RunMigrations(ctx, db)
}

// RunMigrations ejecuta goose con los scripts de migrations/.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("migrate: dialecto: %w", err)
	}
	if err := gooseUp(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
