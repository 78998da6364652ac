/**
 * @description
 * CSV ingredient importer. Reads an ingredient catalog export and upserts
 * each row by code, so the importer can be re-run safely against the same
 * file. Expected columns: code, name_en, description_en, then optional
 * name_<lang> and description_<lang> pairs declared in the header row.
 *
 * Usage:
 *   importer --file ./data/ingredients.csv
 */

package main

import (
	"context"
	"encoding/csv"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/pflag"

	"github.com/viteezy/commerce-backend/internal/config"
	"github.com/viteezy/commerce-backend/internal/domain"
	"github.com/viteezy/commerce-backend/internal/i18n"
	"github.com/viteezy/commerce-backend/internal/store"
)

func main() {
	file := pflag.String("file", "", "path to the ingredient CSV file")
	pflag.Parse()

	if *file == "" {
		log.Fatalf("level=fatal component=importer msg=\"--file is required\"")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("level=fatal component=importer msg=\"could not load config\" error=%v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("level=fatal component=importer msg=\"could not create database pool\" error=%v", err)
	}
	defer pool.Close()

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("level=fatal component=importer msg=\"could not open file\" error=%v", err)
	}
	defer f.Close()

	repo := store.NewRepository(pool)

	imported, err := importIngredients(ctx, repo, csv.NewReader(f))
	if err != nil {
		log.Fatalf("level=fatal component=importer msg=\"import failed\" error=%v", err)
	}

	log.Printf("level=info component=importer msg=\"import finished\" ingredients=%d", imported)
}

func importIngredients(ctx context.Context, repo *store.Repository, reader *csv.Reader) (int, error) {
	header, err := reader.Read()
	if err != nil {
		return 0, err
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.ToLower(name))] = i
	}

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}

		code := cell(record, columns, "code")
		if code == "" {
			continue
		}

		ing := &domain.Ingredient{
			Code:        code,
			Name:        textColumns(record, columns, "name_"),
			Description: textColumns(record, columns, "description_"),
		}
		if _, err := repo.UpsertIngredientByCode(ctx, ing); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// textColumns collects every <prefix><lang> column into a language map.
func textColumns(record []string, columns map[string]int, prefix string) i18n.Text {
	out := i18n.Text{}
	for name := range columns {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		lang := strings.TrimPrefix(name, prefix)
		if !i18n.IsCode(lang) {
			continue
		}
		if value := cell(record, columns, name); value != "" {
			out[lang] = value
		}
	}
	return out
}

func cell(record []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
