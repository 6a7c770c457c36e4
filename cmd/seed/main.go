// seed genera un script SQL para poblar el catálogo (categorías, unidades y
// productos con su stock inicial) a partir del export CSV del sistema legado
// (codificado en ISO-8859-1). Cada producto con stock > 0 genera también su
// asiento INITIAL_STOCK, así el kardex justifica cada unidad desde el día cero.
//
// Formato del CSV: categoria;unidad;producto;precio;stock
//
// Uso: go run ./cmd/seed [ruta/catalogo.csv]
// Por defecto busca catalogo.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_catalog.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type row struct {
	category string
	unit     string
	name     string
	price    string
	stock    int64
}

func main() {
	csvPath := "catalogo.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// El sistema legado exporta en ISO-8859-1 (tildes y ñ fuera de UTF-8).
	reader := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	reader.Comma = ';'
	reader.FieldsPerRecord = 5

	records, err := reader.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	var rows []row
	for i, rec := range records {
		if i == 0 && strings.EqualFold(rec[0], "categoria") {
			continue // cabecera
		}
		stock, err := strconv.ParseInt(strings.TrimSpace(rec[4]), 10, 64)
		if err != nil || stock < 0 {
			fmt.Fprintf(os.Stderr, "Fila %d: stock inválido %q\n", i+1, rec[4])
			os.Exit(1)
		}
		price := strings.TrimSpace(rec[3])
		if _, err := strconv.ParseFloat(price, 64); err != nil {
			fmt.Fprintf(os.Stderr, "Fila %d: precio inválido %q\n", i+1, rec[3])
			os.Exit(1)
		}
		rows = append(rows, row{
			category: strings.TrimSpace(rec[0]),
			unit:     strings.TrimSpace(rec[1]),
			name:     strings.TrimSpace(rec[2]),
			price:    price,
			stock:    stock,
		})
	}

	// products.name es UNIQUE: un duplicado en el export rompería el seed.
	seen := make(map[string]bool)
	for _, r := range rows {
		if seen[r.name] {
			fmt.Fprintf(os.Stderr, "Producto duplicado en el CSV: %q\n", r.name)
			os.Exit(1)
		}
		seen[r.name] = true
	}

	var sb strings.Builder
	sb.WriteString("-- Generado por cmd/seed. No editar a mano.\n\n")

	categories := uniqueIDs(rows, func(r row) string { return r.category })
	units := uniqueIDs(rows, func(r row) string { return r.unit })

	for _, name := range sortedKeys(categories) {
		fmt.Fprintf(&sb, "INSERT INTO categories (id, name) VALUES ('%s', '%s') ON CONFLICT (name) DO NOTHING;\n",
			categories[name], escape(name))
	}
	sb.WriteString("\n")
	for _, name := range sortedKeys(units) {
		fmt.Fprintf(&sb, "INSERT INTO units (id, name) VALUES ('%s', '%s') ON CONFLICT (name) DO NOTHING;\n",
			units[name], escape(name))
	}
	sb.WriteString("\n")

	for _, r := range rows {
		productID := uuid.New().String()
		fmt.Fprintf(&sb,
			"INSERT INTO products (id, name, price, category_id, unit_id, current_stock, created_at, updated_at)\n"+
				"VALUES ('%s', '%s', %s, %s, %s, %d, now(), now());\n",
			productID, escape(r.name), r.price, sqlRef(categories[r.category]), sqlRef(units[r.unit]), r.stock)
		if r.stock > 0 {
			fmt.Fprintf(&sb,
				"INSERT INTO movements (id, product_id, product_name, type, quantity, reason, created_at, created_by)\n"+
					"VALUES ('%s', '%s', '%s', 'ENTRY', %d, 'INITIAL_STOCK', now(), 'seed');\n",
				uuid.New().String(), productID, escape(r.name), r.stock)
		}
	}

	outPath := filepath.Join("internal", "infrastructure", "postgres", "migrations", "002_seed_catalog.sql")
	if err := os.WriteFile(outPath, []byte(sb.String()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Escrito %s (%d productos)\n", outPath, len(rows))
}

// uniqueIDs asigna un UUID a cada valor distinto no vacío.
func uniqueIDs(rows []row, key func(row) string) map[string]string {
	ids := make(map[string]string)
	for _, r := range rows {
		k := key(r)
		if k == "" {
			continue
		}
		if _, ok := ids[k]; !ok {
			ids[k] = uuid.New().String()
		}
	}
	return ids
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func escape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// sqlRef formatea un id como literal SQL, NULL si no hay referencia.
func sqlRef(id string) string {
	if id == "" {
		return "NULL"
	}
	return "'" + id + "'"
}
