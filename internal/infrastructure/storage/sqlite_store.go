package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// slotName clave fija del único registro: hay un documento por sesión.
const slotName = "invoice-document"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS document_snapshots (
    slot       TEXT PRIMARY KEY,
    payload    TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);
`

// SQLiteStore implementa el puerto SnapshotStore sobre un archivo SQLite local.
type SQLiteStore struct {
	db *sql.DB
}

// Open abre (o crea) el archivo del store y aplica el esquema.
func Open(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("ruta de almacenamiento requerida")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("aplicar esquema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close cierra el archivo subyacente.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save serializa el estado completo y lo upserta en el slot.
func (s *SQLiteStore) Save(state *entity.DocumentState) error {
	payload, err := encodeSnapshot(state)
	if err != nil {
		return fmt.Errorf("serializar snapshot: %w", err)
	}
	_, err = s.db.Exec(`
INSERT INTO document_snapshots (slot, payload, updated_at) VALUES (?, ?, ?)
ON CONFLICT(slot) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at;`,
		slotName, string(payload), time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("guardar snapshot: %w", err)
	}
	return nil
}

// Load devuelve el estado guardado, o (nil, nil) si el slot no existe.
// Un payload que no parsea devuelve error: el caller cae a los defaults.
func (s *SQLiteStore) Load() (*entity.DocumentState, error) {
	var payload string
	err := s.db.QueryRow(
		`SELECT payload FROM document_snapshots WHERE slot = ?;`, slotName,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer snapshot: %w", err)
	}
	return decodeSnapshot([]byte(payload), time.Now())
}

// Clear elimina el slot persistido (usado por el reset del documento).
func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM document_snapshots WHERE slot = ?;`, slotName); err != nil {
		return fmt.Errorf("limpiar snapshot: %w", err)
	}
	return nil
}
