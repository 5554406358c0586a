package journal

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
)

// DomainInput separates input digests from any other SHA-256 use.
const DomainInput = "widepack/input/v1"

// Entry is one journaled run.
type Entry struct {
	Seq          int64  `json:"seq"`
	ID           string `json:"id"`
	Mode         string `json:"mode"`
	Source       string `json:"source"`
	InputDigest  string `json:"input_digest"`
	InputLength  int    `json:"input_length"`
	OutputLength int    `json:"output_length"`
	Padded       bool   `json:"padded"`
	Lossless     bool   `json:"lossless"`
}

// Digest hashes text as SHA256(DomainInput + 0x00 + text), hex encoded.
func Digest(text string) string {
	h := sha256.New()
	h.Write([]byte(DomainInput))
	h.Write([]byte{0x00})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// Record appends e to the journal and returns it with ID and Seq set.
// An empty ID is filled from the journal's generator. Recording the same ID
// twice is a no-op; the stored entry is returned.
func (j *Journal) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = j.ids.Generate()
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, mode, source, input_digest, input_length, output_length, padded, lossless)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		e.ID,
		e.Mode,
		e.Source,
		e.InputDigest,
		e.InputLength,
		e.OutputLength,
		e.Padded,
		e.Lossless,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("record run: %w", err)
	}

	stored, err := j.Get(ctx, e.ID)
	if err != nil {
		return Entry{}, fmt.Errorf("record run: %w", err)
	}
	return stored, nil
}

// Get returns the entry with the given ID, or sql.ErrNoRows.
func (j *Journal) Get(ctx context.Context, id string) (Entry, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT seq, id, mode, source, input_digest, input_length, output_length, padded, lossless
		FROM runs
		WHERE id = ?
	`, id)
	return scanEntry(row)
}

// List returns up to limit entries, most recent first. A limit of zero or
// less returns every entry.
func (j *Journal) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT seq, id, mode, source, input_digest, input_length, output_length, padded, lossless
		FROM runs
		ORDER BY seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return entries, nil
}

// FindByDigest returns every entry whose input hashed to digest, oldest first.
func (j *Journal) FindByDigest(ctx context.Context, digest string) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT seq, id, mode, source, input_digest, input_length, output_length, padded, lossless
		FROM runs
		WHERE input_digest = ?
		ORDER BY seq ASC
	`, digest)
	if err != nil {
		return nil, fmt.Errorf("query runs by digest: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return entries, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var e Entry
	err := row.Scan(
		&e.Seq,
		&e.ID,
		&e.Mode,
		&e.Source,
		&e.InputDigest,
		&e.InputLength,
		&e.OutputLength,
		&e.Padded,
		&e.Lossless,
	)
	if err == sql.ErrNoRows {
		return Entry{}, err
	}
	if err != nil {
		return Entry{}, fmt.Errorf("scan run: %w", err)
	}
	return e, nil
}
