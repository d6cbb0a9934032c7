package catalog

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bannerworks/signquote/internal/quoting"
)

// ErrNotFound is returned when a catalog row does not exist.
var ErrNotFound = errors.New("catalog: not found")

// Store is the sqlite-backed catalog of vinyl media, substrates, the
// price-rule configuration, and saved quotes. Listing queries exclude rows
// that violate the engine's invariants, so the engine never re-validates
// catalog data.
type Store struct {
	db *sql.DB
}

// New wraps an open database handle.
func New(database *sql.DB) *Store {
	return &Store{db: database}
}

// mediaInvariants excludes rows the engine must never see: non-positive
// roll width or price, or a printable width exceeding the roll width.
const mediaInvariants = `roll_width_mm > 0
	AND price_per_lm > 0
	AND print_width_mm >= 0
	AND print_width_mm <= roll_width_mm`

// ListMedia returns all active, well-formed vinyl media ordered by name.
func (s *Store) ListMedia() ([]quoting.VinylMedia, error) {
	rows, err := s.db.Query(`
		SELECT id, name, roll_width_mm, print_width_mm, price_per_lm,
		       max_print_width_mm, max_cut_width_mm, category
		FROM vinyl_media
		WHERE active AND ` + mediaInvariants + `
		ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query vinyl media: %w", err)
	}
	defer rows.Close()

	media := make([]quoting.VinylMedia, 0)
	for rows.Next() {
		var m quoting.VinylMedia
		if err := rows.Scan(&m.ID, &m.Name, &m.RollWidthMM, &m.PrintWidthMM, &m.PricePerLM,
			&m.MaxPrintWidthMM, &m.MaxCutWidthMM, &m.Category); err != nil {
			return nil, fmt.Errorf("scan vinyl media: %w", err)
		}
		media = append(media, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vinyl media: %w", err)
	}

	return media, nil
}

// GetMedia returns one active, well-formed media row by id.
func (s *Store) GetMedia(id string) (*quoting.VinylMedia, error) {
	var m quoting.VinylMedia
	err := s.db.QueryRow(`
		SELECT id, name, roll_width_mm, print_width_mm, price_per_lm,
		       max_print_width_mm, max_cut_width_mm, category
		FROM vinyl_media
		WHERE id = ? AND active AND `+mediaInvariants, id).
		Scan(&m.ID, &m.Name, &m.RollWidthMM, &m.PrintWidthMM, &m.PricePerLM,
			&m.MaxPrintWidthMM, &m.MaxCutWidthMM, &m.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: media %q", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query media %q: %w", id, err)
	}
	return &m, nil
}

// UpsertMedia inserts or replaces a media row.
func (s *Store) UpsertMedia(m quoting.VinylMedia) error {
	_, err := s.db.Exec(`
		INSERT INTO vinyl_media (id, name, roll_width_mm, print_width_mm, price_per_lm,
		                         max_print_width_mm, max_cut_width_mm, category, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, TRUE)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			roll_width_mm = excluded.roll_width_mm,
			print_width_mm = excluded.print_width_mm,
			price_per_lm = excluded.price_per_lm,
			max_print_width_mm = excluded.max_print_width_mm,
			max_cut_width_mm = excluded.max_cut_width_mm,
			category = excluded.category,
			updated_at = CURRENT_TIMESTAMP
	`, m.ID, m.Name, m.RollWidthMM, m.PrintWidthMM, m.PricePerLM,
		m.MaxPrintWidthMM, m.MaxCutWidthMM, m.Category)
	if err != nil {
		return fmt.Errorf("upsert media %q: %w", m.ID, err)
	}
	return nil
}

const substrateInvariants = `sheet_width_mm > 0
	AND sheet_height_mm > 0
	AND price_per_sheet > 0`

// ListSubstrates returns all active, well-formed substrates ordered by name.
func (s *Store) ListSubstrates() ([]quoting.Substrate, error) {
	rows, err := s.db.Query(`
		SELECT id, name, sheet_width_mm, sheet_height_mm, price_per_sheet, thickness_mm
		FROM substrates
		WHERE active AND ` + substrateInvariants + `
		ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query substrates: %w", err)
	}
	defer rows.Close()

	subs := make([]quoting.Substrate, 0)
	for rows.Next() {
		var sub quoting.Substrate
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.SheetWidthMM, &sub.SheetHeightMM,
			&sub.PricePerSheet, &sub.ThicknessMM); err != nil {
			return nil, fmt.Errorf("scan substrate: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate substrates: %w", err)
	}

	return subs, nil
}

// GetSubstrate returns one active, well-formed substrate row by id.
func (s *Store) GetSubstrate(id string) (*quoting.Substrate, error) {
	var sub quoting.Substrate
	err := s.db.QueryRow(`
		SELECT id, name, sheet_width_mm, sheet_height_mm, price_per_sheet, thickness_mm
		FROM substrates
		WHERE id = ? AND active AND `+substrateInvariants, id).
		Scan(&sub.ID, &sub.Name, &sub.SheetWidthMM, &sub.SheetHeightMM,
			&sub.PricePerSheet, &sub.ThicknessMM)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: substrate %q", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query substrate %q: %w", id, err)
	}
	return &sub, nil
}

// UpsertSubstrate inserts or replaces a substrate row.
func (s *Store) UpsertSubstrate(sub quoting.Substrate) error {
	_, err := s.db.Exec(`
		INSERT INTO substrates (id, name, sheet_width_mm, sheet_height_mm,
		                        price_per_sheet, thickness_mm, active)
		VALUES (?, ?, ?, ?, ?, ?, TRUE)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			sheet_width_mm = excluded.sheet_width_mm,
			sheet_height_mm = excluded.sheet_height_mm,
			price_per_sheet = excluded.price_per_sheet,
			thickness_mm = excluded.thickness_mm,
			updated_at = CURRENT_TIMESTAMP
	`, sub.ID, sub.Name, sub.SheetWidthMM, sub.SheetHeightMM, sub.PricePerSheet, sub.ThicknessMM)
	if err != nil {
		return fmt.Errorf("upsert substrate %q: %w", sub.ID, err)
	}
	return nil
}

// Settings loads the stored price-rule configuration, normalized. A missing
// row yields the all-defaults configuration.
func (s *Store) Settings() (quoting.Settings, error) {
	var raw quoting.RawSettings
	var blob string
	err := s.db.QueryRow(`SELECT settings_json FROM quote_settings WHERE id = 1`).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return quoting.Normalize(raw), nil
	}
	if err != nil {
		return quoting.Settings{}, fmt.Errorf("query quote settings: %w", err)
	}

	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return quoting.Settings{}, fmt.Errorf("decode quote settings: %w", err)
	}
	return quoting.Normalize(raw), nil
}

// SaveSettings normalizes and stores a raw configuration, replacing the
// singleton row. Only canonical settings ever reach disk.
func (s *Store) SaveSettings(raw quoting.RawSettings) (quoting.Settings, error) {
	normalized := quoting.Normalize(raw)
	blob, err := json.Marshal(normalized.Raw())
	if err != nil {
		return quoting.Settings{}, fmt.Errorf("encode quote settings: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO quote_settings (id, settings_json)
		VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET
			settings_json = excluded.settings_json,
			updated_at = CURRENT_TIMESTAMP
	`, string(blob))
	if err != nil {
		return quoting.Settings{}, fmt.Errorf("save quote settings: %w", err)
	}
	return normalized, nil
}

// SavedQuote is one stored computation result.
type SavedQuote struct {
	Reference string  `json:"reference"`
	Title     string  `json:"title"`
	CreatedAt string  `json:"created_at"`
	Total     float64 `json:"total"`
}

// SaveQuote stores a computed quote under the given reference.
func (s *Store) SaveQuote(reference, title string, req quoting.SignRequest, b *quoting.Breakdown) error {
	reqJSON, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode quote request: %w", err)
	}
	breakdownJSON, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("encode quote breakdown: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO quotes (reference, title, request_json, breakdown_json)
		VALUES (?, ?, ?, ?)
	`, reference, title, string(reqJSON), string(breakdownJSON))
	if err != nil {
		return fmt.Errorf("insert quote %q: %w", reference, err)
	}
	return nil
}

// ListQuotes returns saved quotes, newest first, optionally filtered by a
// title substring.
func (s *Store) ListQuotes(query string) ([]SavedQuote, error) {
	search := "%" + query + "%"
	rows, err := s.db.Query(`
		SELECT reference, COALESCE(title, ''), created_at, breakdown_json
		FROM quotes
		WHERE (? = '' OR COALESCE(title, '') LIKE ?)
		ORDER BY datetime(created_at) DESC, id DESC
	`, query, search)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	quotes := make([]SavedQuote, 0)
	for rows.Next() {
		var q SavedQuote
		var breakdownJSON string
		if err := rows.Scan(&q.Reference, &q.Title, &q.CreatedAt, &breakdownJSON); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		q.Total = extractTotal(breakdownJSON)
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}

	return quotes, nil
}

func extractTotal(breakdownJSON string) float64 {
	var b struct {
		Total float64 `json:"total"`
	}
	if err := json.Unmarshal([]byte(breakdownJSON), &b); err != nil {
		return 0
	}
	return b.Total
}
