package seed

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/bannerworks/signquote/internal/quoting"
)

const (
	defaultMediaID     = "gloss-white-1370"
	defaultSubstrateID = "foamex-5mm"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run executes the startup seed in an idempotent way: a default printable
// roll, a default substrate sheet, and the default price-rule
// configuration, each inserted only when absent.
func Run(database *sql.DB) (Stats, error) {
	tx, err := database.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := ensureMedia(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureSubstrate(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureSettings(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureMedia(tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM vinyl_media WHERE id = ? LIMIT 1)`, defaultMediaID).Scan(&exists); err != nil {
		return fmt.Errorf("check default media existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`
		INSERT INTO vinyl_media (id, name, roll_width_mm, print_width_mm, price_per_lm, category, active)
		VALUES (?, ?, ?, ?, ?, ?, TRUE)
	`, defaultMediaID, "Gloss White 1370mm", 1370.0, 1340.0, 6.5, "printable"); err != nil {
		return fmt.Errorf("insert default media: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureSubstrate(tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM substrates WHERE id = ? LIMIT 1)`, defaultSubstrateID).Scan(&exists); err != nil {
		return fmt.Errorf("check default substrate existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`
		INSERT INTO substrates (id, name, sheet_width_mm, sheet_height_mm, price_per_sheet, thickness_mm, active)
		VALUES (?, ?, ?, ?, ?, ?, TRUE)
	`, defaultSubstrateID, "Foamex 5mm", 2440.0, 1220.0, 28.0, 5.0); err != nil {
		return fmt.Errorf("insert default substrate: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureSettings(tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM quote_settings WHERE id = 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check quote settings existence: %w", err)
	}
	if exists {
		return nil
	}

	blob, err := json.Marshal(quoting.Normalize(quoting.RawSettings{}).Raw())
	if err != nil {
		return fmt.Errorf("encode default settings: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO quote_settings (id, settings_json)
		VALUES (1, ?)
	`, string(blob)); err != nil {
		return fmt.Errorf("insert default settings: %w", err)
	}
	stats.Inserts++
	return nil
}
