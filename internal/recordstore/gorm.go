package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"unicube-hr/internal/shared/apperror"
)

// recordRow is one record of one collection. Position preserves the
// collection's ordering across rewrites (leave requests are kept
// most-recent-first).
type recordRow struct {
	Collection string `gorm:"primaryKey;size:64"`
	Position   int    `gorm:"primaryKey;autoIncrement:false"`
	Payload    string `gorm:"type:jsonb;not null"`
}

func (recordRow) TableName() string { return "hr_records" }

// GormStore backs the record store with a relational table while keeping
// the same whole-collection contract: ReadAll selects every payload in
// order, WriteAll replaces the collection's rows inside one transaction.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Migrate() error {
	if err := s.db.AutoMigrate(&recordRow{}); err != nil {
		return classifyStoreErr(err)
	}
	return nil
}

func (s *GormStore) ReadAll(ctx context.Context, collection string, out any) error {
	var payloads []string
	err := s.db.WithContext(ctx).
		Raw("SELECT payload FROM hr_records WHERE collection = ? ORDER BY position ASC", collection).
		Scan(&payloads).Error
	if err != nil {
		return classifyStoreErr(err)
	}

	doc := "[" + strings.Join(payloads, ",") + "]"
	if err := json.Unmarshal([]byte(doc), out); err != nil {
		return apperror.StoreIO(err)
	}
	return nil
}

func (s *GormStore) WriteAll(ctx context.Context, collection string, records any) error {
	blob, err := json.Marshal(records)
	if err != nil {
		return apperror.StoreIO(err)
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(blob, &raw); err != nil {
		return apperror.StoreIO(err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM hr_records WHERE collection = ?", collection).Error; err != nil {
			return err
		}
		for i, payload := range raw {
			err := tx.Exec(
				"INSERT INTO hr_records (collection, position, payload) VALUES (?, ?, ?)",
				collection, i, string(payload),
			).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return classifyStoreErr(err)
	}
	return nil
}

func classifyStoreErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return apperror.Wrap(
			err,
			apperror.CodeInternalError,
			fmt.Sprintf("Record store operation failed (postgres %s)", pgErr.Code),
			http.StatusInternalServerError,
		)
	}
	return apperror.StoreIO(err)
}
