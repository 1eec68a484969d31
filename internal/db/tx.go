package db

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction runs fn in one database transaction. The transaction is
// detached from ctx cancellation: once begun it ends in commit or rollback,
// and gorm returns the connection to the pool on every path.
func Transaction(ctx context.Context, gormDB *gorm.DB, fn func(tx *gorm.DB) error) error {
	err := gormDB.WithContext(context.WithoutCancel(ctx)).Transaction(fn)
	return StoreError(err, nil, nil)
}

func IsUUID(value string) bool {
	_, err := uuid.Parse(strings.TrimSpace(value))
	return err == nil
}

// UUIDs keeps only well-formed ids so lookups never fail on a bad literal.
func UUIDs(ids []string) []string {
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if IsUUID(id) {
			result = append(result, id)
		}
	}
	return result
}

// Page applies limit and offset when positive.
func Page(query *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}

// Like escapes a search term for ILIKE.
func Like(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(strings.TrimSpace(term)) + "%"
}
