package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestConstraintViolations(t *testing.T) {
	unique := fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}
	check := &pgconn.PgError{Code: "23514"}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isUniqueViolation(errors.New("otro error")))
	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isForeignKeyViolation(check))
	assert.True(t, isCheckViolation(check))
}

func TestImageURLs_NuncaNil(t *testing.T) {
	assert.Equal(t, []string{}, imageURLs(nil))
	assert.Equal(t, []string{"/uploads/a.png"}, imageURLs([]string{"/uploads/a.png"}))
}

func TestSchemaEmbebido(t *testing.T) {
	for _, table := range []string{"users", "personal_data", "products", "orders", "order_details"} {
		assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS "+table)
	}
}
