// Package tenant provides multi-tenant database scoping for GORM.
//
// Every repository query goes through Scope so that a missing tenant filter
// is a compile-visible omission rather than a silent cross-tenant read:
//
//	db.WithContext(ctx).Scopes(tenant.Scope(tenantID)).Find(&products)
package tenant

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Column is the tenant foreign key present on every tenant-owned table
const Column = "tenant_id"

// ErrTenantIDRequired is returned when a scope is built for the nil tenant
var ErrTenantIDRequired = errors.New("tenant_id is required")

// Scope filters the statement's own table by tenant. The condition is
// table-qualified so it stays unambiguous when the query joins other
// tenant-owned tables.
func Scope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if tenantID == uuid.Nil {
			_ = db.AddError(ErrTenantIDRequired)
			return db
		}
		return db.Where(clause.Eq{
			Column: clause.Column{Table: clause.CurrentTable, Name: Column},
			Value:  tenantID,
		})
	}
}
