package persistence

import (
	"github.com/ejarriada/Fanaticos/internal/domain/catalog"
	"github.com/ejarriada/Fanaticos/internal/domain/finance"
	"github.com/ejarriada/Fanaticos/internal/domain/identity"
	"github.com/ejarriada/Fanaticos/internal/domain/inventory"
	"github.com/ejarriada/Fanaticos/internal/domain/partner"
	"github.com/ejarriada/Fanaticos/internal/domain/production"
	"github.com/ejarriada/Fanaticos/internal/domain/trade"
	"gorm.io/gorm"
)

// Models lists every persisted entity in dependency order. The SQL
// migrations are the source of truth in deployed databases; AutoMigrate
// over this list builds throwaway schemas for tests and local runs.
func Models() []interface{} {
	return []interface{}{
		&identity.Tenant{},
		&catalog.Category{},
		&catalog.Size{},
		&catalog.Color{},
		&catalog.Process{},
		&catalog.RawMaterial{},
		&catalog.Design{},
		&catalog.DesignProcess{},
		&catalog.DesignMaterial{},
		&catalog.Product{},
		&inventory.Local{},
		&inventory.InventoryItem{},
		&inventory.MaterialLot{},
		&inventory.StockAdjustment{},
		&inventory.InternalDeliveryNote{},
		&inventory.InternalDeliveryNoteItem{},
		&partner.Client{},
		&partner.Supplier{},
		&trade.Quotation{},
		&trade.QuotationItem{},
		&trade.Sale{},
		&trade.SaleItem{},
		&trade.DeliveryNote{},
		&trade.DeliveryNoteItem{},
		&trade.PurchaseOrder{},
		&trade.PurchaseOrderItem{},
		&production.OrderNote{},
		&production.ProductionOrder{},
		&production.ProductionOrderItem{},
		&production.ProcessLog{},
		&finance.Account{},
		&finance.CashRegister{},
		&finance.Transaction{},
		&finance.PaymentMethodType{},
		&finance.Bank{},
		&finance.FinancialCostRule{},
		&finance.SupplierPayment{},
	}
}

// AutoMigrate creates or updates the schema of every entity
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
