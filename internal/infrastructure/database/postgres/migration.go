// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"
	"time"

	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/customer"
	"github.com/your-org/pos-backend/internal/domain/product"
	"github.com/your-org/pos-backend/internal/domain/sale"
	"github.com/your-org/pos-backend/internal/domain/settings"
	"github.com/your-org/pos-backend/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db     *gorm.DB
	config *config.Config
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, cfg *config.Config) *Migration {
	return &Migration{
		db:     db,
		config: cfg,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Dependency order: referenced tables first
	models := []interface{}{
		&user.User{},
		&customer.Customer{},
		&product.Product{},
		&settings.StoreSettings{},
		&sale.Sale{},
		&sale.SaleItem{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		// The scanner hits barcode on every add; history screens filter by day
		"CREATE INDEX IF NOT EXISTS idx_products_barcode_active ON products(barcode, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_category_active ON products(category, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_stock_min ON products(stock_quantity, min_stock)",
		"CREATE INDEX IF NOT EXISTS idx_sales_timestamp_desc ON sales(timestamp DESC)",
		"CREATE INDEX IF NOT EXISTS idx_sales_unsynced ON sales(is_synced) WHERE is_synced = false",
		"CREATE INDEX IF NOT EXISTS idx_sales_cashier_timestamp ON sales(cashier_id, timestamp DESC)",
		"CREATE INDEX IF NOT EXISTS idx_sale_items_sale ON sale_items(sale_id)",
		"CREATE INDEX IF NOT EXISTS idx_customers_phone ON customers(phone)",
	}

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
		}
	}

	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedStoreSettings(); err != nil {
		return fmt.Errorf("failed to seed store settings: %w", err)
	}
	if err := m.seedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	if m.config.IsDevelopment() {
		if err := m.seedDevProducts(); err != nil {
			return fmt.Errorf("failed to seed dev products: %w", err)
		}
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

// seedStoreSettings creates the single settings row from config defaults
func (m *Migration) seedStoreSettings() error {
	var existing settings.StoreSettings
	if err := m.db.First(&existing).Error; err == nil {
		return nil
	}

	row := settings.StoreSettings{
		Name:            m.config.Store.Name,
		Address:         m.config.Store.Address,
		Phone:           m.config.Store.Phone,
		TaxID:           m.config.Store.TaxID,
		TaxStampEnabled: m.config.Store.TaxStampEnabled,
		TaxStampAmount:  m.config.Store.TaxStampAmount,
		LoyaltyEnabled:  m.config.Store.LoyaltyEnabled,
		LoyaltyRate:     m.config.Store.LoyaltyRate,
	}
	if err := m.db.Create(&row).Error; err != nil {
		return err
	}

	log.Printf("✅ Created store settings: %s", row.Name)
	return nil
}

// seedUsers creates the default admin and cashier accounts
func (m *Migration) seedUsers() error {
	accounts := []struct {
		username string
		password string
		fullName string
		role     user.Role
	}{
		{"admin", "admin123", "Administrateur", user.RoleAdmin},
		{"caissier", "caisse123", "Caissier", user.RoleCashier},
	}

	for _, account := range accounts {
		var existing user.User
		if err := m.db.Where("username = ?", account.username).First(&existing).Error; err == nil {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(account.password), m.config.Security.BcryptCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		if err := m.db.Create(&user.User{
			Username:     account.username,
			PasswordHash: string(hash),
			FullName:     account.fullName,
			Role:         account.role,
			IsActive:     true,
		}).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", account.username, err)
		}

		log.Printf("✅ Created user: %s (%s)", account.username, account.role)
	}

	return nil
}

// seedDevProducts creates a handful of catalog entries for development
func (m *Migration) seedDevProducts() error {
	var count int64
	m.db.Model(&product.Product{}).Count(&count)
	if count > 0 {
		return nil
	}

	expiry := time.Now().AddDate(0, 6, 0)
	devProducts := []product.Product{
		{
			Barcode:       "6191234567890",
			Name:          "Lait demi-écrémé 1L",
			Category:      "Frais",
			BuyPrice:      1100,
			SellPrice:     1350,
			TaxRate:       19,
			StockQuantity: 48,
			MinStock:      12,
			ExpiryDate:    &expiry,
			IsActive:      true,
		},
		{
			Barcode:       "6191234567906",
			Name:          "Pain baguette",
			Category:      "Boulangerie",
			BuyPrice:      150,
			SellPrice:     250,
			TaxRate:       19,
			StockQuantity: 30,
			MinStock:      10,
			IsActive:      true,
		},
		{
			Barcode:            "6191234567913",
			Name:               "Huile d'olive 1L",
			Category:           "Épicerie",
			BuyPrice:           18000,
			SellPrice:          24500,
			DiscountPercentage: 10,
			TaxRate:            19,
			StockQuantity:      15,
			MinStock:           5,
			IsActive:           true,
		},
		{
			Barcode:       "6191234567920",
			Name:          "Eau minérale 1.5L",
			Category:      "Boissons",
			BuyPrice:      500,
			SellPrice:     800,
			TaxRate:       19,
			StockQuantity: 120,
			MinStock:      24,
			IsActive:      true,
		},
	}

	for _, prod := range devProducts {
		if err := m.db.Create(&prod).Error; err != nil {
			log.Printf("⚠️ Failed to create dev product %s: %v", prod.Barcode, err)
		}
	}

	log.Printf("✅ Created %d dev products", len(devProducts))
	return nil
}
