package db

import (
	"github.com/adiprakosa/kasirpos/internal/app/model"
	"github.com/adiprakosa/kasirpos/pkg/logger"
	"github.com/adiprakosa/kasirpos/pkg/util"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.PaymentMethod{},
		&model.Order{},
		&model.OrderItem{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedInitialData(); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedInitialData()
}

func seedInitialData() error {
	logger.Info("Seeding initial data...")

	if err := seedPaymentMethods(); err != nil {
		logger.Error("Failed to seed payment methods", err)
		return err
	}

	if err := seedAdminUser(); err != nil {
		logger.Error("Failed to seed admin user", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

// seedPaymentMethods creates the payment options shown at checkout
func seedPaymentMethods() error {
	var count int64
	if err := DB.Model(&model.PaymentMethod{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Payment methods already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding payment method data...")

	methods := []model.PaymentMethod{
		{Name: "Tunai", Enabled: true},
		{Name: "Kartu Debit", Enabled: true},
		{Name: "Kartu Kredit", Enabled: true},
		{Name: "QRIS", Enabled: true},
		{Name: "Transfer Bank", Enabled: true},
	}

	totalInserted := 0
	for _, method := range methods {
		if err := DB.Create(&method).Error; err != nil {
			logger.Error("Failed to create payment method", err, map[string]interface{}{
				"method": method.Name,
			})
			return err
		}
		totalInserted++
	}

	logger.Info("Payment methods seeded successfully", map[string]interface{}{
		"total_methods": totalInserted,
	})

	return nil
}

// seedAdminUser creates the initial back-office account. The password
// must be rotated after first login.
func seedAdminUser() error {
	var count int64
	if err := DB.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Admin user already exists, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	hash, err := util.HashPassword("admin123")
	if err != nil {
		return err
	}

	admin := model.User{
		Email:        "admin@kasirpos.local",
		PasswordHash: hash,
		Name:         "Administrator",
		Role:         model.RoleAdmin,
	}

	if err := DB.Create(&admin).Error; err != nil {
		logger.Error("Failed to create admin user", err)
		return err
	}

	logger.Info("Admin user seeded successfully", map[string]interface{}{
		"email": admin.Email,
	})

	return nil
}
