package main

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/JIexa3/StoreOfHandWork/config"
	"github.com/JIexa3/StoreOfHandWork/models"
	"github.com/JIexa3/StoreOfHandWork/routes"
	"github.com/JIexa3/StoreOfHandWork/services"
)

const (
	uploadsDir = "./uploads"
	backupDir  = "./backup/uploads"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	db := initDatabase(cfg, log)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Product{},
		&models.CartItem{},
		&models.WishListItem{},
		&models.Review{},
		&models.PickupPoint{},
		&models.Order{},
		&models.OrderItem{},
		&models.ReturnRequest{},
		&models.ReturnPolicy{},
	); err != nil {
		log.WithError(err).Fatal("auto-migrate failed")
	}
	seedDefaults(db, log)

	mailer := services.NewEmailService(services.SMTPConfig{
		Server:   cfg.SMTPServer,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.FromEmail,
	}, log)

	inventory := services.NewInventoryService(db, log)
	cart := services.NewCartService(db, inventory, log)
	orders := services.NewOrderService(db, inventory, mailer, log, cfg.AutoDeliverAfter)
	returns := services.NewReturnService(db, inventory, mailer, log)

	// Re-arm delivery timers for orders that were in flight before the last
	// restart.
	if err := orders.ResumeAutoDeliver(); err != nil {
		log.WithError(err).Warn("failed to resume auto-deliver timers")
	}
	defer orders.Stop()

	r := gin.Default()
	r.MaxMultipartMemory = 32 << 20 // 32 MB

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Serve uploaded product images
	r.Static("/uploads", uploadsDir)

	routes.SetupRoutes(r, &routes.Deps{
		DB:        db,
		Config:    cfg,
		Log:       log,
		Inventory: inventory,
		Cart:      cart,
		Orders:    orders,
		Returns:   returns,
		Mailer:    mailer,
	})

	// Nightly image backup at 2 AM, four days of history
	go startDailyBackupAtFixedTime(log, uploadsDir, backupDir, 4*24*time.Hour, 2, 0)

	log.WithField("port", cfg.Port).Info("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}

// initDatabase sets up the GORM connection. TranslateError turns driver
// duplicate-key failures into gorm.ErrDuplicatedKey, which the checkout retry
// and registration paths rely on.
func initDatabase(cfg config.Config, log *logrus.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	return db
}

// seedDefaults makes sure a fresh database starts with a usable return
// policy; everything else is created through the admin API.
func seedDefaults(db *gorm.DB, log *logrus.Logger) {
	var count int64
	if err := db.Model(&models.ReturnPolicy{}).Count(&count).Error; err != nil {
		log.WithError(err).Warn("failed to check return policies")
		return
	}
	if count > 0 {
		return
	}

	policy := models.ReturnPolicy{
		Title:            "Политика возврата",
		ReturnPeriodDays: 14,
		GeneralConditions: "Возврат возможен в течение 14 дней с момента получения заказа " +
			"при сохранении товарного вида.",
		RefundPolicy:   "Возврат денежных средств выполняется в течение 3-5 рабочих дней.",
		ExchangePolicy: "Обмен выполняется при наличии выбранного товара на складе.",
		IsActive:       true,
		UpdatedBy:      "system",
	}
	if err := db.Create(&policy).Error; err != nil {
		log.WithError(err).Warn("failed to seed default return policy")
		return
	}
	log.Info("seeded default return policy")
}

// startDailyBackupAtFixedTime copies uploaded images daily at a fixed hour
// and prunes backups older than the retention window.
func startDailyBackupAtFixedTime(log *logrus.Logger, srcDir, backupDir string, retention time.Duration, hour, min int) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}
		time.Sleep(next.Sub(now))

		timestamp := time.Now().Format("2006-01-02_15-04-05")
		destDir := filepath.Join(backupDir, timestamp)

		if err := copyDir(srcDir, destDir); err != nil {
			log.WithError(err).Warn("image backup failed")
		} else {
			log.WithField("dest", destDir).Info("images backed up")
		}

		cleanupOldBackups(log, backupDir, retention)
	}
}

// copyDir recursively copies a folder.
func copyDir(src, dest string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		destPath := filepath.Join(dest, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, destPath); err != nil {
				return err
			}
		} else {
			if err := copyFile(srcPath, destPath); err != nil {
				return err
			}
		}
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// cleanupOldBackups removes backup folders older than the retention window.
func cleanupOldBackups(log *logrus.Logger, backupDir string, retention time.Duration) {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		log.WithError(err).Warn("failed to read backup directory")
		return
	}

	cutoff := time.Now().Add(-retention)

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		folderPath := filepath.Join(backupDir, entry.Name())
		info, err := os.Stat(folderPath)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.RemoveAll(folderPath); err != nil {
				log.WithError(err).WithField("path", folderPath).Warn("failed to remove old backup")
			}
		}
	}
}
