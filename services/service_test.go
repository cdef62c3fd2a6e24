package services

import (
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/JIexa3/StoreOfHandWork/models"
)

// newTestDB opens a fresh in-memory database per test. The DSN is keyed on
// the test name so GORM's connection pool always lands on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Product{},
		&models.CartItem{},
		&models.PickupPoint{},
		&models.Order{},
		&models.OrderItem{},
		&models.ReturnRequest{},
		&models.ReturnPolicy{},
		&models.Review{},
		&models.WishListItem{},
	))
	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeMailer records every send so tests can assert that notifications were
// attempted (or not) without a real SMTP server.
type fakeMailer struct {
	mu           sync.Mutex
	failAll      bool
	orderEmails  []string // statusText per call
	returnEmails []models.ReturnStatus
}

func (m *fakeMailer) SendOrderStatusEmail(recipient, orderNumber, statusText string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return fmt.Errorf("smtp down")
	}
	m.orderEmails = append(m.orderEmails, statusText)
	return nil
}

func (m *fakeMailer) SendReturnStatusEmail(request *models.ReturnRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return fmt.Errorf("smtp down")
	}
	m.returnEmails = append(m.returnEmails, request.Status)
	return nil
}

func (m *fakeMailer) SendVerificationCode(recipient, code string) error {
	return nil
}

func (m *fakeMailer) orderEmailCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orderEmails)
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{
		Email:                     email,
		PasswordHash:              "x",
		Name:                      "Test User",
		IsEmailVerified:           true,
		EmailNotificationsEnabled: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Product {
	t.Helper()
	product := models.Product{
		Name:          name,
		Price:         price,
		StockQuantity: stock,
		IsActive:      true,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func createTestPickupPoint(t *testing.T, db *gorm.DB) *models.PickupPoint {
	t.Helper()
	point := models.PickupPoint{
		Name:      "Пункт выдачи №1",
		Address:   "г. Москва, ул. Ленина, д. 1",
		Latitude:  55.75,
		Longitude: 37.61,
	}
	require.NoError(t, db.Create(&point).Error)
	return &point
}

func reloadProduct(t *testing.T, db *gorm.DB, id uint) *models.Product {
	t.Helper()
	var product models.Product
	require.NoError(t, db.First(&product, id).Error)
	return &product
}
