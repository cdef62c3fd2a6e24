package orderControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/JIexa3/StoreOfHandWork/models"
)

// ExportOrdersToExcel streams the order book, optionally bounded by
// ?from=YYYY-MM-DD&to=YYYY-MM-DD.
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("OrderItems").Preload("OrderItems.Product").
			Preload("User").Preload("PickupPoint").
			Order("order_date desc")

		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
				return
			}
			query = query.Where("order_date >= ?", from)
		}
		if toStr := c.Query("to"); toStr != "" {
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date"})
				return
			}
			query = query.Where("order_date < ?", to.Add(24*time.Hour))
		}

		var orders []models.Order
		if err := query.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"OrderNumber", "TrackingNumber", "Date", "Status",
			"Customer", "Email", "PickupPoint", "Items", "TotalAmount",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			row := sheet.AddRow()
			row.AddCell().SetValue(o.OrderNumber)
			row.AddCell().SetValue(o.TrackingNumber)
			row.AddCell().SetValue(o.OrderDate.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(models.OrderStatusDisplay(o.Status))

			customer, email := "", ""
			if o.User != nil {
				customer, email = o.User.Name, o.User.Email
			}
			row.AddCell().SetValue(customer)
			row.AddCell().SetValue(email)

			pickup := o.PickupAddress
			if o.PickupPoint != nil {
				pickup = o.PickupPoint.Name
			}
			row.AddCell().SetValue(pickup)

			itemCount := 0
			for _, item := range o.OrderItems {
				itemCount += item.Quantity
			}
			row.AddCell().SetValue(itemCount)
			row.AddCell().SetValue(o.TotalAmount)
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}

type productSales struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitsSold   int     `json:"units_sold"`
	Revenue     float64 `json:"revenue"`
}

// SalesStatisticsHandler aggregates delivered orders into per-product totals.
// GET /admin/reports/sales?from=...&to=...
func SalesStatisticsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.OrderItem{}).
			Select("order_items.product_id, products.name AS product_name, SUM(order_items.quantity) AS units_sold, SUM(order_items.quantity * order_items.price) AS revenue").
			Joins("JOIN orders ON orders.id = order_items.order_id").
			Joins("JOIN products ON products.id = order_items.product_id").
			Where("orders.status = ?", models.OrderStatusDelivered).
			Group("order_items.product_id, products.name").
			Order("revenue desc")

		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
				return
			}
			query = query.Where("orders.order_date >= ?", from)
		}
		if toStr := c.Query("to"); toStr != "" {
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date"})
				return
			}
			query = query.Where("orders.order_date < ?", to.Add(24*time.Hour))
		}

		var rows []productSales
		if err := query.Scan(&rows).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate sales"})
			return
		}

		totalRevenue := 0.0
		totalUnits := 0
		for _, r := range rows {
			totalRevenue += r.Revenue
			totalUnits += r.UnitsSold
		}

		var statusRows []struct {
			Status models.OrderStatus `json:"status"`
			Count  int64              `json:"count"`
		}
		if err := db.Model(&models.Order{}).
			Select("status, COUNT(*) AS count").
			Group("status").
			Scan(&statusRows).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate order statuses"})
			return
		}
		ordersByStatus := make(map[models.OrderStatus]int64, len(statusRows))
		for _, r := range statusRows {
			ordersByStatus[r.Status] = r.Count
		}

		c.JSON(http.StatusOK, gin.H{
			"products":         rows,
			"total_revenue":    totalRevenue,
			"total_units":      totalUnits,
			"orders_by_status": ordersByStatus,
		})
	}
}
