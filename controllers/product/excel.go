package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/JIexa3/StoreOfHandWork/models"
)

// ImportProductsFromExcel bulk-loads the catalog from a spreadsheet. Columns:
// ID, Name, Description, Price, Stock, ImagePath, CategoryID, TagIDs, IsActive.
// Rows with an existing ID update that product; others insert.
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse Excel file"})
			return
		}

		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		sheet := xlFile.Sheets[0]
		createdCount, updatedCount, skippedCount := 0, 0, 0

		for i := 1; i < sheet.MaxRow; i++ {
			row := sheet.Rows[i]

			get := func(index int) string {
				if index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].String())
				}
				return ""
			}

			name := get(1)
			price, priceErr := strconv.ParseFloat(get(3), 64)
			if name == "" || priceErr != nil || price < 0 {
				skippedCount++
				continue
			}

			stock, _ := strconv.Atoi(get(4))
			if stock < 0 {
				stock = 0
			}

			var categoryID uint
			if catStr := get(6); catStr != "" {
				if id64, err := strconv.ParseUint(catStr, 10, 64); err == nil {
					categoryID = uint(id64)
				}
			}

			tags, tagErr := parseTagIDs(db, get(7))
			if tagErr != nil {
				skippedCount++
				continue
			}

			isActive := true
			if activeStr := get(8); activeStr != "" {
				if parsed, err := strconv.ParseBool(activeStr); err == nil {
					isActive = parsed
				}
			}

			product := models.Product{
				Name:          name,
				Description:   get(2),
				Price:         price,
				StockQuantity: stock,
				ImagePath:     get(5),
				IsActive:      isActive,
				CategoryID:    categoryID,
				Tags:          tags,
			}

			if idStr := get(0); idStr != "" {
				if id, err := strconv.Atoi(idStr); err == nil {
					var existing models.Product
					if err := db.Preload("Tags").First(&existing, id).Error; err == nil {
						existing.Name = product.Name
						existing.Description = product.Description
						existing.Price = product.Price
						existing.StockQuantity = product.StockQuantity
						existing.ImagePath = product.ImagePath
						existing.IsActive = product.IsActive
						existing.CategoryID = product.CategoryID

						if err := db.Model(&existing).Association("Tags").Replace(tags); err != nil {
							skippedCount++
							continue
						}
						if err := db.Save(&existing).Error; err == nil {
							updatedCount++
							continue
						}
						skippedCount++
						continue
					}
				}
			}

			if err := db.Create(&product).Error; err == nil {
				createdCount++
			} else {
				skippedCount++
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": createdCount,
			"updated_count": updatedCount,
			"skipped_count": skippedCount,
		})
	}
}
