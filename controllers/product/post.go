package productcontroller

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JIexa3/StoreOfHandWork/models"
)

const uploadDir = "./uploads/products"
const publicUploadPath = "/uploads/products"

// CreateProduct creates a new product from a multipart form with an optional
// image upload.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		priceStr := c.PostForm("price")
		if name == "" || priceStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and price are required"})
			return
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}

		stock := 0
		if stockStr := c.PostForm("stock_quantity"); stockStr != "" {
			if stock, err = strconv.Atoi(stockStr); err != nil || stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock_quantity"})
				return
			}
		}

		var categoryID uint
		if categoryStr := c.PostForm("category_id"); categoryStr != "" {
			id64, parseErr := strconv.ParseUint(categoryStr, 10, 64)
			if parseErr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
				return
			}
			var category models.Category
			if err := db.First(&category, id64).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
				return
			}
			categoryID = category.ID
		}

		tags, err := parseTagIDs(db, c.PostForm("tag_ids"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		imagePath := ""
		if file, err := c.FormFile("image"); err == nil {
			imagePath, err = saveProductImage(c, file)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}

		product := models.Product{
			Name:          name,
			Description:   c.PostForm("description"),
			Price:         price,
			StockQuantity: stock,
			ImagePath:     imagePath,
			IsActive:      true,
			CategoryID:    categoryID,
			Tags:          tags,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

func parseTagIDs(db *gorm.DB, raw string) ([]models.Tag, error) {
	if raw == "" {
		return nil, nil
	}
	var ids []uint
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		id64, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid tag_ids format")
		}
		ids = append(ids, uint(id64))
	}
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	if err := db.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch tags")
	}
	return tags, nil
}

// saveProductImage stores the upload under a collision-free name and returns
// the public path served by the static route.
func saveProductImage(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create upload folder")
	}

	ext := filepath.Ext(file.Filename)
	base := strings.TrimSuffix(filepath.Base(file.Filename), ext)
	base = strings.ReplaceAll(base, " ", "_")
	filename := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), base, ext)

	if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, filename)); err != nil {
		return "", fmt.Errorf("failed to save image")
	}
	return fmt.Sprintf("%s/%s", publicUploadPath, filename), nil
}
