package controllers

import (
	"errors"
	"net/http"
	"strconv"

	apperrors "shop-service/common/errors"
	"shop-service/repository"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductController struct {
	Products repository.ProductRepository
	PageSize int
}

func NewProductController(products repository.ProductRepository, pageSize int) *ProductController {
	return &ProductController{Products: products, PageSize: pageSize}
}

// GetProducts returns one catalog page.
func (pc *ProductController) GetProducts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	products, total, err := pc.Products.Find(c, page, pc.PageSize)
	if err != nil {
		c.Error(apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	lastPage := (total + int64(pc.PageSize) - 1) / int64(pc.PageSize)
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"meta": gin.H{
			"page":          page,
			"limit":         pc.PageSize,
			"total":         total,
			"last_page":     lastPage,
			"has_next_page": int64(page*pc.PageSize) < total,
		},
	})
}

// GetProduct returns one product by id.
func (pc *ProductController) GetProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.Error(apperrors.Wrap(apperrors.ErrInvalidInput, err))
		return
	}

	product, err := pc.Products.FindByID(c, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.Error(apperrors.Wrap(apperrors.ErrNotFound, err))
			return
		}
		c.Error(apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, product)
}
