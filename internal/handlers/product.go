// internal/handlers/product.go
package handlers

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/autosalvage/storefront/internal/models"
	"github.com/autosalvage/storefront/internal/query"
	"github.com/autosalvage/storefront/internal/services"
)

// ProductService is the car part store used by ProductHandler.
type ProductService interface {
	ListProducts(ctx context.Context, criteria query.Criteria) ([]models.CarPart, error)
	GetProduct(ctx context.Context, id uint) (*models.CarPart, error)
	CreateProduct(ctx context.Context, input *services.CarPartInput, files []*multipart.FileHeader) (*models.CarPart, error)
	UpdateProduct(ctx context.Context, id uint, input *services.CarPartInput, files []*multipart.FileHeader) (*models.CarPart, error)
	DeleteProduct(ctx context.Context, id uint) error
}

// productResource prefixes the product not-found message key.
const productResource = "product"

type ProductHandler struct {
	productService ProductService
}

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

type carPartForm struct {
	Name        *string `form:"name"`
	Price       *string `form:"price"`
	Car         *string `form:"car"`
	Condition   *string `form:"condition"`
	StockStatus *string `form:"stock_status"`
	Part        *string `form:"part"`
	Category    *string `form:"category"`

	// stockStatus is what the admin dialogs send.
	StockStatusAlias *string `form:"stockStatus"`
}

type carPartJSON struct {
	services.CarPartInput
	StockStatusAlias *string `json:"stockStatus"`
}

func (f *carPartForm) input() (*services.CarPartInput, error) {
	price, err := formDecimal("price", f.Price)
	if err != nil {
		return nil, err
	}

	return &services.CarPartInput{
		Name:        formText(f.Name),
		Price:       price,
		Car:         formText(f.Car),
		Condition:   formText(f.Condition),
		StockStatus: firstText(formText(f.StockStatus), formText(f.StockStatusAlias)),
		Part:        formText(f.Part),
		Category:    formText(f.Category),
	}, nil
}

func (h *ProductHandler) bind(c *gin.Context) (*services.CarPartInput, []*multipart.FileHeader, error) {
	if isJSON(c) {
		var body carPartJSON
		if err := c.ShouldBindJSON(&body); err != nil {
			return nil, nil, err
		}
		input := body.CarPartInput
		input.StockStatus = firstText(input.StockStatus, body.StockStatusAlias)
		return &input, nil, nil
	}

	var form carPartForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		return nil, nil, err
	}
	input, err := form.input()
	if err != nil {
		return nil, nil, err
	}
	files, err := uploadedImages(c)
	if err != nil {
		return nil, nil, err
	}
	return input, files, nil
}

// GET /api/products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	criteria := query.CriteriaFromValues(c.Request.URL.Query())

	products, err := h.productService.ListProducts(c.Request.Context(), criteria)
	if err != nil {
		respondError(c, err, productResource)
		return
	}

	c.JSON(http.StatusOK, products)
}

// GET /api/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, productResource)
		return
	}

	c.JSON(http.StatusOK, product)
}

// POST /api/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	input, files, err := h.bind(c)
	if err != nil {
		badInput(c, err)
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), input, files)
	if err != nil {
		respondError(c, err, productResource)
		return
	}

	c.JSON(http.StatusOK, product)
}

// PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	input, files, err := h.bind(c)
	if err != nil {
		badInput(c, err)
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, input, files)
	if err != nil {
		respondError(c, err, productResource)
		return
	}

	c.JSON(http.StatusOK, product)
}

// DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err, productResource)
		return
	}

	c.Status(http.StatusNoContent)
}
