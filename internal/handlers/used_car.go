// internal/handlers/used_car.go
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

// UsedCarService is the used car store used by UsedCarHandler.
type UsedCarService interface {
	ListUsedCars(ctx context.Context, criteria query.Criteria) ([]models.UsedCar, error)
	GetUsedCar(ctx context.Context, id uint) (*models.UsedCar, error)
	CreateUsedCar(ctx context.Context, input *services.UsedCarInput, files []*multipart.FileHeader) (*models.UsedCar, error)
	UpdateUsedCar(ctx context.Context, id uint, input *services.UsedCarInput, files []*multipart.FileHeader) (*models.UsedCar, error)
	DeleteUsedCar(ctx context.Context, id uint) error
}

const usedCarResource = "used_car"

type UsedCarHandler struct {
	usedCarService UsedCarService
}

func NewUsedCarHandler(usedCarService UsedCarService) *UsedCarHandler {
	return &UsedCarHandler{
		usedCarService: usedCarService,
	}
}

type usedCarForm struct {
	Make    *string `form:"make"`
	Model   *string `form:"model"`
	Year    *string `form:"year"`
	Price   *string `form:"price"`
	Mileage *string `form:"mileage"`
}

func (f *usedCarForm) input() (*services.UsedCarInput, error) {
	year, err := formInt("year", f.Year)
	if err != nil {
		return nil, err
	}
	price, err := formDecimal("price", f.Price)
	if err != nil {
		return nil, err
	}
	mileage, err := formInt("mileage", f.Mileage)
	if err != nil {
		return nil, err
	}

	return &services.UsedCarInput{
		Make:    formText(f.Make),
		Model:   formText(f.Model),
		Year:    year,
		Price:   price,
		Mileage: mileage,
	}, nil
}

func (h *UsedCarHandler) bind(c *gin.Context) (*services.UsedCarInput, []*multipart.FileHeader, error) {
	if isJSON(c) {
		var input services.UsedCarInput
		if err := c.ShouldBindJSON(&input); err != nil {
			return nil, nil, err
		}
		return &input, nil, nil
	}

	var form usedCarForm
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

// GET /api/used_cars
func (h *UsedCarHandler) GetUsedCars(c *gin.Context) {
	criteria := query.CriteriaFromValues(c.Request.URL.Query())

	cars, err := h.usedCarService.ListUsedCars(c.Request.Context(), criteria)
	if err != nil {
		respondError(c, err, usedCarResource)
		return
	}

	c.JSON(http.StatusOK, cars)
}

// GET /api/used_cars/:id
func (h *UsedCarHandler) GetUsedCar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	car, err := h.usedCarService.GetUsedCar(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, usedCarResource)
		return
	}

	c.JSON(http.StatusOK, car)
}

// POST /api/used_cars
func (h *UsedCarHandler) CreateUsedCar(c *gin.Context) {
	input, files, err := h.bind(c)
	if err != nil {
		badInput(c, err)
		return
	}

	car, err := h.usedCarService.CreateUsedCar(c.Request.Context(), input, files)
	if err != nil {
		respondError(c, err, usedCarResource)
		return
	}

	c.JSON(http.StatusOK, car)
}

// PUT /api/used_cars/:id
func (h *UsedCarHandler) UpdateUsedCar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	input, files, err := h.bind(c)
	if err != nil {
		badInput(c, err)
		return
	}

	car, err := h.usedCarService.UpdateUsedCar(c.Request.Context(), id, input, files)
	if err != nil {
		respondError(c, err, usedCarResource)
		return
	}

	c.JSON(http.StatusOK, car)
}

// DELETE /api/used_cars/:id
func (h *UsedCarHandler) DeleteUsedCar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.usedCarService.DeleteUsedCar(c.Request.Context(), id); err != nil {
		respondError(c, err, usedCarResource)
		return
	}

	c.Status(http.StatusNoContent)
}
