//go:build integration
// +build integration

// internal/services/listing_integration_test.go
package services

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/autosalvage/storefront/internal/config"
	"github.com/autosalvage/storefront/internal/database"
	"github.com/autosalvage/storefront/internal/models"
	"github.com/autosalvage/storefront/internal/query"
)

type ListingTestSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *database.DB
	products  *ProductService
	usedCars  *UsedCarService
}

func (suite *ListingTestSuite) SetupSuite() {
	suite.ctx = context.Background()

	container, err := postgres.Run(suite.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("storefront"),
		postgres.WithUsername("storefront"),
		postgres.WithPassword("storefront"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(suite.ctx, "sslmode=disable")
	suite.Require().NoError(err)

	suite.db, err = database.Initialize(config.DatabaseConfig{
		URL:          connStr,
		MaxOpenConns: 5,
		MaxIdleConns: 2,
		MaxLifetime:  300,
		LogLevel:     "silent",
	})
	suite.Require().NoError(err)
	suite.Require().NoError(database.RunMigrations(suite.db.Gorm))

	storage := NewStorageServiceWithStore(NewLocalFileStore(suite.T().TempDir(), "/uploads"), 10)
	suite.products = NewProductService(suite.db, storage)
	suite.usedCars = NewUsedCarService(suite.db, storage)
}

func (suite *ListingTestSuite) TearDownSuite() {
	if suite.db != nil {
		database.Close(suite.db)
	}
	if suite.container != nil {
		if err := suite.container.Terminate(suite.ctx); err != nil {
			suite.T().Logf("Failed to terminate container: %v", err)
		}
	}
}

func (suite *ListingTestSuite) SetupTest() {
	err := suite.db.Gorm.Exec("TRUNCATE products, product_images, used_cars, used_car_images RESTART IDENTITY CASCADE").Error
	suite.Require().NoError(err)
	suite.Require().NoError(database.SeedSampleData(suite.db.Gorm))
}

func (suite *ListingTestSuite) TestListProductsByConditionAndStock() {
	parts, err := suite.products.ListProducts(suite.ctx, query.Criteria{
		"condition":    "used",
		"stock_status": "in_stock",
	})
	suite.Require().NoError(err)
	suite.Len(parts, 3)

	for _, p := range parts {
		suite.Equal("used", *p.Condition)
		suite.Equal("in_stock", *p.StockStatus)
		suite.NotEmpty(p.Images)
	}
}

func (suite *ListingTestSuite) TestListProductsUnfiltered() {
	parts, err := suite.products.ListProducts(suite.ctx, query.Criteria{"unknown": "x"})
	suite.Require().NoError(err)
	suite.Len(parts, 9)
	suite.Len(parts[0].Images, 3)
}

func (suite *ListingTestSuite) TestListProductsMatchesCarCaseInsensitively() {
	parts, err := suite.products.ListProducts(suite.ctx, query.Criteria{"car": "camry"})
	suite.Require().NoError(err)
	suite.Require().Len(parts, 1)
	suite.Equal("Toyota Camry", *parts[0].Car)
	suite.Len(parts[0].Images, 3)
}

func (suite *ListingTestSuite) TestListToleratesLegacyImageColumn() {
	for _, table := range []string{"products", "used_cars"} {
		suite.Require().NoError(suite.db.Gorm.Exec("ALTER TABLE " + table + " ADD COLUMN IF NOT EXISTS image TEXT").Error)
	}
	defer func() {
		for _, table := range []string{"products", "used_cars"} {
			suite.NoError(suite.db.Gorm.Exec("ALTER TABLE " + table + " DROP COLUMN IF EXISTS image").Error)
		}
	}()

	parts, err := suite.products.ListProducts(suite.ctx, query.Criteria{})
	suite.Require().NoError(err)
	suite.Len(parts, 9)

	cars, err := suite.usedCars.ListUsedCars(suite.ctx, query.Criteria{})
	suite.Require().NoError(err)
	suite.Len(cars, 3)
}

func (suite *ListingTestSuite) TestListUsedCarsMatchesModelCaseInsensitively() {
	criteria := query.CriteriaFromValues(url.Values{"model": {"camry"}})

	cars, err := suite.usedCars.ListUsedCars(suite.ctx, criteria)
	suite.Require().NoError(err)
	suite.Require().Len(cars, 1)
	suite.Equal("Toyota", *cars[0].Make)
	suite.Equal("Camry", *cars[0].Model)
}

func (suite *ListingTestSuite) TestListUsedCarsYearRangeIsInclusive() {
	cars, err := suite.usedCars.ListUsedCars(suite.ctx, query.Criteria{"year_from": "2019", "year_to": "2019"})
	suite.Require().NoError(err)
	suite.Require().Len(cars, 1)
	suite.Equal(2019, *cars[0].Year)

	cars, err = suite.usedCars.ListUsedCars(suite.ctx, query.Criteria{"year_from": "2018", "price_to": "22000"})
	suite.Require().NoError(err)
	suite.Len(cars, 2)
}

func (suite *ListingTestSuite) TestListUsedCarsRejectsMalformedRange() {
	_, err := suite.usedCars.ListUsedCars(suite.ctx, query.Criteria{"year_from": "twenty"})
	suite.ErrorIs(err, query.ErrInvalidFilter)
}

func (suite *ListingTestSuite) TestCreateProductRecordsImagesInOrder() {
	input := &CarPartInput{
		Name:  models.StringPtr("Radiator"),
		Price: decimal.NewNullDecimal(decimal.RequireFromString("95.50")),
	}
	files := uploadHeaders(suite.T(), "one.jpg", "two.jpg", "three.jpg")

	part, err := suite.products.CreateProduct(suite.ctx, input, files)
	suite.Require().NoError(err)
	suite.Equal(models.ListingTypeCarPart, part.Type)
	suite.Require().Len(part.Images, 3)

	var rows []models.ProductImage
	suite.Require().NoError(suite.db.Gorm.Where("product_id = ?", part.ID).Order("id").Find(&rows).Error)
	suite.Require().Len(rows, 3)
	for i, name := range []string{"one.jpg", "two.jpg", "three.jpg"} {
		suite.Equal(name, rows[i].Filename)
		suite.Equal(part.Images[i], rows[i].FilePath)
	}

	loaded, err := suite.products.GetProduct(suite.ctx, part.ID)
	suite.Require().NoError(err)
	suite.Equal(part.Images, loaded.Images)
	suite.True(loaded.Price.Decimal.Equal(decimal.RequireFromString("95.5")))
}

func (suite *ListingTestSuite) TestCreateUsedCarWithoutFiles() {
	car, err := suite.usedCars.CreateUsedCar(suite.ctx, &UsedCarInput{
		Make:  models.StringPtr("Mazda"),
		Model: models.StringPtr("MX-5"),
		Year:  models.IntPtr(2015),
	}, nil)
	suite.Require().NoError(err)
	suite.NotNil(car.Images)
	suite.Empty(car.Images)
	suite.Equal(models.ListingTypeUsedCar, car.Type)
}

func (suite *ListingTestSuite) TestCreateRejectsOutOfRangeValues() {
	_, err := suite.usedCars.CreateUsedCar(suite.ctx, &UsedCarInput{Mileage: models.IntPtr(-1)}, nil)
	suite.Error(err)

	var count int64
	suite.db.Gorm.Model(&models.UsedCar{}).Count(&count)
	suite.Equal(int64(3), count)
}

func (suite *ListingTestSuite) TestUpdateProductReplacesEveryField() {
	parts, err := suite.products.ListProducts(suite.ctx, query.Criteria{"name": "caliper"})
	suite.Require().NoError(err)
	suite.Require().Len(parts, 1)
	original := parts[0]

	updated, err := suite.products.UpdateProduct(suite.ctx, original.ID, &CarPartInput{
		Name: models.StringPtr("Rear Brake Caliper Set"),
	}, uploadHeaders(suite.T(), "extra.jpg"))
	suite.Require().NoError(err)

	suite.Equal("Rear Brake Caliper Set", *updated.Name)
	suite.Nil(updated.Car)
	suite.Nil(updated.Condition)
	suite.Nil(updated.StockStatus)
	suite.False(updated.Price.Valid)
	suite.Len(updated.Images, len(original.Images)+1)
}

func (suite *ListingTestSuite) TestUpdateMissingProduct() {
	_, err := suite.products.UpdateProduct(suite.ctx, 9999, &CarPartInput{}, nil)
	suite.ErrorIs(err, ErrNotFound)
}

func (suite *ListingTestSuite) TestDeleteIsScopedByDiscriminator() {
	stray := &models.CarPart{Name: models.StringPtr("Not a part"), Type: models.ListingTypeUsedCar}
	suite.Require().NoError(suite.db.Gorm.Create(stray).Error)

	suite.Require().NoError(suite.products.DeleteProduct(suite.ctx, stray.ID))

	var count int64
	suite.db.Gorm.Model(&models.CarPart{}).Where("id = ?", stray.ID).Count(&count)
	suite.Equal(int64(1), count)

	_, err := suite.products.GetProduct(suite.ctx, stray.ID)
	suite.ErrorIs(err, ErrNotFound)
}

func (suite *ListingTestSuite) TestDeleteUsedCarRemovesImages() {
	car, err := suite.usedCars.CreateUsedCar(suite.ctx, &UsedCarInput{Make: models.StringPtr("Kia")},
		uploadHeaders(suite.T(), "kia.jpg"))
	suite.Require().NoError(err)

	suite.Require().NoError(suite.usedCars.DeleteUsedCar(suite.ctx, car.ID))

	var images int64
	suite.db.Gorm.Model(&models.UsedCarImage{}).Where("used_car_id = ?", car.ID).Count(&images)
	suite.Zero(images)

	_, err = suite.usedCars.GetUsedCar(suite.ctx, car.ID)
	suite.ErrorIs(err, ErrNotFound)
}

func TestListingSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed tests in short mode")
	}
	suite.Run(t, new(ListingTestSuite))
}
