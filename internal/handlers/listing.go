// internal/handlers/listing.go
package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/autosalvage/storefront/internal/i18n"
	"github.com/autosalvage/storefront/internal/query"
	"github.com/autosalvage/storefront/internal/services"
	"github.com/autosalvage/storefront/internal/utils"
)

// imagesField is the multipart field carrying listing photos.
const imagesField = "images"

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyInvalidID), nil)
		return 0, false
	}
	return uint(id), true
}

func isJSON(c *gin.Context) bool {
	return c.ContentType() == binding.MIMEJSON
}

// uploadedImages returns the files of a multipart request in the order they
// were sent. Non-multipart requests carry no files.
func uploadedImages(c *gin.Context) ([]*multipart.FileHeader, error) {
	form, err := c.MultipartForm()
	if errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return form.File[imagesField], nil
}

// Form values arrive as text; blank fields are stored as NULL.

func formText(v *string) *string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	return v
}

// firstText returns the first non-nil value, for fields accepted under two names.
func firstText(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func formInt(field string, v *string) (*int, error) {
	if formText(v) == nil {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(*v))
	if err != nil {
		return nil, utils.ValidationError{Field: field, Tag: "number", Message: field + " must be a whole number"}
	}
	return &n, nil
}

func formDecimal(field string, v *string) (decimal.NullDecimal, error) {
	if formText(v) == nil {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(*v))
	if err != nil {
		return decimal.NullDecimal{}, utils.ValidationError{Field: field, Tag: "number", Message: field + " must be a number"}
	}
	return decimal.NewNullDecimal(d), nil
}

func badInput(c *gin.Context, err error) {
	if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}
	lang := utils.GetLangFromContext(c)
	utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
}

// respondError maps service errors onto HTTP responses. Anything unexpected
// is logged and reported as a generic internal error.
func respondError(c *gin.Context, err error, resource string) {
	lang := utils.GetLangFromContext(c)

	var tooMany *services.TooManyFilesError
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, resource)
	case errors.Is(err, query.ErrInvalidFilter):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyInvalidFilter), err.Error())
	case errors.As(err, &tooMany):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileTooMany, tooMany.Limit), nil)
	case len(utils.GetValidationErrors(err)) > 0:
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	case errors.Is(err, services.ErrUploadFailed):
		logError(c, err, "File upload failed")
		utils.ErrorResponse(c, http.StatusInternalServerError, "UPLOAD_FAILED", i18n.T(lang, i18n.KeyFileUploadFailed), nil)
	default:
		logError(c, err, "Request failed")
		utils.InternalErrorResponse(c)
	}
}

func logError(c *gin.Context, err error, msg string) {
	fields := logrus.Fields{
		"request_id": utils.GetRequestIDFromContext(c),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		fields["pg_code"] = pgErr.Code
		fields["pg_constraint"] = pgErr.ConstraintName
	}

	logrus.WithError(err).WithFields(fields).Error(msg)
}
