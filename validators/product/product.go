package productValidators

import (
	"mime/multipart"
	"strings"

	"sellinginfinity/middleware"
	"sellinginfinity/utils"

	"github.com/gofiber/fiber/v2"
)

const maxPDFSize = 20 << 20

type UploadRequest struct {
	ProductID string
	File      *multipart.FileHeader
}

func UploadPDF() fiber.Handler {
	return func(c *fiber.Ctx) error {
		errors := make(map[string]string)

		productID := strings.TrimSpace(c.FormValue("productId"))
		if productID == "" {
			errors["productId"] = "productId is required!"
		}

		file, err := c.FormFile("file")
		switch {
		case err != nil:
			errors["file"] = "file is required!"
		case !utils.IsPDF(file):
			errors["file"] = "Only PDF files are allowed!"
		case file.Size > maxPDFSize:
			errors["file"] = "File must not exceed 20MB!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpload", &UploadRequest{ProductID: productID, File: file})
		return c.Next()
	}
}

func PDFURL() fiber.Handler {
	return func(c *fiber.Ctx) error {
		productID := strings.TrimSpace(c.Query("productId"))
		if productID == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeMissingField, "Product ID is required")
		}
		c.Locals("validatedProductId", productID)
		return c.Next()
	}
}
