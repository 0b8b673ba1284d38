package productControllers

import (
	"errors"

	"sellinginfinity/middleware"
	"sellinginfinity/storage"
	productValidators "sellinginfinity/validators/product"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Controller struct {
	pdfs *storage.PDFStorage
	log  *zap.Logger
}

// NewController accepts a nil storage; the endpoints then answer 503.
func NewController(pdfs *storage.PDFStorage, log *zap.Logger) *Controller {
	return &Controller{pdfs: pdfs, log: log}
}

func (ctl *Controller) UploadPDF(c *fiber.Ctx) error {
	if ctl.pdfs == nil {
		return ctl.unavailable(c)
	}
	req, ok := c.Locals("validatedUpload").(*productValidators.UploadRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidRequest, "Invalid request data!")
	}

	src, err := req.File.Open()
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidRequest, "Unable to read uploaded file")
	}
	defer src.Close()

	key, err := ctl.pdfs.Upload(c.UserContext(), req.ProductID, src, req.File.Size)
	if err != nil {
		ctl.log.Error("pdf upload failed", zap.String("product_id", req.ProductID), zap.Error(err))
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "Failed to upload PDF")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "PDF uploaded successfully", fiber.Map{
		"productId": req.ProductID,
		"key":       key,
	})
}

func (ctl *Controller) PDFURL(c *fiber.Ctx) error {
	if ctl.pdfs == nil {
		return ctl.unavailable(c)
	}
	productID, _ := c.Locals("validatedProductId").(string)

	u, err := ctl.pdfs.URL(c.UserContext(), productID)
	if errors.Is(err, storage.ErrPDFNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, "PDF not found for this product")
	}
	if err != nil {
		ctl.log.Error("pdf url failed", zap.String("product_id", productID), zap.Error(err))
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "Failed to get PDF URL")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "PDF URL generated", u)
}

func (ctl *Controller) unavailable(c *fiber.Ctx) error {
	return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, middleware.CodeInternal, "Object storage is not configured")
}
