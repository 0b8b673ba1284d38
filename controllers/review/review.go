package reviewControllers

import (
	"errors"
	"fmt"
	"time"

	"sellinginfinity/middleware"
	"sellinginfinity/services/review"
	reviewValidators "sellinginfinity/validators/review"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Controller struct {
	reviews *review.Service
	log     *zap.Logger
}

func NewController(reviews *review.Service, log *zap.Logger) *Controller {
	return &Controller{reviews: reviews, log: log}
}

func (ctl *Controller) Submit(c *fiber.Ctx) error {
	req, ok := c.Locals("validatedReview").(*review.SubmitRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidRequest, "Invalid request data!")
	}

	r, err := ctl.reviews.Submit(c.UserContext(), *req)
	if err != nil {
		return ctl.fail(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Thank you! Your review has been submitted and is awaiting approval.", fiber.Map{
		"reviewId": r.ID,
	})
}

func (ctl *Controller) Approved(c *fiber.Ctx) error {
	page, ok := c.Locals("validatedPage").(*reviewValidators.PageQuery)
	if !ok {
		page = &reviewValidators.PageQuery{}
	}

	result, err := ctl.reviews.ListApproved(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return ctl.fail(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Approved reviews fetched successfully!", result)
}

func (ctl *Controller) List(c *fiber.Ctx) error {
	status, _ := c.Locals("validatedStatus").(string)

	reviews, err := ctl.reviews.ListForModeration(c.UserContext(), status)
	if err != nil {
		return ctl.fail(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched successfully!", fiber.Map{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

func (ctl *Controller) Stats(c *fiber.Ctx) error {
	stats, err := ctl.reviews.Stats(c.UserContext())
	if err != nil {
		return ctl.fail(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review stats fetched successfully!", stats)
}

func (ctl *Controller) Export(c *fiber.Ctx) error {
	status, _ := c.Locals("validatedStatus").(string)

	data, err := ctl.reviews.Export(c.UserContext(), status)
	if err != nil {
		return ctl.fail(c, err)
	}
	filename := fmt.Sprintf("reviews-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Status(fiber.StatusOK).Send(data)
}

func (ctl *Controller) Action(c *fiber.Ctx) error {
	req, ok := c.Locals("validatedReviewAction").(*reviewValidators.ActionRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidRequest, "Invalid request data!")
	}

	updated, err := ctl.reviews.Act(c.UserContext(), req.ReviewID, req.Action, req.AdminNotes)
	if err != nil {
		return ctl.fail(c, err)
	}

	if req.Action == review.ActionDelete {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Review deleted successfully", fiber.Map{
			"reviewId": req.ReviewID,
			"deleted":  true,
		})
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, fmt.Sprintf("Review %sd successfully", req.Action), updated)
}

// fail maps review errors to statuses and codes.
func (ctl *Controller) fail(c *fiber.Ctx, err error) error {
	var verr *review.ValidationError
	switch {
	case errors.As(err, &verr) && errors.Is(err, review.ErrMissingField):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeMissingField, fmt.Sprintf("Missing required field: %s", verr.Field))
	case errors.Is(err, review.ErrRatingOutOfRange):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeRatingOutOfRange, "Rating must be between 1 and 5")
	case errors.Is(err, review.ErrInvalidEmail):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidEmail, "Please enter a valid email address")
	case errors.Is(err, review.ErrInvalidName):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidRequest, "Name must not contain control characters")
	case errors.Is(err, review.ErrDuplicateSubmission):
		return middleware.ErrorResponse(c, fiber.StatusConflict, middleware.CodeDuplicateSubmission, "You have already submitted this review")
	case errors.Is(err, review.ErrNotFound):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, "Review not found")
	case errors.Is(err, review.ErrInvalidAction), errors.Is(err, review.ErrInvalidStatus):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidRequest, err.Error())
	case errors.Is(err, review.ErrStoreUnavailable):
		ctl.log.Error("review store unavailable", zap.Error(err))
		return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, middleware.CodeStoreUnavailable, "Service temporarily unavailable, please try again")
	}
	ctl.log.Error("review request failed", zap.Error(err))
	return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "Internal server error")
}
