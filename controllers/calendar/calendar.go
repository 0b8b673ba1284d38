package calendarControllers

import (
	"errors"

	"sellinginfinity/middleware"
	"sellinginfinity/services/calendar"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Controller struct {
	calendar *calendar.Service
	log      *zap.Logger
}

func NewController(svc *calendar.Service, log *zap.Logger) *Controller {
	return &Controller{calendar: svc, log: log}
}

func (ctl *Controller) Block(c *fiber.Ctx) error {
	in, ok := c.Locals("validatedSlot").(*calendar.SlotInput)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidRequest, "Invalid request data!")
	}
	event, err := ctl.calendar.Block(c.UserContext(), *in)
	if err != nil {
		return ctl.fail(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Time slot blocked successfully", event)
}

func (ctl *Controller) Update(c *fiber.Ctx) error {
	in, ok := c.Locals("validatedSlot").(*calendar.SlotInput)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidRequest, "Invalid request data!")
	}
	event, err := ctl.calendar.Update(c.UserContext(), c.Params("id"), *in)
	if err != nil {
		return ctl.fail(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Time slot updated successfully", event)
}

func (ctl *Controller) Delete(c *fiber.Ctx) error {
	if err := ctl.calendar.Delete(c.UserContext(), c.Params("id")); err != nil {
		return ctl.fail(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Time slot deleted successfully", nil)
}

func (ctl *Controller) Week(c *fiber.Ctx) error {
	week, _ := c.Locals("validatedWeek").(string)
	events, err := ctl.calendar.ListWeek(c.UserContext(), week)
	if err != nil {
		return ctl.fail(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Calendar slots fetched successfully", events)
}

func (ctl *Controller) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, calendar.ErrNotFound):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, "Calendar slot not found")
	case errors.Is(err, calendar.ErrInvalidSlot), errors.Is(err, calendar.ErrInvalidRange):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidRequest, err.Error())
	}
	ctl.log.Error("calendar request failed", zap.Error(err))
	return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "Failed to update calendar slot")
}
