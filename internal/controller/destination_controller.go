package controller

import (
	"ai-travelmate-be/internal/dto"
	"ai-travelmate-be/internal/pkg/serverutils"
	"ai-travelmate-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDestinationController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type destinationController struct {
	destinationService service.IDestinationService
	auth               fiber.Handler
}

func NewDestinationController(destinationService service.IDestinationService, auth fiber.Handler) IDestinationController {
	return &destinationController{
		destinationService: destinationService,
		auth:               auth,
	}
}

func (c *destinationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/destination/v1")
	h.Use(c.auth)
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
}

func (c *destinationController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateDestinationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.destinationService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create destination", res))
}

func (c *destinationController) List(ctx *fiber.Ctx) error {
	var req dto.ListDestinationsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	res, err := c.destinationService.List(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list destinations", res))
}

func (c *destinationController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid destination id")
	}

	res, err := c.destinationService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show destination", res))
}
