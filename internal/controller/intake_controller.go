package controller

import (
	"errors"

	"care-intake-be/internal/constant"
	"care-intake-be/internal/dto"
	"care-intake-be/internal/mapper"
	"care-intake-be/internal/pkg/serverutils"
	"care-intake-be/internal/service"
	"care-intake-be/pkg/ai/response"

	"github.com/gofiber/fiber/v2"
)

type IIntakeController interface {
	RegisterRoutes(r fiber.Router)
	Analyze(ctx *fiber.Ctx) error
	Options(ctx *fiber.Ctx) error
}

type intakeController struct {
	service service.IIntakeService
	mapper  *mapper.TriageMapper
}

func NewIntakeController(service service.IIntakeService) IIntakeController {
	return &intakeController{
		service: service,
		mapper:  mapper.NewTriageMapper(),
	}
}

func (c *intakeController) RegisterRoutes(r fiber.Router) {
	r.Post("/analyze", c.Analyze)
	r.Get("/intake/options", c.Options)
}

func (c *intakeController) Analyze(ctx *fiber.Ctx) error {
	var req dto.AnalyzeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(constant.MsgIntakeFieldsRequired))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(constant.MsgIntakeFieldsRequired))
	}

	result, err := c.service.Analyze(ctx.UserContext(), c.mapper.ToSupportRequest(&req))
	if err != nil {
		message := err.Error()
		if errors.Is(err, response.ErrEmptyReply) {
			message = constant.MsgNoAIResponse
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(message))
	}

	return ctx.JSON(c.mapper.ToResponse(result, constant.SourceAI))
}

func (c *intakeController) Options(ctx *fiber.Ctx) error {
	return ctx.JSON(c.service.Options())
}
