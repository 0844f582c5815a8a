package controller

import (
	"encoding/json"
	"strconv"

	"care-intake-be/internal/constant"
	"care-intake-be/internal/dto"
	"care-intake-be/internal/entity"
	"care-intake-be/internal/mapper"
	"care-intake-be/internal/pkg/logger"
	"care-intake-be/internal/pkg/serverutils"
	"care-intake-be/internal/repository/specification"
	"care-intake-be/internal/service"
	internalWS "care-intake-be/internal/websocket"
	"care-intake-be/pkg/ratelimit"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IFAQController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	Entries(ctx *fiber.Ctx) error
	Categories(ctx *fiber.Ctx) error
	LogQuery(ctx *fiber.Ctx) error
	ListLogs(ctx *fiber.Ctx) error
	Stream(ctx *fiber.Ctx) error
}

type FAQControllerOptions struct {
	// Limiter throttles POST /faq per client IP. Nil disables it.
	Limiter ratelimit.Limiter
	// LogReadSecret guards log reads and the stream. Empty leaves them open.
	LogReadSecret string
	// Hub backs the live stream. Nil disables the route.
	Hub *internalWS.Hub
}

type faqController struct {
	faqService      service.IFAQService
	queryLogService service.IQueryLogService
	opts            FAQControllerOptions
	mapper          *mapper.FAQMapper
	logger          logger.ILogger
}

func NewFAQController(
	faqService service.IFAQService,
	queryLogService service.IQueryLogService,
	opts FAQControllerOptions,
	log logger.ILogger,
) IFAQController {
	return &faqController{
		faqService:      faqService,
		queryLogService: queryLogService,
		opts:            opts,
		mapper:          mapper.NewFAQMapper(),
		logger:          log,
	}
}

func (c *faqController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/faq")

	if c.opts.Limiter != nil {
		h.Post("", serverutils.RateLimitMiddleware(c.opts.Limiter, constant.MsgRateLimited, c.logger), c.Ask)
	} else {
		h.Post("", c.Ask)
	}
	h.Get("/entries", c.Entries)
	h.Get("/categories", c.Categories)

	h.Post("/log", c.LogQuery)
	h.Get("/log", serverutils.JwtMiddleware(c.opts.LogReadSecret), c.ListLogs)
	if c.opts.Hub != nil {
		h.Get("/log/stream", serverutils.JwtMiddleware(c.opts.LogReadSecret), c.Stream)
	}
}

func (c *faqController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskFAQRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(constant.MsgQuestionRequired))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(constant.MsgQuestionRequired))
	}

	answer := c.faqService.Ask(ctx.UserContext(), req.Question)
	return ctx.JSON(c.mapper.ToAnswerResponse(answer))
}

func (c *faqController) Entries(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.FAQEntriesResponse{Entries: c.faqService.Entries(ctx.Query("category"))})
}

func (c *faqController) Categories(ctx *fiber.Ctx) error {
	return ctx.JSON(c.mapper.ToCategories(c.faqService.Categories()))
}

// LogQuery accepts any JSON object. Anything else is answered with success=false, still 200.
func (c *faqController) LogQuery(ctx *fiber.Ctx) error {
	var fields map[string]interface{}
	if err := json.Unmarshal(ctx.Body(), &fields); err != nil || fields == nil {
		c.logger.Warn("FAQController", "Rejected query log body", map[string]interface{}{"bytes": len(ctx.Body())})
		return ctx.JSON(dto.LogQueryResponse{Success: false})
	}

	c.queryLogService.Record(ctx.UserContext(), fields)
	return ctx.JSON(dto.LogQueryResponse{Success: true})
}

func (c *faqController) ListLogs(ctx *fiber.Ctx) error {
	var specs []specification.QueryLogSpecification

	switch t := entity.QueryLogType(ctx.Query("type")); t {
	case "":
	case entity.QueryLogTypeUnanswered, entity.QueryLogTypeReport:
		specs = append(specs, specification.ByLogType{Type: t})
	default:
		return fiber.NewError(fiber.StatusBadRequest, "type must be unanswered or report")
	}

	if raw := ctx.Query("matched"); raw != "" {
		matched, err := strconv.ParseBool(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "matched must be true or false")
		}
		specs = append(specs, specification.ByMatched{Matched: matched})
	}

	if raw := ctx.Query("faqId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "faqId must be an integer")
		}
		specs = append(specs, specification.ByFaqId{FaqId: id})
	}

	return ctx.JSON(c.mapper.ToQueryLogList(c.queryLogService.List(ctx.UserContext(), specs...)))
}

// Stream upgrades to a websocket that receives every bus event as a JSON text frame.
func (c *faqController) Stream(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}

	operator, _ := ctx.Locals("operator").(string)
	return websocket.New(func(conn *websocket.Conn) {
		c.logger.Info("FAQController", "Starting stream session", map[string]interface{}{"operator": operator})
		internalWS.ServeWs(c.opts.Hub, conn, operator)
		c.logger.Info("FAQController", "Stream session ended", map[string]interface{}{"operator": operator})
	})(ctx)
}
