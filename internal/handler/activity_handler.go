package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mrnewton/activity-api/internal/dto"
	"github.com/mrnewton/activity-api/internal/service"
	"github.com/mrnewton/activity-api/internal/utils"
)

// ActivityHandler manages activity configuration and parameter schema
// endpoints. Writes go through the facade; the remaining reads use the
// service directly, mirroring the operations the facade exposes.
type ActivityHandler struct {
	facade    *service.ActivityFacade
	service   service.ActivityService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewActivityHandler builds an activity handler instance.
func NewActivityHandler(facade *service.ActivityFacade, svc service.ActivityService, validate *validator.Validate, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		facade:    facade,
		service:   svc,
		validator: validate,
		logger:    logger.With().Str("component", "activity_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group. The static
// /params routes must be registered before the :activityId wildcard.
func (h *ActivityHandler) Register(router fiber.Router) {
	router.Get("/params", h.getParams)
	router.Put("/params", h.updateParams)
	router.Post("", h.create)
	router.Get("", h.list)
	router.Get("/:activityId", h.get)
}

func (h *ActivityHandler) create(c *fiber.Ctx) error {
	payload := map[string]any{}
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	activity, err := h.facade.CreateActivity(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	response, err := dto.NewActivityResponse(activity)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "activity created", response)
}

func (h *ActivityHandler) get(c *fiber.Ctx) error {
	activityID := c.Params("activityId")

	activity, err := h.facade.GetActivity(c.Context(), activityID)
	if err != nil {
		return h.handleError(c, err)
	}
	if activity == nil {
		return utils.SendError(c, fiber.StatusNotFound, "activity not found: "+activityID)
	}

	response, err := dto.NewActivityResponse(*activity)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "activity retrieved", response)
}

func (h *ActivityHandler) list(c *fiber.Ctx) error {
	activities, err := h.service.GetAllActivities(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	response, err := dto.NewActivityListResponse(activities)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "activities retrieved", response)
}

func (h *ActivityHandler) getParams(c *fiber.Ctx) error {
	schema, err := h.service.GetCurrentConfigParamsSchema(c.Context())
	if err != nil {
		var notFound *service.NotFoundError
		if errors.As(err, &notFound) {
			return utils.SendError(c, fiber.StatusNotFound, "no parameter schema found, create one with PUT /api/v1/config/params")
		}
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "parameter schema retrieved", dto.ParamsResponse{Params: schema.ParamList()})
}

func (h *ActivityHandler) updateParams(c *fiber.Ctx) error {
	var payload dto.UpdateParamsRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return h.handleError(c, err)
	}

	schema, err := h.service.SaveConfigParamsSchema(c.Context(), payload.ParamModels())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "parameter schema updated", dto.NewSchemaSavedResponse(schema))
}

func (h *ActivityHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErr *service.ValidationError
	var notFoundErr *service.NotFoundError
	var requestErrors validator.ValidationErrors
	switch {
	case errors.As(err, &validationErr):
		return utils.SendValidationError(c, validationErr.Result.Errors)
	case errors.As(err, &notFoundErr):
		return utils.SendError(c, fiber.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &requestErrors):
		return utils.SendError(c, fiber.StatusBadRequest, requestErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
