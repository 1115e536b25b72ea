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

// InstanceHandler manages deployment instance endpoints.
type InstanceHandler struct {
	service   service.ActivityService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewInstanceHandler builds an instance handler instance.
func NewInstanceHandler(svc service.ActivityService, validate *validator.Validate, logger zerolog.Logger) *InstanceHandler {
	return &InstanceHandler{
		service:   svc,
		validator: validate,
		logger:    logger.With().Str("component", "instance_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *InstanceHandler) Register(router fiber.Router) {
	router.Post("", h.deploy)
	router.Get("/activity/:activityId", h.listByActivity)
	router.Get("/:instanceId", h.get)
}

func (h *InstanceHandler) deploy(c *fiber.Ctx) error {
	var payload dto.CreateInstanceRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if payload.ActivityID == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "activity_id is required")
	}

	deployment, err := h.service.CreateInstance(c.Context(), payload.ActivityID, payload.SessionParams)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "deployment instance created", dto.NewDeploymentResponse(deployment))
}

func (h *InstanceHandler) get(c *fiber.Ctx) error {
	instance, err := h.service.GetInstance(c.Context(), c.Params("instanceId"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "deployment instance retrieved", dto.NewInstanceResponse(instance))
}

func (h *InstanceHandler) listByActivity(c *fiber.Ctx) error {
	instances, err := h.service.GetInstancesForActivity(c.Context(), c.Params("activityId"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "deployment instances retrieved", dto.NewInstanceListResponse(instances))
}

func (h *InstanceHandler) handleError(c *fiber.Ctx, err error) error {
	var notFoundErr *service.NotFoundError
	var requestErrors validator.ValidationErrors
	switch {
	case errors.As(err, &notFoundErr):
		return utils.SendError(c, fiber.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &requestErrors):
		return utils.SendError(c, fiber.StatusBadRequest, requestErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
