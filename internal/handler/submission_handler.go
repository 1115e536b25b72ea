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

// SubmissionHandler manages submission endpoints.
type SubmissionHandler struct {
	service   service.ActivityService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSubmissionHandler builds a submission handler instance.
func NewSubmissionHandler(svc service.ActivityService, validate *validator.Validate, logger zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		service:   svc,
		validator: validate,
		logger:    logger.With().Str("component", "submission_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *SubmissionHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("/instance/:instanceId", h.listByInstance)
	router.Get("/instance/:instanceId/student/:studentId", h.getByStudent)
}

func (h *SubmissionHandler) create(c *fiber.Ctx) error {
	var payload dto.SubmissionCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return h.handleError(c, err)
	}

	submission, err := h.service.RecordSubmission(c.Context(), payload.InstanceID, payload.StudentID, payload.AttemptModels())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "submission recorded", dto.NewSubmissionResponse(submission))
}

func (h *SubmissionHandler) listByInstance(c *fiber.Ctx) error {
	submissions, err := h.service.GetSubmissionsForInstance(c.Context(), c.Params("instanceId"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submissions retrieved", dto.NewSubmissionListResponse(submissions))
}

func (h *SubmissionHandler) getByStudent(c *fiber.Ctx) error {
	submission, err := h.service.GetSubmissionByInstanceAndStudent(c.Context(), c.Params("instanceId"), c.Params("studentId"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submission retrieved", dto.NewSubmissionResponse(submission))
}

func (h *SubmissionHandler) handleError(c *fiber.Ctx, err error) error {
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
