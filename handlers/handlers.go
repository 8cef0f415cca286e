package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"truthonly/factcheck"
	"truthonly/history"
	"truthonly/models"
	"truthonly/storage"
	"truthonly/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Checker runs one verification.
type Checker interface {
	Check(ctx context.Context, req models.VerificationRequest) (factcheck.Outcome, error)
}

// Handler serves the fact-check API.
type Handler struct {
	checker  Checker
	records  *storage.Records
	history  *history.Store
	searches *history.Searches
	validate *validator.Validate
}

func New(checker Checker, records *storage.Records, hist *history.Store, searches *history.Searches) *Handler {
	return &Handler{
		checker:  checker,
		records:  records,
		history:  hist,
		searches: searches,
		validate: validator.New(),
	}
}

// CheckPayload is the expected payload for CreateCheck and ValidateInput.
type CheckPayload struct {
	InputType string `json:"inputType" validate:"required,oneof=url text image"`
	Content   string `json:"content"`
	FileName  string `json:"fileName"`
}

// SearchPayload is the expected payload for RecordSearch.
type SearchPayload struct {
	Query string `json:"query" validate:"required"`
}

func (h *Handler) parseCheck(c *fiber.Ctx) (models.VerificationRequest, string) {
	payload := new(CheckPayload)
	if err := c.BodyParser(payload); err != nil {
		return models.VerificationRequest{}, "Cannot parse JSON payload"
	}
	payload.InputType = strings.ToLower(strings.TrimSpace(payload.InputType))
	if err := h.validate.Struct(payload); err != nil {
		return models.VerificationRequest{}, "inputType must be one of url, text, image"
	}
	return models.NewVerificationRequest(models.InputType(payload.InputType), payload.Content, payload.FileName, time.Now()), ""
}

// CreateCheck handles a fact-check submission.
func (h *Handler) CreateCheck(c *fiber.Ctx) error {
	req, problem := h.parseCheck(c)
	if problem != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": problem})
	}

	if status := validation.ValidateRequest(req); !status.Valid() {
		msg := status.Message()
		if msg == "" {
			msg = "Input cannot be empty"
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  msg,
			"status": status,
		})
	}

	out, err := h.checker.Check(c.UserContext(), req)
	if errors.Is(err, factcheck.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Failed to check content: %s", err.Error()),
		})
	}
	return c.JSON(out)
}

// ValidateInput reports the validation status of a draft input.
func (h *Handler) ValidateInput(c *fiber.Ctx) error {
	req, problem := h.parseCheck(c)
	if problem != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": problem})
	}
	status := validation.ValidateRequest(req)
	return c.JSON(fiber.Map{
		"status":  status,
		"message": status.Message(),
	})
}

// ListChecks returns stored checks, newest first.
func (h *Handler) ListChecks(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	records, err := h.records.List(c.UserContext(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Failed to list checks: %s", err.Error()),
		})
	}
	return c.JSON(records)
}

// GetCheck returns one stored check.
func (h *Handler) GetCheck(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid check ID",
		})
	}

	record, err := h.records.Get(c.UserContext(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": fmt.Sprintf("Check with ID %s not found", id),
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Failed to get check: %s", err.Error()),
		})
	}
	return c.JSON(record)
}

// ListHistory returns the recent-checks list.
func (h *Handler) ListHistory(c *fiber.Ctx) error {
	return c.JSON(h.history.LoadAll(c.UserContext()))
}

// ClearHistory empties the recent-checks list.
func (h *Handler) ClearHistory(c *fiber.Ctx) error {
	if err := h.history.Clear(c.UserContext()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Suggestions returns search suggestions for the q query parameter.
func (h *Handler) Suggestions(c *fiber.Ctx) error {
	return c.JSON(h.searches.Suggest(c.UserContext(), c.Query("q")))
}

// RecordSearch adds a query to the recent searches.
func (h *Handler) RecordSearch(c *fiber.Ctx) error {
	payload := new(SearchPayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON payload",
		})
	}
	if err := h.validate.Struct(payload); err != nil || strings.TrimSpace(payload.Query) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query cannot be empty",
		})
	}
	if err := h.searches.Record(c.UserContext(), payload.Query); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(h.searches.LoadAll(c.UserContext()))
}

// RecentSearches returns the recent searches list.
func (h *Handler) RecentSearches(c *fiber.Ctx) error {
	return c.JSON(h.searches.LoadAll(c.UserContext()))
}

// ClearSearches empties the recent searches list.
func (h *Handler) ClearSearches(c *fiber.Ctx) error {
	if err := h.searches.Clear(c.UserContext()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetupRoutes configures the API routes for the application.
func (h *Handler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Post("/validate", h.ValidateInput)

	checks := api.Group("/checks")
	checks.Post("/", h.CreateCheck)
	checks.Get("/", h.ListChecks)
	checks.Get("/:id", h.GetCheck)

	api.Get("/history", h.ListHistory)
	api.Delete("/history", h.ClearHistory)

	search := api.Group("/search")
	search.Get("/suggestions", h.Suggestions)
	search.Post("/", h.RecordSearch)
	search.Get("/recent", h.RecentSearches)
	search.Delete("/recent", h.ClearSearches)
}
