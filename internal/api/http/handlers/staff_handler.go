package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Nwoyi/staffing-api/internal/api/dto"
	"github.com/Nwoyi/staffing-api/internal/service"
	"github.com/Nwoyi/staffing-api/internal/validation"
	"github.com/Nwoyi/staffing-api/pkg/pagination"
	apperrors "github.com/Nwoyi/staffing-api/pkg/util/errorutil"
)

// StaffHandler exposes the /staff endpoints.
type StaffHandler struct {
	staffService *service.StaffService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// Create handles POST /staff.
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	var req dto.StaffCreateRequest
	if err := validation.Bind(c, &req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	staff, err := h.staffService.Create(c.UserContext(), service.CreateStaffInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Position:   req.Position,
		Department: req.Department,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(staff)
}

// List handles GET /staff.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	page := parseIntQuery(c, "page", pagination.DefaultPage)
	limit := parseIntQuery(c, "limit", pagination.DefaultLimit)

	result, err := h.staffService.List(c.UserContext(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(dto.StaffListResponse{
		Data: result.Items,
		Pagination: dto.Pagination{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Get handles GET /staff/:id.
func (h *StaffHandler) Get(c *fiber.Ctx) error {
	staff, err := h.staffService.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(staff)
}

// Update handles PUT /staff/:id.
func (h *StaffHandler) Update(c *fiber.Ctx) error {
	var req dto.StaffUpdateRequest
	if err := validation.Bind(c, &req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	staff, err := h.staffService.Update(c.UserContext(), c.Params("id"), req.Patch())
	if err != nil {
		return err
	}
	return c.JSON(staff)
}

// Delete handles DELETE /staff/:id.
func (h *StaffHandler) Delete(c *fiber.Ctx) error {
	if err := h.staffService.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseIntQuery(c *fiber.Ctx, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultVal
}
