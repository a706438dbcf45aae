package handler

import (
	"github.com/gofiber/fiber/v2"

	"org-alerts/internal/pkg/seed"
)

type SeedHandler struct {
	seedService seed.Service
}

func NewSeedHandler(seedService seed.Service) *SeedHandler {
	return &SeedHandler{seedService: seedService}
}

func (h *SeedHandler) Get(c *fiber.Ctx) error {
	snapshot, err := h.seedService.Snapshot(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(snapshot)
}
