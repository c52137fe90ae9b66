package server

import (
	"vidtube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetChannelStats handles GET /api/v1/dashboard/stats
// @Summary The caller's channel totals
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=models.ChannelStats}
// @Router /dashboard/stats [get]
func (s *Server) GetChannelStats(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	stats, err := s.dashboardService.ChannelStats(c.UserContext(), caller)
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, stats, "Channel status fetched Successfully")
}

// GetChannelVideos handles GET /api/v1/dashboard/videos
// @Summary All of the caller's videos, published or not
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=[]models.Video}
// @Router /dashboard/videos [get]
func (s *Server) GetChannelVideos(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	videos, err := s.dashboardService.ChannelVideos(c.UserContext(), caller)
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, videos, "Your videos fetched Successfully")
}
