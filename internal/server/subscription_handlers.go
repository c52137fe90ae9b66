package server

import (
	"vidtube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleSubscription handles POST /api/v1/subscriptions/c/:channelId
// @Summary Subscribe to or unsubscribe from a channel
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param channelId path string true "Channel (user) id"
// @Success 200 {object} models.APIResponse{data=object{isSubscribed=bool}}
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /subscriptions/c/{channelId} [post]
func (s *Server) ToggleSubscription(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	channelID, err := parseID(c, "channelId")
	if err != nil {
		return err
	}

	subscribed, err := s.subscriptionService.Toggle(c.UserContext(), channelID, caller)
	if err != nil {
		return err
	}

	message := "Channel unsubscribed Successfully"
	if subscribed {
		message = "Channel subscribed Successfully"
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{"isSubscribed": subscribed}, message)
}

// GetChannelSubscribers handles GET /api/v1/subscriptions/c/:channelId
// @Summary A channel's subscribers
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param channelId path string true "Channel (user) id"
// @Success 200 {object} models.APIResponse{data=[]models.SubscriptionProfile}
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /subscriptions/c/{channelId} [get]
func (s *Server) GetChannelSubscribers(c *fiber.Ctx) error {
	channelID, err := parseID(c, "channelId")
	if err != nil {
		return err
	}

	subscribers, err := s.subscriptionService.ListSubscribers(c.UserContext(), channelID)
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, subscribers, "Subscribers fetched Successfully")
}

// GetSubscribedChannels handles GET /api/v1/subscriptions/u/:subscriberId
// @Summary Channels a user subscribes to
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param subscriberId path string true "Subscriber (user) id"
// @Success 200 {object} models.APIResponse{data=[]models.SubscriptionProfile}
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /subscriptions/u/{subscriberId} [get]
func (s *Server) GetSubscribedChannels(c *fiber.Ctx) error {
	subscriberID, err := parseID(c, "subscriberId")
	if err != nil {
		return err
	}

	channels, err := s.subscriptionService.ListSubscriptions(c.UserContext(), subscriberID)
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, channels, "Subscribed channels fetched Successfully")
}
