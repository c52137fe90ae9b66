package server

import (
	"vidtube/internal/models"
	"vidtube/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateTweet handles POST /api/v1/tweets
// @Summary Post a tweet
// @Tags tweets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{content=string} true "Tweet"
// @Success 200 {object} models.APIResponse{data=models.Tweet}
// @Failure 400 {object} models.APIError
// @Router /tweets [post]
func (s *Server) CreateTweet(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	tweet, err := s.tweetService.Create(c.UserContext(), req.Content, caller)
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, tweet, "Tweet created Successfully")
}

// GetUserTweets handles GET /api/v1/tweets/user/:userId
// @Summary A user's tweets
// @Tags tweets
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User id"
// @Success 200 {object} models.APIResponse{data=[]models.Tweet}
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /tweets/user/{userId} [get]
func (s *Server) GetUserTweets(c *fiber.Ctx) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return err
	}

	tweets, err := s.tweetService.ListForUser(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, tweets, "Tweets fetched Successfully")
}

// UpdateTweet handles PATCH /api/v1/tweets/:tweetId
// @Summary Edit a tweet
// @Tags tweets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tweetId path string true "Tweet id"
// @Param request body object{content=string} true "Tweet"
// @Success 200 {object} models.APIResponse{data=models.Tweet}
// @Failure 400 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /tweets/{tweetId} [patch]
func (s *Server) UpdateTweet(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	tweetID, err := parseID(c, "tweetId")
	if err != nil {
		return err
	}

	var req commentRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	tweet, err := s.tweetService.Update(c.UserContext(), service.UpdateTweetInput{
		TweetID:  tweetID,
		Content:  req.Content,
		CallerID: caller,
	})
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, tweet, "Tweet updated Successfully")
}

// DeleteTweet handles DELETE /api/v1/tweets/:tweetId
// @Summary Delete a tweet
// @Tags tweets
// @Produce json
// @Security BearerAuth
// @Param tweetId path string true "Tweet id"
// @Success 200 {object} models.APIResponse{data=models.Tweet}
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /tweets/{tweetId} [delete]
func (s *Server) DeleteTweet(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	tweetID, err := parseID(c, "tweetId")
	if err != nil {
		return err
	}

	tweet, err := s.tweetService.Delete(c.UserContext(), tweetID, caller)
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, tweet, "Tweet is deleted Successfully")
}
