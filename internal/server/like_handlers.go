package server

import (
	"context"
	"fmt"

	"vidtube/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type toggleFunc func(ctx context.Context, subjectID, callerID uuid.UUID) (bool, error)

// toggleLike runs toggle for the subject named by param and reports the
// resulting state only.
func toggleLike(c *fiber.Ctx, param, label string, toggle toggleFunc) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	subjectID, err := parseID(c, param)
	if err != nil {
		return err
	}

	liked, err := toggle(c.UserContext(), subjectID, caller)
	if err != nil {
		return err
	}

	state := "unliked"
	if liked {
		state = "liked"
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{"isLiked": liked},
		fmt.Sprintf("%s %s successfully", label, state))
}

// ToggleVideoLike handles POST /api/v1/likes/toggle/v/:videoId
// @Summary Like or unlike a video
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "Video id"
// @Success 200 {object} models.APIResponse{data=object{isLiked=bool}}
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /likes/toggle/v/{videoId} [post]
func (s *Server) ToggleVideoLike(c *fiber.Ctx) error {
	return toggleLike(c, "videoId", "Video", s.likeService.ToggleVideoLike)
}

// ToggleCommentLike handles POST /api/v1/likes/toggle/c/:commentId
// @Summary Like or unlike a comment
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param commentId path string true "Comment id"
// @Success 200 {object} models.APIResponse{data=object{isLiked=bool}}
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /likes/toggle/c/{commentId} [post]
func (s *Server) ToggleCommentLike(c *fiber.Ctx) error {
	return toggleLike(c, "commentId", "Comment", s.likeService.ToggleCommentLike)
}

// ToggleTweetLike handles POST /api/v1/likes/toggle/t/:tweetId
// @Summary Like or unlike a tweet
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param tweetId path string true "Tweet id"
// @Success 200 {object} models.APIResponse{data=object{isLiked=bool}}
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /likes/toggle/t/{tweetId} [post]
func (s *Server) ToggleTweetLike(c *fiber.Ctx) error {
	return toggleLike(c, "tweetId", "Tweet", s.likeService.ToggleTweetLike)
}

// GetLikedVideos handles GET /api/v1/likes/videos
// @Summary Videos the caller liked
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=[]models.LikedVideo}
// @Router /likes/videos [get]
func (s *Server) GetLikedVideos(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	videos, err := s.likeService.ListLikedVideos(c.UserContext(), caller)
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, videos, "fetched Liked videos successfully")
}
