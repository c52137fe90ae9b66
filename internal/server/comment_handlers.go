package server

import (
	"vidtube/internal/models"
	"vidtube/internal/service"

	"github.com/gofiber/fiber/v2"
)

type commentRequest struct {
	Content string `json:"content" form:"content"`
}

// GetVideoComments handles GET /api/v1/comments/:videoId
// @Summary List a video's comments
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "Video id"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Success 200 {object} models.APIResponse{data=models.Page[models.CommentView]}
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /comments/{videoId} [get]
func (s *Server) GetVideoComments(c *fiber.Ctx) error {
	videoID, err := parseID(c, "videoId")
	if err != nil {
		return err
	}

	p := parsePagination(c)
	page, err := s.commentService.ListForVideo(c.UserContext(), videoID, p.Page, p.Limit)
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, page, "Comment fetched Successfully")
}

// AddComment handles POST /api/v1/comments/:videoId
// @Summary Comment on a video
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "Video id"
// @Param request body object{content=string} true "Comment"
// @Success 200 {object} models.APIResponse{data=models.Comment}
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /comments/{videoId} [post]
func (s *Server) AddComment(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	videoID, err := parseID(c, "videoId")
	if err != nil {
		return err
	}

	var req commentRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	comment, err := s.commentService.Add(c.UserContext(), service.AddCommentInput{
		VideoID:  videoID,
		Content:  req.Content,
		CallerID: caller,
	})
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, comment, "Comment added Successfully")
}

// UpdateComment handles PATCH /api/v1/comments/c/:commentId
// @Summary Edit a comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param commentId path string true "Comment id"
// @Param request body object{content=string} true "Comment"
// @Success 200 {object} models.APIResponse{data=models.Comment}
// @Failure 400 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /comments/c/{commentId} [patch]
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	commentID, err := parseID(c, "commentId")
	if err != nil {
		return err
	}

	var req commentRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	comment, err := s.commentService.Update(c.UserContext(), service.UpdateCommentInput{
		CommentID: commentID,
		Content:   req.Content,
		CallerID:  caller,
	})
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, comment, "Comment updated Successfully")
}

// DeleteComment handles DELETE /api/v1/comments/c/:commentId
// @Summary Delete a comment
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param commentId path string true "Comment id"
// @Success 200 {object} models.APIResponse{data=models.Comment}
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /comments/c/{commentId} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	commentID, err := parseID(c, "commentId")
	if err != nil {
		return err
	}

	comment, err := s.commentService.Remove(c.UserContext(), commentID, caller)
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, comment, "Comment deleted Successfully")
}
