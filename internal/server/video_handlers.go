package server

import (
	"vidtube/internal/models"
	"vidtube/internal/service"
	"vidtube/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ListVideos handles GET /api/v1/videos
// @Summary List videos
// @Description Search a channel's videos. Without userId the caller's own channel is listed;
// @Description other channels only show published videos.
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param query query string false "Case-insensitive title/description match"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Param sortBy query string false "createdAt|updatedAt|views|duration|title"
// @Param sortType query string false "asc|desc|1|-1"
// @Param userId query string false "Channel id"
// @Success 200 {object} models.APIResponse{data=models.Page[models.Video]}
// @Failure 400 {object} models.APIError
// @Router /videos [get]
func (s *Server) ListVideos(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	ownerID := caller
	if raw := c.Query("userId"); raw != "" {
		if ownerID, err = validation.ParseReference("user ID", raw); err != nil {
			return err
		}
	}

	p := parsePagination(c)
	page, err := s.videoService.List(c.UserContext(), service.ListVideosInput{
		Query:    c.Query("query"),
		Page:     p.Page,
		Limit:    p.Limit,
		SortBy:   c.Query("sortBy"),
		SortType: c.Query("sortType"),
		OwnerID:  ownerID,
		CallerID: caller,
	})
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, page, "Videos fetched successfully")
}

// PublishVideo handles POST /api/v1/videos
// @Summary Publish a video
// @Tags videos
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param videoFile formData file true "Video file"
// @Param thumbnail formData file true "Thumbnail image"
// @Success 200 {object} models.APIResponse{data=models.Video}
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Router /videos [post]
func (s *Server) PublishVideo(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req struct {
		Title       string `json:"title" form:"title"`
		Description string `json:"description" form:"description"`
	}
	if err := bindBody(c, &req); err != nil {
		return err
	}

	video, err := s.videoService.Publish(c.UserContext(), service.PublishVideoInput{
		Title:       req.Title,
		Description: req.Description,
		VideoFile:   formFile(c, "videoFile"),
		Thumbnail:   formFile(c, "thumbnail"),
		OwnerID:     caller,
	})
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, video, "Video published Successfully")
}

// GetVideo handles GET /api/v1/videos/:videoId
// @Summary Get a video
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "Video id"
// @Success 200 {object} models.APIResponse{data=models.Video}
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /videos/{videoId} [get]
func (s *Server) GetVideo(c *fiber.Ctx) error {
	videoID, err := parseID(c, "videoId")
	if err != nil {
		return err
	}

	video, err := s.videoService.GetByID(c.UserContext(), videoID)
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, video, "Video fetched Successfully")
}

// UpdateVideo handles PATCH /api/v1/videos/:videoId
// @Summary Update a video
// @Description Change title, description or thumbnail. At least one is required.
// @Tags videos
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "Video id"
// @Param title formData string false "Title"
// @Param description formData string false "Description"
// @Param thumbnail formData file false "Thumbnail image"
// @Success 200 {object} models.APIResponse{data=models.Video}
// @Failure 400 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /videos/{videoId} [patch]
func (s *Server) UpdateVideo(c *fiber.Ctx) error {
	caller, videoID, err := s.videoRequest(c)
	if err != nil {
		return err
	}

	var req struct {
		Title       *string `json:"title" form:"title"`
		Description *string `json:"description" form:"description"`
	}
	if err := bindBody(c, &req); err != nil {
		return err
	}

	video, err := s.videoService.Update(c.UserContext(), service.UpdateVideoInput{
		VideoID:     videoID,
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   formFile(c, "thumbnail"),
		CallerID:    caller,
	})
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, video, "Video updated Successfully")
}

// DeleteVideo handles DELETE /api/v1/videos/:videoId
// @Summary Delete a video
// @Description Removes the video with its comments, likes and playlist entries.
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "Video id"
// @Success 200 {object} models.APIResponse{data=models.Video}
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /videos/{videoId} [delete]
func (s *Server) DeleteVideo(c *fiber.Ctx) error {
	caller, videoID, err := s.videoRequest(c)
	if err != nil {
		return err
	}

	video, err := s.videoService.Delete(c.UserContext(), videoID, caller)
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, video, "Video deleted Successfully")
}

// TogglePublishStatus handles PATCH /api/v1/videos/toggle/publish/:videoId
// @Summary Toggle publish status
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "Video id"
// @Success 200 {object} models.APIResponse{data=models.Video}
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /videos/toggle/publish/{videoId} [patch]
func (s *Server) TogglePublishStatus(c *fiber.Ctx) error {
	caller, videoID, err := s.videoRequest(c)
	if err != nil {
		return err
	}

	video, err := s.videoService.TogglePublish(c.UserContext(), videoID, caller)
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, video, "Toggle Publish")
}

func (s *Server) videoRequest(c *fiber.Ctx) (caller, videoID uuid.UUID, err error) {
	if caller, err = callerID(c); err != nil {
		return
	}
	videoID, err = parseID(c, "videoId")
	return
}
