package server

import (
	"vidtube/internal/models"
	"vidtube/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePlaylist handles POST /api/v1/playlist
// @Summary Create a playlist
// @Tags playlists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{name=string,description=string} true "Playlist"
// @Success 200 {object} models.APIResponse{data=models.Playlist}
// @Failure 400 {object} models.APIError
// @Router /playlist [post]
func (s *Server) CreatePlaylist(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req struct {
		Name        string `json:"name" form:"name"`
		Description string `json:"description" form:"description"`
	}
	if err := bindBody(c, &req); err != nil {
		return err
	}

	playlist, err := s.playlistService.Create(c.UserContext(), service.CreatePlaylistInput{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     caller,
	})
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, playlist, "Playlist created Successfully")
}

// GetUserPlaylists handles GET /api/v1/playlist/user/:userId
// @Summary A user's playlists
// @Tags playlists
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User id"
// @Success 200 {object} models.APIResponse{data=[]models.PlaylistWithVideos}
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /playlist/user/{userId} [get]
func (s *Server) GetUserPlaylists(c *fiber.Ctx) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return err
	}

	playlists, err := s.playlistService.ListForUser(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, playlists, "Playlists fetched Successfully")
}

// GetPlaylist handles GET /api/v1/playlist/:playlistId
// @Summary Get a playlist
// @Tags playlists
// @Produce json
// @Security BearerAuth
// @Param playlistId path string true "Playlist id"
// @Success 200 {object} models.APIResponse{data=models.Playlist}
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /playlist/{playlistId} [get]
func (s *Server) GetPlaylist(c *fiber.Ctx) error {
	playlistID, err := parseID(c, "playlistId")
	if err != nil {
		return err
	}

	playlist, err := s.playlistService.GetByID(c.UserContext(), playlistID)
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, playlist, "Playlist fetch Successfully")
}

// AddVideoToPlaylist handles PATCH /api/v1/playlist/add/:videoId/:playlistId
// @Summary Append a video to a playlist
// @Tags playlists
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "Video id"
// @Param playlistId path string true "Playlist id"
// @Success 200 {object} models.APIResponse{data=models.Playlist}
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Router /playlist/add/{videoId}/{playlistId} [patch]
func (s *Server) AddVideoToPlaylist(c *fiber.Ctx) error {
	in, err := playlistVideoInput(c)
	if err != nil {
		return err
	}

	playlist, err := s.playlistService.AddVideo(c.UserContext(), in)
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, playlist, "Video add in playlist Successfully")
}

// RemoveVideoFromPlaylist handles PATCH /api/v1/playlist/remove/:videoId/:playlistId
// @Summary Remove a video from a playlist
// @Tags playlists
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "Video id"
// @Param playlistId path string true "Playlist id"
// @Success 200 {object} models.APIResponse{data=models.Playlist}
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /playlist/remove/{videoId}/{playlistId} [patch]
func (s *Server) RemoveVideoFromPlaylist(c *fiber.Ctx) error {
	in, err := playlistVideoInput(c)
	if err != nil {
		return err
	}

	playlist, err := s.playlistService.RemoveVideo(c.UserContext(), in)
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, playlist, "Video removed in playlist Successfully")
}

// DeletePlaylist handles DELETE /api/v1/playlist/:playlistId
// @Summary Delete a playlist
// @Tags playlists
// @Produce json
// @Security BearerAuth
// @Param playlistId path string true "Playlist id"
// @Success 200 {object} models.APIResponse{data=models.Playlist}
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /playlist/{playlistId} [delete]
func (s *Server) DeletePlaylist(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	playlistID, err := parseID(c, "playlistId")
	if err != nil {
		return err
	}

	playlist, err := s.playlistService.Delete(c.UserContext(), playlistID, caller)
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, playlist, "Playlist deleted Successfully")
}

// UpdatePlaylist handles PATCH /api/v1/playlist/:playlistId
// @Summary Rename or describe a playlist
// @Tags playlists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param playlistId path string true "Playlist id"
// @Param request body object{name=string,description=string} true "Fields to change"
// @Success 200 {object} models.APIResponse{data=models.Playlist}
// @Failure 400 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /playlist/{playlistId} [patch]
func (s *Server) UpdatePlaylist(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	playlistID, err := parseID(c, "playlistId")
	if err != nil {
		return err
	}

	var req struct {
		Name        *string `json:"name" form:"name"`
		Description *string `json:"description" form:"description"`
	}
	if err := bindBody(c, &req); err != nil {
		return err
	}

	playlist, err := s.playlistService.Update(c.UserContext(), service.UpdatePlaylistInput{
		PlaylistID:  playlistID,
		Name:        req.Name,
		Description: req.Description,
		CallerID:    caller,
	})
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, playlist, "Playlist updated Successfully")
}

func playlistVideoInput(c *fiber.Ctx) (service.PlaylistVideoInput, error) {
	var in service.PlaylistVideoInput
	var err error
	if in.CallerID, err = callerID(c); err != nil {
		return in, err
	}
	if in.VideoID, err = parseID(c, "videoId"); err != nil {
		return in, err
	}
	in.PlaylistID, err = parseID(c, "playlistId")
	return in, err
}
