package server

import (
	"strings"

	"vidtube/internal/models"
	"vidtube/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/v1/users/register
// @Summary Register a user
// @Description Create an account. Avatar and cover image are optional multipart files.
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param username formData string true "Username"
// @Param email formData string true "Email"
// @Param fullName formData string true "Full name"
// @Param password formData string true "Password"
// @Param avatar formData file false "Avatar image"
// @Param coverImage formData file false "Cover image"
// @Success 200 {object} models.APIResponse{data=models.User}
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Router /users/register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username" form:"username"`
		Email    string `json:"email" form:"email"`
		FullName string `json:"fullName" form:"fullName"`
		Password string `json:"password" form:"password"`
	}
	if err := bindBody(c, &req); err != nil {
		return err
	}

	user, err := s.userService.Register(c.UserContext(), service.RegisterInput{
		Username:   req.Username,
		Email:      req.Email,
		FullName:   req.FullName,
		Password:   req.Password,
		Avatar:     formFile(c, "avatar"),
		CoverImage: formFile(c, "coverImage"),
	})
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, user, "User registered Successfully")
}

// Login handles POST /api/v1/users/login
// @Summary Log in
// @Description Authenticate with username or email and receive a bearer token
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{username=string,email=string,password=string} true "Credentials"
// @Success 200 {object} models.APIResponse{data=service.AuthResult}
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Router /users/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username" form:"username"`
		Email    string `json:"email" form:"email"`
		Password string `json:"password" form:"password"`
	}
	if err := bindBody(c, &req); err != nil {
		return err
	}

	identifier := strings.TrimSpace(req.Email)
	if identifier == "" {
		identifier = strings.TrimSpace(req.Username)
	}

	result, err := s.userService.Login(c.UserContext(), identifier, req.Password)
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, result, "User logged in Successfully")
}

// Logout handles POST /api/v1/users/logout
// @Summary Log out
// @Description Revoke the bearer token used for this request
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure 401 {object} models.APIError
// @Router /users/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	if err := s.userService.Logout(c.UserContext(), callerClaims(c)); err != nil {
		return models.NewInternalError(err)
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{}, "User logged out")
}

// GetCurrentUser handles GET /api/v1/users/current-user
// @Summary Current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=models.User}
// @Failure 401 {object} models.APIError
// @Router /users/current-user [get]
func (s *Server) GetCurrentUser(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	user, err := s.userService.GetByID(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return models.Respond(c, fiber.StatusOK, user, "Current user fetched Successfully")
}
