package http

import (
	"net/http"
	"strings"
	"time"

	"learnhub/internal/usecase"
	"learnhub/pkg/apperror"
	"learnhub/pkg/middleware"
	"learnhub/pkg/pagination"
	"learnhub/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUseCase usecase.UserUseCase
	uploadDir   string
}

func NewUserHandler(userUseCase usecase.UserUseCase, uploadDir string) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		uploadDir:   uploadDir,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateProfileJSON struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Register godoc
// @Summary      Register a new user
// @Description  Register with username, email, password, optional role and profile picture
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        username formData string true "Username"
// @Param        email formData string true "Email"
// @Param        password formData string true "Password"
// @Param        role formData string false "Role (student, manager, admin)"
// @Param        profilePicture formData file false "Profile picture"
// @Success      201  {object}  response.Envelope
// @Failure      400  {object}  response.Envelope
// @Router       /users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	input := usecase.RegisterInput{}

	if isMultipart(c) {
		input.Username = c.PostForm("username")
		input.Email = c.PostForm("email")
		input.Password = c.PostForm("password")
		input.Role = c.PostForm("role")

		path, contentType, err := saveTempUpload(c, h.uploadDir, "profilePicture")
		if err != nil {
			respondError(c, err)
			return
		}
		input.TempFilePath = path
		input.ContentType = contentType
	} else {
		var req struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Password string `json:"password"`
			Role     string `json:"role"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.Fail(err.Error()))
			return
		}
		input.Username = req.Username
		input.Email = req.Email
		input.Password = req.Password
		input.Role = req.Role
	}

	user, token, err := h.userUseCase.Register(input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(gin.H{"user": user, "token": token}))
}

// Login godoc
// @Summary      Authenticate and receive a session token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200  {object}  response.Envelope
// @Failure      401  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail(err.Error()))
		return
	}

	token, err := h.userUseCase.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"token": token}))
}

// Logout godoc
// @Summary      Revoke the presented session token
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope
// @Router       /users/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	token := c.GetString(middleware.ContextToken)

	expiresAt := time.Now()
	if v, ok := c.Get(middleware.ContextTokenExp); ok {
		if t, ok := v.(time.Time); ok {
			expiresAt = t
		}
	}

	if err := h.userUseCase.Logout(c.Request.Context(), token, expiresAt); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(nil))
}

// ListUsers godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Page size (default 10)"
// @Param        page query int false "Page number, 1-indexed (default 1)"
// @Success      200  {object}  response.Envelope
// @Failure      403  {object}  response.Envelope
// @Router       /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	p := pagination.FromQuery(c.Query("limit"), c.Query("page"))

	users, err := h.userUseCase.ListUsers(p.Limit, p.Skip())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"users": users}))
}

// GetUser godoc
// @Summary      Get a user by ID
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userUseCase.GetUser(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"user": user}))
}

// UpdateProfile godoc
// @Summary      Update own profile
// @Description  Self-service update of username, email, password and profile picture
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      200  {object}  response.Envelope
// @Failure      403  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /users/{id} [patch]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	targetID := c.Param("id")

	// Ownership is checked before the upload is even read, so a rejected
	// request never leaves a temp file behind.
	if c.GetString(middleware.ContextUserID) != targetID {
		respondError(c, apperror.Forbidden("You can only update your own profile"))
		return
	}

	input := usecase.UpdateProfileInput{}

	if isMultipart(c) {
		if v, ok := c.GetPostForm("username"); ok {
			input.Username = &v
		}
		if v, ok := c.GetPostForm("email"); ok {
			input.Email = &v
		}
		if v, ok := c.GetPostForm("password"); ok {
			input.Password = &v
		}

		path, contentType, err := saveTempUpload(c, h.uploadDir, "profilePicture")
		if err != nil {
			respondError(c, err)
			return
		}
		input.TempFilePath = path
		input.ContentType = contentType
	} else {
		var req updateProfileJSON
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.Fail(err.Error()))
			return
		}
		input.Username = req.Username
		input.Email = req.Email
		input.Password = req.Password
	}

	user, err := h.userUseCase.UpdateProfile(targetID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"user": user}))
}

// DeleteUser godoc
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userUseCase.DeleteUser(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(nil))
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/")
}
