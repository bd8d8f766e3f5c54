package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "tradedesk/internal/errors"
	"tradedesk/internal/models"
	"tradedesk/internal/services"
)

// UserHandler serves the administration screens for user accounts.
type UserHandler struct {
	userService services.UserServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserServicer) *UserHandler {
	return &UserHandler{userService: userService}
}

// UserForm represents the add/update user payload. Password is plaintext and
// is hashed before it is stored.
type UserForm struct {
	Username string      `json:"username" form:"username" binding:"required,notblank,max=125"`
	Password string      `json:"password" form:"password" binding:"required,min=8,max=72"`
	FullName string      `json:"fullname" form:"fullname" binding:"required,notblank,max=125"`
	Role     models.Role `json:"role" form:"role" binding:"required,role"`
}

func (f *UserForm) toModel() *models.User {
	return &models.User{
		Username: f.Username,
		Password: f.Password,
		FullName: f.FullName,
		Role:     f.Role,
	}
}

// UserResponse represents the user data in the response
type UserResponse struct {
	ID       uint        `json:"id"`
	Username string      `json:"username"`
	FullName string      `json:"fullname"`
	Role     models.Role `json:"role"`
}

// UserFormResponse is a user as shown on the edit form; the password is always blank.
type UserFormResponse struct {
	UserResponse
	Password string `json:"password"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, FullName: u.FullName, Role: u.Role}
}

// List returns every user account
// @Summary     List users
// @Tags        users
// @Produce     json
// @Success     200 {object} map[string]interface{} "Users"
// @Failure     302 "Redirect to login"
// @Failure     403 {object} ErrorResponse "Not an administrator"
// @Router      /user/list [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.GetAll(c.Request.Context(), currentActor(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"remoteUser": remoteUser(c),
		"users":      out,
	})
}

// AddForm returns a blank user for the add screen
// @Summary     Blank user form
// @Tags        users
// @Produce     json
// @Success     200 {object} UserFormResponse "Blank user"
// @Router      /user/add [get]
func (h *UserHandler) AddForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"remoteUser": remoteUser(c),
		"user":       UserFormResponse{},
	})
}

// Validate creates a new user account
// @Summary     Create a user
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body UserForm true "User details"
// @Success     201 {object} UserResponse "User created"
// @Failure     400 {object} ErrorResponse "Validation failed"
// @Failure     409 {object} ErrorResponse "Username taken"
// @Router      /user/validate [post]
func (h *UserHandler) Validate(c *gin.Context) {
	var form UserForm
	if err := c.ShouldBind(&form); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	user, err := h.userService.Save(c.Request.Context(), currentActor(c), form.toModel())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"remoteUser": remoteUser(c),
		"user":       toUserResponse(user),
	})
}

// UpdateForm returns a user for the edit screen
// @Summary     User edit form
// @Tags        users
// @Produce     json
// @Param       id path int true "User ID"
// @Success     200 {object} UserFormResponse "User with blank password"
// @Failure     404 {object} ErrorResponse "Invalid user id"
// @Router      /user/update/{id} [get]
func (h *UserHandler) UpdateForm(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, found, err := h.userService.FindForEdit(c.Request.Context(), currentActor(c), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !found {
		respondWithError(c, apperrors.NotFound("user", id))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"remoteUser": remoteUser(c),
		"user":       UserFormResponse{UserResponse: toUserResponse(user)},
	})
}

// Update replaces a user's username, full name, role and password
// @Summary     Update a user
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id path int true "User ID"
// @Param       request body UserForm true "User details"
// @Success     200 {object} UserResponse "User updated"
// @Failure     400 {object} ErrorResponse "Validation failed"
// @Failure     404 {object} ErrorResponse "Invalid user id"
// @Failure     409 {object} ErrorResponse "Username taken"
// @Router      /user/update/{id} [post]
func (h *UserHandler) Update(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var form UserForm
	if err := c.ShouldBind(&form); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	user, err := h.userService.UpdateByID(c.Request.Context(), currentActor(c), id, form.toModel())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"remoteUser": remoteUser(c),
		"user":       toUserResponse(user),
	})
}

// Delete removes a user account
// @Summary     Delete a user
// @Tags        users
// @Produce     json
// @Param       id path int true "User ID"
// @Success     200 {object} map[string]interface{} "User deleted"
// @Failure     404 {object} ErrorResponse "Invalid user id"
// @Router      /user/delete/{id} [get]
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.userService.DeleteByID(c.Request.Context(), currentActor(c), id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"remoteUser": remoteUser(c),
		"message":    "user deleted",
	})
}
