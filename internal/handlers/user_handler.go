package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"partnerleads/internal/authz"
	"partnerleads/internal/services"
)

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// @Summary      Create user
// @Description  Admin-only staff account creation
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        user  body      services.CreateUserInput  true  "User"
// @Success      201   {object}  map[string]interface{}
// @Failure      403   {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	_, roleID := getUserAndRole(c)
	if !authz.IsAdmin(roleID) {
		respondError(c, http.StatusForbidden, "only admin can create users")
		return
	}

	var in services.CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if in.RoleID == 0 {
		in.RoleID = authz.RoleStaff
	}

	user, err := h.service.Create(in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"user": user})
}
