package httpHandler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory-server/auth"
	"inventory-server/usecases"
)

type UserHandler struct {
	useCase *usecases.UserUseCase
	tokens  *auth.TokenManager
}

func NewUserHandler(useCase *usecases.UserUseCase, tokens *auth.TokenManager) *UserHandler {
	return &UserHandler{useCase: useCase, tokens: tokens}
}

type RegisterRequest struct {
	DNI      string `json:"dni" binding:"required"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	user, err := h.useCase.CreateUser(usecases.UserInput{
		DNI:      req.DNI,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.useCase.UpdateToken(user.DNI, token); err != nil {
		slog.Warn("could not persist session token", "dni", user.DNI, "error", err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "User created successfully",
		"dni":          user.DNI,
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Login handles POST /api/v1/auth/login. Username or email plus password;
// failures are reported identically whatever the cause.
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	login := req.Username
	if login == "" {
		login = req.Email
	}
	if login == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username or email is required"})
		return
	}

	user, err := h.useCase.Authenticate(login, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.useCase.UpdateToken(user.DNI, token); err != nil {
		slog.Warn("could not persist session token", "dni", user.DNI, "error", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"data": gin.H{
			"dni":      user.DNI,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// Me handles GET /api/v1/users/me
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.useCase.GetUser(auth.UserFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

// Update handles PUT /api/v1/users/me
func (h *UserHandler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	user, err := h.useCase.UpdateUser(auth.UserFromContext(c), usecases.UserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "data": user})
}

// Delete handles DELETE /api/v1/users/me
func (h *UserHandler) Delete(c *gin.Context) {
	user, err := h.useCase.DeleteUser(auth.UserFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
