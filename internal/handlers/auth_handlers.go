package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kmwangi/netbill-golang/internal/auth"
	"github.com/kmwangi/netbill-golang/internal/models"
)

// --- Admin Login ---

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login is the handler for POST /api/v1/auth/login (console staff).
func (h *Handlers) Login(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 2. --- Look Up the User ---
	var user models.User
	err := h.DB.QueryRowContext(c.Request.Context(),
		"SELECT id, role, email, password_hash, full_name FROM users WHERE email = ?",
		input.Email,
	).Scan(&user.ID, &user.Role, &user.Email, &user.PasswordHash, &user.FullName)
	if err != nil {
		if err == sql.ErrNoRows {
			// Same message as a bad password so the endpoint does not
			// leak which emails exist.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error during login"})
		return
	}

	// 3. --- Check the Password ---
	password := models.Password{Hash: user.PasswordHash}
	matches, err := password.Matches(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify password"})
		return
	}
	if !matches {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	// 4. --- Issue the Token ---
	token, err := auth.GenerateToken(strconv.FormatInt(user.ID, 10), user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"role":  user.Role,
		"name":  user.FullName,
	})
}

// --- Subscriber Portal Login ---

type SubscriberLoginInput struct {
	// Either the subscriber id or the account phone number works.
	Account string `json:"account" binding:"required"`
}

// SubscriberLogin is the handler for POST /api/v1/auth/subscriber-login.
// The portal identifies the account and issues a subscriber-scoped
// token; there is no password on subscriber accounts.
func (h *Handlers) SubscriberLogin(c *gin.Context) {
	var input SubscriberLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var id string
	err := h.DB.QueryRowContext(c.Request.Context(),
		"SELECT id FROM subscribers WHERE id = ? OR phone = ?",
		input.Account, input.Account,
	).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error during login"})
		return
	}

	token, err := auth.GenerateToken(id, models.RoleSubscriber)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":        token,
		"subscriberId": id,
	})
}
