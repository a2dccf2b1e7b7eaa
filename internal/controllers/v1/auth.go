package v1

import (
	"net/http"

	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the unauthenticated session routes with
// the RouterGroup that is passed.
func RegisterAuthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/register", httputil.OptionsPost)
	r.POST("/register", Register)

	r.OPTIONS("/login", httputil.OptionsPost)
	r.POST("/login", Login)
}

// RegisterMeRoutes registers the routes for the authenticated user.
func RegisterMeRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", GetMe)
}

// @Summary		Register
// @Description	Creates a new user and returns a session token
// @Tags			Auth
// @Produce		json
// @Success		201		{object}	SessionResponse
// @Failure		400		{object}	httpError
// @Failure		409		{object}	httpError
// @Param			user	body		RegisterEditable	true	"User"
// @Router			/v1/auth/register [post]
func Register(c *gin.Context) {
	var editable RegisterEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	user, err := users.Register(editable.Email, editable.Password, editable.Name)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, SessionResponse{Data: Session{Token: token, User: user}})
}

// @Summary		Login
// @Description	Verifies credentials and returns a session token
// @Tags			Auth
// @Produce		json
// @Success		200			{object}	SessionResponse
// @Failure		400			{object}	httpError
// @Failure		401			{object}	httpError
// @Param			credentials	body		LoginEditable	true	"Credentials"
// @Router			/v1/auth/login [post]
func Login(c *gin.Context) {
	var editable LoginEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	user, err := users.AttemptLogin(editable.Email, editable.Password)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SessionResponse{Data: Session{Token: token, User: user}})
}

// @Summary		Get current user
// @Description	Returns the authenticated user
// @Tags			Auth
// @Produce		json
// @Success		200	{object}	UserResponse
// @Failure		401	{object}	httpError
// @Router			/v1/me [get]
func GetMe(c *gin.Context) {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	user, err := users.GetByID(userID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, UserResponse{Data: user})
}
