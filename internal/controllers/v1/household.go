package v1

import (
	"net/http"

	apperrors "github.com/centsible/backend/internal/errors"
	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterHouseholdRoutes registers the routes for the caller's
// household with the RouterGroup that is passed.
func RegisterHouseholdRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsHousehold)
	r.GET("", GetHousehold)
	r.POST("", CreateHousehold)

	r.OPTIONS("/join", httputil.OptionsPost)
	r.POST("/join", JoinHousehold)

	r.OPTIONS("/leave", httputil.OptionsPost)
	r.POST("/leave", LeaveHousehold)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Households
// @Success		204
// @Router			/v1/household [options]
func OptionsHousehold(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Get household
// @Description	Returns the household the caller is an active member of
// @Tags			Households
// @Produce		json
// @Success		200	{object}	HouseholdResponse
// @Failure		401	{object}	httpError
// @Failure		404	{object}	httpError
// @Router			/v1/household [get]
func GetHousehold(c *gin.Context) {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	household, err := households.ActiveHousehold(userID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}
	if household == nil {
		c.JSON(status(apperrors.ErrHouseholdNotFound), httpError{Error: apperrors.ErrHouseholdNotFound.Error()})
		return
	}

	c.JSON(http.StatusOK, HouseholdResponse{Data: *household})
}

// @Summary		Create household
// @Description	Creates a new household and makes the caller its first member
// @Tags			Households
// @Produce		json
// @Success		201			{object}	HouseholdResponse
// @Failure		400			{object}	httpError
// @Failure		401			{object}	httpError
// @Param			household	body		HouseholdEditable	true	"Household"
// @Router			/v1/household [post]
func CreateHousehold(c *gin.Context) {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var editable HouseholdEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	household, err := households.Create(userID, editable.Name, editable.Currency)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, HouseholdResponse{Data: household})
}

// @Summary		Join household
// @Description	Makes the caller an active member of an existing household
// @Tags			Households
// @Success		204
// @Failure		400			{object}	httpError
// @Failure		401			{object}	httpError
// @Failure		404			{object}	httpError
// @Param			membership	body		HouseholdJoinEditable	true	"Household to join"
// @Router			/v1/household/join [post]
func JoinHousehold(c *gin.Context) {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var editable HouseholdJoinEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := households.Join(userID, editable.HouseholdID); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Leave household
// @Description	Deactivates the caller's household membership
// @Tags			Households
// @Success		204
// @Failure		401	{object}	httpError
// @Router			/v1/household/leave [post]
func LeaveHousehold(c *gin.Context) {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := households.Leave(userID); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
