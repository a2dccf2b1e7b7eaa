package v1

import (
	"net/http"

	"github.com/centsible/backend/internal/httputil"
	"github.com/gin-gonic/gin"
)

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func RegisterCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCategoryList)
		r.GET("", GetCategories)
		r.POST("", CreateCategory)
	}

	// Subcategories of a category
	{
		r.OPTIONS("/:id/subcategories", OptionsSubcategoryList)
		r.GET("/:id/subcategories", GetSubcategories)
		r.POST("/:id/subcategories", CreateSubcategory)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Router			/v1/categories [options]
func OptionsCategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/categories/{id}/subcategories [options]
func OptionsSubcategoryList(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	httputil.OptionsGetPost(c)
}

// @Summary		Get categories
// @Description	Returns the list of categories
// @Tags			Categories
// @Produce		json
// @Success		200			{object}	CategoryListResponse
// @Failure		401			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			archived	query		bool	false	"Include archived categories?"
// @Router			/v1/categories [get]
func GetCategories(c *gin.Context) {
	var filter CategoryQueryFilter
	_ = c.Bind(&filter)

	list, err := categories.Categories(filter.Archived)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, CategoryListResponse{Data: list})
}

// @Summary		Create category
// @Description	Creates a new category
// @Tags			Categories
// @Produce		json
// @Success		201			{object}	CategoryResponse
// @Failure		400			{object}	httpError
// @Failure		401			{object}	httpError
// @Param			category	body		CategoryEditable	true	"Category"
// @Router			/v1/categories [post]
func CreateCategory(c *gin.Context) {
	var editable CategoryEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	category, err := categories.CreateCategory(editable.model())
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, CategoryResponse{Data: category})
}

// @Summary		Get subcategories
// @Description	Returns the subcategories of a category
// @Tags			Categories
// @Produce		json
// @Success		200			{object}	SubcategoryListResponse
// @Failure		400			{object}	httpError
// @Failure		401			{object}	httpError
// @Failure		404			{object}	httpError
// @Param			id			path		string	true	"ID of the category"
// @Param			archived	query		bool	false	"Include archived subcategories?"
// @Router			/v1/categories/{id}/subcategories [get]
func GetSubcategories(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	var filter CategoryQueryFilter
	_ = c.Bind(&filter)

	list, err := categories.Subcategories(uri.ID.UUID, filter.Archived)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SubcategoryListResponse{Data: list})
}

// @Summary		Create subcategory
// @Description	Creates a new subcategory under a category
// @Tags			Categories
// @Produce		json
// @Success		201			{object}	SubcategoryResponse
// @Failure		400			{object}	httpError
// @Failure		401			{object}	httpError
// @Failure		404			{object}	httpError
// @Param			id			path		string				true	"ID of the category"
// @Param			subcategory	body		SubcategoryEditable	true	"Subcategory"
// @Router			/v1/categories/{id}/subcategories [post]
func CreateSubcategory(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	var editable SubcategoryEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	subcategory, err := categories.CreateSubcategory(editable.model(uri.ID.UUID))
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, SubcategoryResponse{Data: subcategory})
}
