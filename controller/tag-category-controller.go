package controller

import (
	"errors"
	"strings"

	"tagcat/app_error"
	"tagcat/auth"
	"tagcat/parser"
	"tagcat/repository"
	"tagcat/service"

	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type TagCategoryController struct {
	service    *service.TagCategoryService
	cacheStore persistence.CacheStore
	logger     *zap.Logger
}

func NewTagCategoryController(deps Dependencies) *TagCategoryController {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TagCategoryController{
		service:    deps.Service,
		cacheStore: deps.CacheStore,
		logger:     logger,
	}
}

func setupTagCategoryController(deps Dependencies) []RouteInfo {
	e := NewTagCategoryController(deps)
	baseUrl := "/tag-categories"
	admin := []string{auth.PermissionTagAdmin}
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getTagCategoriesHandler(), Cached: true},
		{Method: "GET", Path: "/:id", HandlerFunc: e.getTagCategoryHandler()},
		{Method: "GET", Path: "/:id/issues", HandlerFunc: e.getTagCategoryIssuesHandler()},
		{Method: "POST", Path: "/:id/name", HandlerFunc: e.composeNameHandler()},
		{Method: "POST", Path: "", HandlerFunc: e.createTagCategoryHandler(), Authenticated: true, RequiredRoles: admin},
		{Method: "PUT", Path: "/:id", HandlerFunc: e.updateTagCategoryHandler(), Authenticated: true, RequiredRoles: admin},
		{Method: "DELETE", Path: "/:id", HandlerFunc: e.deleteTagCategoryHandler(), Authenticated: true, RequiredRoles: admin},
	}
	for i, route := range routes {
		routes[i].Path = baseUrl + route.Path
	}
	return routes
}

// @id GetTagCategories
// @Description Fetches all tag categories that are not deleted
// @Tags tag-category
// @Produce json
// @Param status query string false "ACTIVE or INACTIVE"
// @Param group query string false "Group value, e.g. ball"
// @Param precisionType query string false "LONG or SHORT"
// @Param gameId query string false "Game id"
// @Param isParentTag query bool false "Parent tag flag"
// @Param isReplay query bool false "Replay flag"
// @Param search query string false "Case-insensitive name substring"
// @Success 200 {array} repository.TagCategory
// @Router /tag-categories [get]
func (e *TagCategoryController) getTagCategoriesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var query TagCategoryQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			app_error.WithHTTPStatus(c, bindingError(err, "query"), 400)
			return
		}
		categories, err := e.service.GetTagCategories(query.toFilter())
		if err != nil {
			respondError(c, e.logger, err, "Failed to fetch tag categories")
			return
		}
		c.JSON(200, categories)
	}
}

// @id GetTagCategory
// @Description Fetches a tag category by id, including soft-deleted ones
// @Tags tag-category
// @Produce json
// @Param id path string true "Tag category id"
// @Success 200 {object} repository.TagCategory
// @Router /tag-categories/{id} [get]
func (e *TagCategoryController) getTagCategoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		category, err := e.service.GetTagCategoryById(c.Param("id"))
		if err != nil {
			respondError(c, e.logger, err, "Failed to fetch tag category")
			return
		}
		c.JSON(200, category)
	}
}

// @id GetTagCategoryIssues
// @Description Reports schema problems that do not invalidate a tag category
// @Tags tag-category
// @Produce json
// @Param id path string true "Tag category id"
// @Success 200 {array} parser.Issue
// @Router /tag-categories/{id}/issues [get]
func (e *TagCategoryController) getTagCategoryIssuesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		issues, err := e.service.GetIssues(c.Param("id"))
		if err != nil {
			respondError(c, e.logger, err, "Failed to fetch tag category")
			return
		}
		c.JSON(200, issues)
	}
}

// @id ComposeTagName
// @Description Composes a display name from the category's name structure
// @Tags tag-category
// @Accept json
// @Produce json
// @Param id path string true "Tag category id"
// @Param body body NameRequest true "Values by name structure token"
// @Success 200 {object} NameResponse
// @Router /tag-categories/{id}/name [post]
func (e *TagCategoryController) composeNameHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request NameRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			app_error.WithHTTPStatus(c, bindingError(err, "body"), 400)
			return
		}
		name, err := e.service.ComposeName(c.Param("id"), request.Values)
		if err != nil {
			respondError(c, e.logger, err, "Failed to compose tag name")
			return
		}
		c.JSON(200, NameResponse{Name: name})
	}
}

// @id CreateTagCategory
// @Description Creates a tag category
// @Tags tag-category
// @Accept json
// @Produce json
// @Param body body parser.TagCategoryInput true "Tag category to create"
// @Success 201 {object} repository.TagCategory
// @Security BearerAuth
// @Router /tag-categories [post]
func (e *TagCategoryController) createTagCategoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input parser.TagCategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			app_error.WithHTTPStatus(c, bindingError(err, "body"), 400)
			return
		}
		category, err := e.service.CreateTagCategory(&input)
		if err != nil {
			respondError(c, e.logger, err, "Failed to create tag category")
			return
		}
		e.invalidateCache()
		c.JSON(201, category)
	}
}

// @id UpdateTagCategory
// @Description Updates the given fields of a tag category
// @Tags tag-category
// @Accept json
// @Produce json
// @Param id path string true "Tag category id"
// @Param body body parser.TagCategoryInput true "Fields to update"
// @Success 200 {object} repository.TagCategory
// @Security BearerAuth
// @Router /tag-categories/{id} [put]
func (e *TagCategoryController) updateTagCategoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input parser.TagCategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			app_error.WithHTTPStatus(c, bindingError(err, "body"), 400)
			return
		}
		category, err := e.service.UpdateTagCategory(c.Param("id"), &input)
		if err != nil {
			respondError(c, e.logger, err, "Failed to update tag category")
			return
		}
		e.invalidateCache()
		c.JSON(200, category)
	}
}

// @id DeleteTagCategory
// @Description Soft-deletes a tag category
// @Tags tag-category
// @Produce json
// @Param id path string true "Tag category id"
// @Success 200 {object} MessageResponse
// @Security BearerAuth
// @Router /tag-categories/{id} [delete]
func (e *TagCategoryController) deleteTagCategoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		err := e.service.DeleteTagCategory(c.Param("id"))
		if err != nil {
			respondError(c, e.logger, err, "Failed to delete tag category")
			return
		}
		e.invalidateCache()
		c.JSON(200, MessageResponse{Message: "Tag category deleted successfully"})
	}
}

func (e *TagCategoryController) invalidateCache() {
	if e.cacheStore == nil {
		return
	}
	if err := e.cacheStore.Flush(); err != nil {
		e.logger.Warn("failed to flush response cache", zap.Error(err))
	}
}

type TagCategoryQuery struct {
	Status        string `form:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	Group         string `form:"group"`
	PrecisionType string `form:"precisionType" binding:"omitempty,oneof=LONG SHORT"`
	GameId        string `form:"gameId"`
	IsParentTag   *bool  `form:"isParentTag"`
	IsReplay      *bool  `form:"isReplay"`
	Search        string `form:"search"`
}

func (q *TagCategoryQuery) toFilter() repository.TagCategoryFilter {
	return repository.TagCategoryFilter{
		Status:        repository.Status(q.Status),
		Group:         strings.TrimSpace(q.Group),
		PrecisionType: repository.PrecisionType(q.PrecisionType),
		GameId:        strings.TrimSpace(q.GameId),
		IsParentTag:   q.IsParentTag,
		IsReplay:      q.IsReplay,
		Search:        strings.TrimSpace(q.Search),
	}
}

type NameRequest struct {
	Values map[string]string `json:"values" binding:"required"`
}

type NameResponse struct {
	Name string `json:"name" binding:"required"`
}

type MessageResponse struct {
	Message string `json:"message" binding:"required"`
}

// bindingError turns gin binding failures into field-level validation
// errors. Decode failures are reported against source.
func bindingError(err error, source string) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return app_error.NewValidationError(source, err.Error())
	}
	result := &app_error.ValidationError{}
	for _, fieldError := range validationErrors {
		field := lowerFirst(fieldError.Field())
		switch fieldError.Tag() {
		case "required":
			result.Add(field, "is required")
		case "oneof":
			result.Add(field, "must be one of [%s]", strings.ReplaceAll(fieldError.Param(), " ", ", "))
		default:
			result.Add(field, "failed %s check", fieldError.Tag())
		}
	}
	return result
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
