package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinevault-inc/cinevault/internal/application/movie/usecases"
	"github.com/cinevault-inc/cinevault/internal/interfaces/dto"
	"github.com/cinevault-inc/cinevault/internal/shared/authorization"
	"github.com/cinevault-inc/cinevault/internal/shared/constants"
	"github.com/cinevault-inc/cinevault/internal/shared/errors"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
	"github.com/cinevault-inc/cinevault/internal/shared/utils"
)

// MovieHandler handles catalog endpoints
type MovieHandler struct {
	listUC      listMoviesUseCase
	getUC       getMovieUseCase
	createUC    createMovieUseCase
	updateUC    updateMovieUseCase
	deleteUC    deleteMovieUseCase
	entitlement premiumEntitlement
	logger      logger.Interface
}

func NewMovieHandler(
	listUC listMoviesUseCase,
	getUC getMovieUseCase,
	createUC createMovieUseCase,
	updateUC updateMovieUseCase,
	deleteUC deleteMovieUseCase,
	entitlement premiumEntitlement,
	log logger.Interface,
) *MovieHandler {
	return &MovieHandler{
		listUC:      listUC,
		getUC:       getUC,
		createUC:    createUC,
		updateUC:    updateUC,
		deleteUC:    deleteUC,
		entitlement: entitlement,
		logger:      log,
	}
}

// List handles GET /movies
//
//	@Summary	List the movie catalog
//	@Tags		movies
//	@Produce	json
//	@Security	Bearer
//	@Param		title			query		string	false	"Title substring"
//	@Param		genre			query		string	false	"Genre"
//	@Param		release_year	query		int		false	"Release year"
//	@Param		min_rating		query		number	false	"Minimum rating"
//	@Param		premium			query		bool	false	"Premium flag filter"
//	@Param		page			query		int		false	"Page"
//	@Param		page_size		query		int		false	"Page size"
//	@Success	200				{object}	utils.APIResponse
//	@Router		/movies [get]
func (h *MovieHandler) List(c *gin.Context) {
	cmd, err := dto.ParseListMoviesRequest(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd.IncludePremium, err = h.callerEntitlement(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, dto.NewMovieResponses(result.Movies),
		result.Total, result.Page, result.PageSize)
}

// Get handles GET /movies/:id
func (h *MovieHandler) Get(c *gin.Context) {
	includePremium, err := h.callerEntitlement(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetMovieCommand{
		SID:            c.Param("id"),
		IncludePremium: includePremium,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.NewMovieResponse(result.Movie))
}

// Create handles POST /movies (supervisor only)
func (h *MovieHandler) Create(c *gin.Context) {
	var req dto.MovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateMovieCommand{Input: req.ToInput()})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.NewMovieResponse(result.Movie), "Movie created successfully")
}

// Update handles PUT /movies/:id (supervisor only)
func (h *MovieHandler) Update(c *gin.Context) {
	var req dto.MovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateMovieCommand{
		SID:   c.Param("id"),
		Input: req.ToInput(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Movie updated successfully", dto.NewMovieResponse(result.Movie))
}

// Delete handles DELETE /movies/:id (supervisor only)
func (h *MovieHandler) Delete(c *gin.Context) {
	if err := h.deleteUC.Execute(c.Request.Context(), usecases.DeleteMovieCommand{SID: c.Param("id")}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

// callerEntitlement resolves whether the caller may see premium entries.
// Supervisors always can; everyone else is answered by their subscription.
func (h *MovieHandler) callerEntitlement(c *gin.Context) (bool, error) {
	role := authorization.UserRole(c.GetString(constants.ContextKeyUserRole))
	if role.IsSupervisor() {
		return true, nil
	}
	return h.entitlement.CanAccessPremium(c.Request.Context(), c.GetUint(constants.ContextKeyUserID))
}
