package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/vikoba/vikoba_backend/internal/core/ports/services"
	"github.com/vikoba/vikoba_backend/internal/dto"
	"github.com/vikoba/vikoba_backend/internal/middleware"
)

// contributionHandler handles HTTP requests for the contribution lifecycle.
type contributionHandler struct {
	contributionService portssvc.ContributionSvcFacade
}

// newContributionHandler creates a new contributionHandler.
func newContributionHandler(contributionService portssvc.ContributionSvcFacade) *contributionHandler {
	return &contributionHandler{
		contributionService: contributionService,
	}
}

// submitContribution godoc
// @Summary Submit a contribution
// @Description Member submits a payment toward a monthly period; it is created PENDING with lateness stamped server-side
// @Tags contributions
// @Accept  json
// @Produce  json
// @Param   groupID path string true "Group ID"
// @Param   contribution body dto.SubmitContributionRequest true "Contribution details"
// @Success 201 {object} dto.ContributionResponse "The created contribution"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not an active member of the group"
// @Router /groups/{groupID}/contributions [post]
func (h *contributionHandler) submitContribution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("groupID")

	req := dto.SubmitContributionRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for submitContribution", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	submitterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	contribution, err := h.contributionService.SubmitContribution(c.Request.Context(), groupID, req, submitterUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to submit contribution")
		return
	}

	logger.Info("Contribution submitted",
		slog.String("contribution_id", contribution.ContributionID),
		slog.String("group_id", groupID),
		slog.Bool("is_late", contribution.IsLate))
	c.JSON(http.StatusCreated, dto.ToContributionResponse(contribution))
}

// listContributions godoc
// @Summary List a group's contributions
// @Description Retrieves a paginated list of contributions, optionally filtered by status, period or member
// @Tags contributions
// @Produce  json
// @Param   groupID path string true "Group ID"
// @Param   limit query int false "Page size (default 20)"
// @Param   nextToken query string false "Pagination token from a previous response"
// @Param   status query string false "Filter by status (PENDING, COMPLETED, REJECTED, FAILED)"
// @Param   month query int false "Filter by month (1-12)"
// @Param   year query int false "Filter by year"
// @Param   userID query string false "Filter by member"
// @Success 200 {object} dto.ListContributionsResponse "Contributions and optional next page token"
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 403 {object} map[string]string "Not an active member of the group"
// @Router /groups/{groupID}/contributions [get]
func (h *contributionHandler) listContributions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("groupID")

	params := dto.ListContributionsParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listContributions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.contributionService.ListGroupContributions(c.Request.Context(), groupID, requestingUserID, params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list contributions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getContribution godoc
// @Summary Get a contribution
// @Description Retrieves a single contribution by ID; requester must be an active member of its group
// @Tags contributions
// @Produce  json
// @Param   contributionID path string true "Contribution ID"
// @Success 200 {object} dto.ContributionResponse "The contribution"
// @Failure 403 {object} map[string]string "Not an active member of the group"
// @Failure 404 {object} map[string]string "Contribution not found"
// @Router /contributions/{contributionID} [get]
func (h *contributionHandler) getContribution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contributionID := c.Param("contributionID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	contribution, err := h.contributionService.GetContributionByID(c.Request.Context(), contributionID, requestingUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve contribution")
		return
	}

	c.JSON(http.StatusOK, dto.ToContributionResponse(contribution))
}

// reviewContribution godoc
// @Summary Review a pending contribution
// @Description Officer approves or rejects a PENDING contribution; approval settles the member's balance in the same transaction
// @Tags contributions
// @Accept  json
// @Produce  json
// @Param   contributionID path string true "Contribution ID"
// @Param   review body dto.ReviewContributionRequest true "Review decision"
// @Success 200 {object} dto.ContributionResponse "The reviewed contribution"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Reviewer lacks officer role"
// @Failure 404 {object} map[string]string "Contribution not found"
// @Failure 409 {object} map[string]string "Contribution already reviewed or concurrent update"
// @Router /contributions/{contributionID}/review [post]
func (h *contributionHandler) reviewContribution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contributionID := c.Param("contributionID")

	req := dto.ReviewContributionRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for reviewContribution", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	reviewerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	contribution, err := h.contributionService.ReviewContribution(c.Request.Context(), contributionID, req, reviewerUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to review contribution")
		return
	}

	logger.Info("Contribution reviewed",
		slog.String("contribution_id", contributionID),
		slog.String("decision", string(req.Decision)),
		slog.String("reviewer_user_id", reviewerUserID))
	c.JSON(http.StatusOK, dto.ToContributionResponse(contribution))
}

// reviewContributionsBatch godoc
// @Summary Review several contributions atomically
// @Description Applies one decision to a set of PENDING contributions in a single transaction; if any item fails, nothing is applied
// @Tags contributions
// @Accept  json
// @Produce  json
// @Param   review body dto.BatchReviewRequest true "Batch review decision"
// @Success 200 {object} dto.ListContributionsResponse "The reviewed contributions"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Reviewer lacks officer role in one of the groups"
// @Failure 404 {object} map[string]string "A contribution in the batch was not found"
// @Failure 409 {object} map[string]string "A contribution in the batch is already reviewed"
// @Router /contributions/review [post]
func (h *contributionHandler) reviewContributionsBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.BatchReviewRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for reviewContributionsBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	reviewerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	contributions, err := h.contributionService.ReviewContributionsBatch(c.Request.Context(), req, reviewerUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to review contributions")
		return
	}

	logger.Info("Contribution batch reviewed",
		slog.Int("count", len(contributions)),
		slog.String("decision", string(req.Decision)),
		slog.String("reviewer_user_id", reviewerUserID))
	c.JSON(http.StatusOK, dto.ListContributionsResponse{
		Contributions: dto.ToContributionResponses(contributions),
	})
}

// recordCashPayment godoc
// @Summary Record a cash payment
// @Description Officer records a payment received outside the app; the contribution is created already COMPLETED and settled immediately
// @Tags contributions
// @Accept  json
// @Produce  json
// @Param   groupID path string true "Group ID"
// @Param   payment body dto.CashPaymentRequest true "Cash payment details"
// @Success 201 {object} dto.ContributionResponse "The settled contribution"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Actor lacks officer role"
// @Failure 404 {object} map[string]string "Target member not found"
// @Router /groups/{groupID}/contributions/cash [post]
func (h *contributionHandler) recordCashPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("groupID")

	req := dto.CashPaymentRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordCashPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	contribution, err := h.contributionService.RecordCashPayment(c.Request.Context(), groupID, req, actorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to record cash payment")
		return
	}

	logger.Info("Cash payment recorded",
		slog.String("contribution_id", contribution.ContributionID),
		slog.String("group_id", groupID),
		slog.String("target_user_id", req.UserID))
	c.JSON(http.StatusCreated, dto.ToContributionResponse(contribution))
}

// registerContributionRoutes registers contribution specific routes
func registerContributionRoutes(group *gin.RouterGroup, contributionService portssvc.ContributionSvcFacade) {
	handler := newContributionHandler(contributionService)

	groups := group.Group("/groups/:groupID/contributions")
	{
		groups.POST("", handler.submitContribution)
		groups.GET("", handler.listContributions)
		groups.POST("/cash", handler.recordCashPayment)
	}

	contributions := group.Group("/contributions")
	{
		contributions.GET("/:contributionID", handler.getContribution)
		contributions.POST("/:contributionID/review", handler.reviewContribution)
		contributions.POST("/review", handler.reviewContributionsBatch)
	}
}
