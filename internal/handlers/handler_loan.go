package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/vikoba/vikoba_backend/internal/core/ports/services"
	"github.com/vikoba/vikoba_backend/internal/dto"
	"github.com/vikoba/vikoba_backend/internal/middleware"
)

// loanHandler handles HTTP requests for loan eligibility.
type loanHandler struct {
	loanService portssvc.LoanSvcFacade
}

// newLoanHandler creates a new loanHandler.
func newLoanHandler(loanService portssvc.LoanSvcFacade) *loanHandler {
	return &loanHandler{
		loanService: loanService,
	}
}

// getLoanEligibility godoc
// @Summary Get a member's loan eligibility
// @Description Derives eligibility and the maximum loan amount from the member's COMPLETED contribution history
// @Tags loans
// @Produce  json
// @Param   groupID path string true "Group ID"
// @Param   userID path string true "User ID"
// @Success 200 {object} dto.LoanEligibilityResponse "Eligibility details"
// @Failure 403 {object} map[string]string "Requester is not an active member of the group"
// @Failure 404 {object} map[string]string "Group not found"
// @Router /groups/{groupID}/members/{userID}/loan-eligibility [get]
func (h *loanHandler) getLoanEligibility(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("groupID")
	userID := c.Param("userID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	eligibility, err := h.loanService.ComputeEligibility(c.Request.Context(), groupID, userID, requestingUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to compute loan eligibility")
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanEligibilityResponse(eligibility))
}

// registerLoanRoutes registers loan specific routes
func registerLoanRoutes(group *gin.RouterGroup, loanService portssvc.LoanSvcFacade) {
	handler := newLoanHandler(loanService)

	group.GET("/groups/:groupID/members/:userID/loan-eligibility", handler.getLoanEligibility)
}
