package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pranavkm07/finance_plan_app/internal/apperrors"
	portssvc "github.com/pranavkm07/finance_plan_app/internal/core/ports/services"
	"github.com/pranavkm07/finance_plan_app/internal/dto"
	"github.com/pranavkm07/finance_plan_app/internal/middleware"
	"github.com/pranavkm07/finance_plan_app/internal/planstate"
)

// planHandler exposes the plan store operations over HTTP.
type planHandler struct {
	planSvc portssvc.PlanSvcFacade
}

func newPlanHandler(svc portssvc.PlanSvcFacade) *planHandler {
	return &planHandler{planSvc: svc}
}

// registerPlanRoutes registers all plan state routes.
func registerPlanRoutes(rg *gin.RouterGroup, svc portssvc.PlanSvcFacade) {
	h := newPlanHandler(svc)

	plan := rg.Group("/plan")
	{
		plan.GET("", h.getPlan)
		plan.GET("/summary", h.getSummary)
		plan.GET("/status", h.getStatus)

		plan.POST("/income", h.addIncome)
		plan.PUT("/income/:incomeID", h.updateIncome)
		plan.DELETE("/income/:incomeID", h.deleteIncome)

		plan.POST("/expenses", h.addExpense)
		plan.PUT("/expenses/:expenseID", h.updateExpense)
		plan.DELETE("/expenses/:expenseID", h.deleteExpense)

		plan.POST("/goals", h.addGoal)
		plan.PUT("/goals/:goalID", h.updateGoal)
		plan.DELETE("/goals/:goalID", h.deleteGoal)

		plan.PUT("/balance", h.updateBalance)
		plan.PUT("/forecast/config", h.updateForecastConfig)
		plan.POST("/forecast/regenerate", h.regenerateForecast)

		plan.POST("/save", h.savePlan)
		plan.POST("/load", h.loadPlan)
		plan.POST("/reset", h.resetPlan)
		plan.DELETE("/errors", h.clearErrors)
	}
}

// respondOpError translates store errors onto HTTP status codes.
func (h *planHandler) respondOpError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Entity not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}

// getPlan returns the whole plan aggregate.
func (h *planHandler) getPlan(c *gin.Context) {
	c.JSON(http.StatusOK, h.planSvc.Plan())
}

// getSummary returns the derived plan summary.
func (h *planHandler) getSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.planSvc.Summary())
}

// getStatus returns the loading flags, error map and dirty flag.
func (h *planHandler) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToStatusResponse(h.planSvc.State()))
}

func (h *planHandler) addIncome(c *gin.Context) {
	var req dto.CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	income, err := h.planSvc.AddIncome(c.Request.Context(), req.ToInput())
	if err != nil {
		h.respondOpError(c, err, "Failed to add income")
		return
	}
	c.JSON(http.StatusCreated, income)
}

func (h *planHandler) updateIncome(c *gin.Context) {
	var req dto.UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	income, err := h.planSvc.UpdateIncome(c.Request.Context(), c.Param("incomeID"), req.ToUpdate())
	if err != nil {
		h.respondOpError(c, err, "Failed to update income")
		return
	}
	c.JSON(http.StatusOK, income)
}

func (h *planHandler) deleteIncome(c *gin.Context) {
	if err := h.planSvc.DeleteIncome(c.Request.Context(), c.Param("incomeID")); err != nil {
		h.respondOpError(c, err, "Failed to delete income")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *planHandler) addExpense(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	expense, err := h.planSvc.AddExpense(c.Request.Context(), req.ToInput())
	if err != nil {
		h.respondOpError(c, err, "Failed to add expense")
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (h *planHandler) updateExpense(c *gin.Context) {
	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	expense, err := h.planSvc.UpdateExpense(c.Request.Context(), c.Param("expenseID"), req.ToUpdate())
	if err != nil {
		h.respondOpError(c, err, "Failed to update expense")
		return
	}
	c.JSON(http.StatusOK, expense)
}

func (h *planHandler) deleteExpense(c *gin.Context) {
	if err := h.planSvc.DeleteExpense(c.Request.Context(), c.Param("expenseID")); err != nil {
		h.respondOpError(c, err, "Failed to delete expense")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *planHandler) addGoal(c *gin.Context) {
	var req dto.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	goal, err := h.planSvc.AddGoal(c.Request.Context(), req.ToInput())
	if err != nil {
		h.respondOpError(c, err, "Failed to add goal")
		return
	}
	c.JSON(http.StatusCreated, goal)
}

func (h *planHandler) updateGoal(c *gin.Context) {
	var req dto.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	goal, err := h.planSvc.UpdateGoal(c.Request.Context(), c.Param("goalID"), req.ToUpdate())
	if err != nil {
		h.respondOpError(c, err, "Failed to update goal")
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (h *planHandler) deleteGoal(c *gin.Context) {
	if err := h.planSvc.DeleteGoal(c.Request.Context(), c.Param("goalID")); err != nil {
		h.respondOpError(c, err, "Failed to delete goal")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *planHandler) updateBalance(c *gin.Context) {
	var req dto.UpdateBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	if err := h.planSvc.UpdateCurrentBalance(c.Request.Context(), req.Balance); err != nil {
		h.respondOpError(c, err, "Failed to update balance")
		return
	}
	c.JSON(http.StatusOK, h.planSvc.Plan())
}

func (h *planHandler) updateForecastConfig(c *gin.Context) {
	var req dto.UpdateForecastConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	cfg, err := h.planSvc.UpdateForecastConfig(c.Request.Context(), req.ToPatch())
	if err != nil {
		h.respondOpError(c, err, "Failed to update forecast config")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *planHandler) regenerateForecast(c *gin.Context) {
	if err := h.planSvc.RegenerateForecast(c.Request.Context()); err != nil {
		h.respondOpError(c, err, "Failed to regenerate forecast")
		return
	}
	c.JSON(http.StatusOK, h.planSvc.Plan().Forecast)
}

func (h *planHandler) savePlan(c *gin.Context) {
	if err := h.planSvc.SavePlan(c.Request.Context()); err != nil {
		h.respondOpError(c, err, "Failed to save plan")
		return
	}
	c.JSON(http.StatusOK, h.planSvc.Plan())
}

func (h *planHandler) loadPlan(c *gin.Context) {
	if err := h.planSvc.LoadPlan(c.Request.Context()); err != nil {
		h.respondOpError(c, err, "Failed to load plan")
		return
	}
	c.JSON(http.StatusOK, h.planSvc.Plan())
}

func (h *planHandler) resetPlan(c *gin.Context) {
	h.planSvc.ResetAll()
	c.JSON(http.StatusOK, h.planSvc.Plan())
}

// clearErrors clears one error category (?category=...) or all of them.
func (h *planHandler) clearErrors(c *gin.Context) {
	category := planstate.ErrorCategory(c.Query("category"))
	h.planSvc.ClearError(category)
	c.JSON(http.StatusOK, dto.ToStatusResponse(h.planSvc.State()))
}
