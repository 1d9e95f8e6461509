package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bank_demo_app/internal/core/ports/services"
	"github.com/SscSPs/bank_demo_app/internal/dto"
	"github.com/SscSPs/bank_demo_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// businessAccountHandler handles HTTP requests related to company accounts.
type businessAccountHandler struct {
	service portssvc.BusinessAccountSvcFacade
}

// registerBusinessAccountRoutes registers routes related to company accounts.
func registerBusinessAccountRoutes(rg *gin.RouterGroup, service portssvc.BusinessAccountSvcFacade) {
	h := &businessAccountHandler{service: service}

	accounts := rg.Group("/business-accounts")
	{
		accounts.POST("", h.createBusinessAccount)
		accounts.GET("", h.listBusinessAccounts)
		accounts.GET("/count", h.countBusinessAccounts)
		accounts.GET("/:nip", h.getBusinessAccount)
		accounts.PATCH("/:nip", h.updateBusinessAccount)
		accounts.DELETE("/:nip", h.deleteBusinessAccount)
		accounts.POST("/:nip/transfer", h.transfer)
		accounts.POST("/:nip/loan", h.takeLoan)
		accounts.POST("/:nip/history/email", h.emailHistory)
	}
}

// createBusinessAccount godoc
// @Summary Open a company account
// @Description A 10 character tax number is confirmed with the VAT registry first; any other length is stored as "Invalid" without a lookup.
// @Tags business-accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateBusinessAccountRequest true "Company"
// @Success 201 {object} dto.CreatedResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 409 {object} dto.ErrorResponse "Tax number already registered"
// @Failure 422 {object} dto.ErrorResponse "Company not confirmed by the registry"
// @Router /business-accounts [post]
func (h *businessAccountHandler) createBusinessAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreateBusinessAccountRequest
	if !bindJSON(c, logger, &req, "CreateBusinessAccount") {
		return
	}

	account, err := h.service.CreateBusinessAccount(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to create business account")
		return
	}

	c.JSON(http.StatusCreated, dto.CreatedResponse{Message: "Account created", ID: account.NIP})
}

// listBusinessAccounts godoc
// @Summary List company accounts
// @Tags business-accounts
// @Produce  json
// @Success 200 {array} dto.BusinessAccountResponse
// @Router /business-accounts [get]
func (h *businessAccountHandler) listBusinessAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	accounts, err := h.service.ListBusinessAccounts(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list business accounts")
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// countBusinessAccounts godoc
// @Summary Count company accounts
// @Tags business-accounts
// @Produce  json
// @Success 200 {object} dto.CountResponse
// @Router /business-accounts/count [get]
func (h *businessAccountHandler) countBusinessAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	count, err := h.service.CountBusinessAccounts(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to count business accounts")
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Count: count})
}

// getBusinessAccount godoc
// @Summary Get a company account
// @Tags business-accounts
// @Produce  json
// @Param   nip path string true "Tax number"
// @Success 200 {object} dto.BusinessAccountResponse
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Router /business-accounts/{nip} [get]
func (h *businessAccountHandler) getBusinessAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c).With(slog.String("nip", c.Param("nip")))
	account, err := h.service.GetBusinessAccount(c.Request.Context(), c.Param("nip"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve business account")
		return
	}
	c.JSON(http.StatusOK, account)
}

// updateBusinessAccount godoc
// @Summary Rename a company account
// @Tags business-accounts
// @Accept  json
// @Produce  json
// @Param   nip path string true "Tax number"
// @Param   account body dto.UpdateBusinessAccountRequest true "Fields to change"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Router /business-accounts/{nip} [patch]
func (h *businessAccountHandler) updateBusinessAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c).With(slog.String("nip", c.Param("nip")))
	var req dto.UpdateBusinessAccountRequest
	if !bindJSON(c, logger, &req, "UpdateBusinessAccount") {
		return
	}

	if _, err := h.service.UpdateBusinessAccount(c.Request.Context(), c.Param("nip"), req); err != nil {
		respondError(c, logger, err, "Failed to update business account")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Account updated"})
}

// deleteBusinessAccount godoc
// @Summary Delete a company account
// @Tags business-accounts
// @Produce  json
// @Param   nip path string true "Tax number"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Router /business-accounts/{nip} [delete]
func (h *businessAccountHandler) deleteBusinessAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c).With(slog.String("nip", c.Param("nip")))
	if err := h.service.DeleteBusinessAccount(c.Request.Context(), c.Param("nip")); err != nil {
		respondError(c, logger, err, "Failed to delete business account")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Account deleted"})
}

// transfer godoc
// @Summary Book a transfer on a company account
// @Description express debits the amount plus a fee of 5.
// @Tags business-accounts
// @Accept  json
// @Produce  json
// @Param   nip path string true "Tax number"
// @Param   transfer body dto.TransferRequest true "Transfer"
// @Success 200 {object} dto.BusinessAccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 422 {object} dto.ErrorResponse "Insufficient funds"
// @Router /business-accounts/{nip}/transfer [post]
func (h *businessAccountHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c).With(slog.String("nip", c.Param("nip")))
	var req dto.TransferRequest
	if !bindJSON(c, logger, &req, "BusinessTransfer") {
		return
	}

	account, err := h.service.Transfer(c.Request.Context(), c.Param("nip"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to book transfer")
		return
	}
	c.JSON(http.StatusOK, account)
}

// takeLoan godoc
// @Summary Take a company loan
// @Description Approved when the balance is at least twice the amount and a -1775 contribution appears in the history.
// @Tags business-accounts
// @Accept  json
// @Produce  json
// @Param   nip path string true "Tax number"
// @Param   loan body dto.LoanRequest true "Loan"
// @Success 200 {object} dto.LoanResponse
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Router /business-accounts/{nip}/loan [post]
func (h *businessAccountHandler) takeLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c).With(slog.String("nip", c.Param("nip")))
	var req dto.LoanRequest
	if !bindJSON(c, logger, &req, "TakeLoan") {
		return
	}

	approved, err := h.service.TakeLoan(c.Request.Context(), c.Param("nip"), req.Amount)
	if err != nil {
		respondError(c, logger, err, "Failed to evaluate loan")
		return
	}
	c.JSON(http.StatusOK, dto.LoanResponse{Approved: approved})
}

// emailHistory godoc
// @Summary Email a company's transfer history
// @Tags business-accounts
// @Accept  json
// @Produce  json
// @Param   nip path string true "Tax number"
// @Param   email body dto.EmailHistoryRequest true "Recipient"
// @Success 200 {object} dto.EmailHistoryResponse
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Router /business-accounts/{nip}/history/email [post]
func (h *businessAccountHandler) emailHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c).With(slog.String("nip", c.Param("nip")))
	var req dto.EmailHistoryRequest
	if !bindJSON(c, logger, &req, "BusinessEmailHistory") {
		return
	}

	sent, err := h.service.EmailHistory(c.Request.Context(), c.Param("nip"), req.Email)
	if err != nil {
		respondError(c, logger, err, "Failed to send history email")
		return
	}
	c.JSON(http.StatusOK, dto.EmailHistoryResponse{Sent: sent})
}
