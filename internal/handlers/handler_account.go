package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bank_demo_app/internal/core/ports/services"
	"github.com/SscSPs/bank_demo_app/internal/dto"
	"github.com/SscSPs/bank_demo_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to personal accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// registerAccountRoutes registers routes related to personal accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/count", h.countAccounts)
		accounts.GET("/:pesel", h.getAccount)
		accounts.PATCH("/:pesel", h.updateAccount)
		accounts.DELETE("/:pesel", h.deleteAccount)
		accounts.POST("/:pesel/transfer", h.transfer)
		accounts.POST("/:pesel/loan", h.requestLoan)
		accounts.POST("/:pesel/history/email", h.emailHistory)
	}
}

// createAccount godoc
// @Summary Open a personal account
// @Description Registers a personal account. An identity number that is not 11 characters long is stored as "Invalid".
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account holder"
// @Success 201 {object} dto.CreatedResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 409 {object} dto.ErrorResponse "Identity number already registered"
// @Failure 500 {object} dto.ErrorResponse "Failed to create account"
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreateAccountRequest
	if !bindJSON(c, logger, &req, "CreateAccount") {
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, dto.CreatedResponse{Message: "Account created", ID: account.Pesel})
}

// listAccounts godoc
// @Summary List personal accounts
// @Tags accounts
// @Produce  json
// @Success 200 {array} dto.AccountResponse
// @Failure 500 {object} dto.ErrorResponse "Failed to list accounts"
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	accounts, err := h.accountService.ListAccounts(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// countAccounts godoc
// @Summary Count personal accounts
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.CountResponse
// @Router /accounts/count [get]
func (h *accountHandler) countAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	count, err := h.accountService.CountAccounts(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to count accounts")
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Count: count})
}

// getAccount godoc
// @Summary Get a personal account
// @Tags accounts
// @Produce  json
// @Param   pesel path string true "Identity number"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Router /accounts/{pesel} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c).With(slog.String("pesel", c.Param("pesel")))
	account, err := h.accountService.GetAccount(c.Request.Context(), c.Param("pesel"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, account)
}

// updateAccount godoc
// @Summary Update a personal account
// @Description Changes the holder's name and/or surname. Omitted fields are left untouched.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   pesel path string true "Identity number"
// @Param   account body dto.UpdateAccountRequest true "Fields to change"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Router /accounts/{pesel} [patch]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c).With(slog.String("pesel", c.Param("pesel")))
	var req dto.UpdateAccountRequest
	if !bindJSON(c, logger, &req, "UpdateAccount") {
		return
	}

	if _, err := h.accountService.UpdateAccount(c.Request.Context(), c.Param("pesel"), req); err != nil {
		respondError(c, logger, err, "Failed to update account")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Account updated"})
}

// deleteAccount godoc
// @Summary Delete a personal account
// @Tags accounts
// @Produce  json
// @Param   pesel path string true "Identity number"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Router /accounts/{pesel} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c).With(slog.String("pesel", c.Param("pesel")))
	if err := h.accountService.DeleteAccount(c.Request.Context(), c.Param("pesel")); err != nil {
		respondError(c, logger, err, "Failed to delete account")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Account deleted"})
}

// transfer godoc
// @Summary Book a transfer
// @Description incoming credits the account, outgoing debits it, express debits the amount plus a fee of 1.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   pesel path string true "Identity number"
// @Param   transfer body dto.TransferRequest true "Transfer"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 422 {object} dto.ErrorResponse "Insufficient funds"
// @Router /accounts/{pesel}/transfer [post]
func (h *accountHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c).With(slog.String("pesel", c.Param("pesel")))
	var req dto.TransferRequest
	if !bindJSON(c, logger, &req, "Transfer") {
		return
	}

	account, err := h.accountService.Transfer(c.Request.Context(), c.Param("pesel"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to book transfer")
		return
	}
	c.JSON(http.StatusOK, account)
}

// requestLoan godoc
// @Summary Request a loan
// @Description Approved when the last five entries sum to at least the amount, or the last three are all incoming.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   pesel path string true "Identity number"
// @Param   loan body dto.LoanRequest true "Loan"
// @Success 200 {object} dto.LoanResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Router /accounts/{pesel}/loan [post]
func (h *accountHandler) requestLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c).With(slog.String("pesel", c.Param("pesel")))
	var req dto.LoanRequest
	if !bindJSON(c, logger, &req, "RequestLoan") {
		return
	}

	approved, err := h.accountService.RequestLoan(c.Request.Context(), c.Param("pesel"), req.Amount)
	if err != nil {
		respondError(c, logger, err, "Failed to evaluate loan")
		return
	}
	c.JSON(http.StatusOK, dto.LoanResponse{Approved: approved})
}

// emailHistory godoc
// @Summary Email the transfer history
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   pesel path string true "Identity number"
// @Param   email body dto.EmailHistoryRequest true "Recipient"
// @Success 200 {object} dto.EmailHistoryResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Router /accounts/{pesel}/history/email [post]
func (h *accountHandler) emailHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c).With(slog.String("pesel", c.Param("pesel")))
	var req dto.EmailHistoryRequest
	if !bindJSON(c, logger, &req, "EmailHistory") {
		return
	}

	sent, err := h.accountService.EmailHistory(c.Request.Context(), c.Param("pesel"), req.Email)
	if err != nil {
		respondError(c, logger, err, "Failed to send history email")
		return
	}
	c.JSON(http.StatusOK, dto.EmailHistoryResponse{Sent: sent})
}
