// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerlink/backend/internal/application/usecase/account"
	domainerror "github.com/ledgerlink/backend/internal/domain/error"
	"github.com/ledgerlink/backend/internal/integration/entrypoint/dto"
)

// AccountController handles account endpoints.
type AccountController struct {
	createAccountUseCase *account.CreateAccountUseCase
	listAccountsUseCase  *account.ListAccountsUseCase
}

// NewAccountController creates a new account controller instance.
func NewAccountController(
	createAccountUseCase *account.CreateAccountUseCase,
	listAccountsUseCase *account.ListAccountsUseCase,
) *AccountController {
	return &AccountController{
		createAccountUseCase: createAccountUseCase,
		listAccountsUseCase:  listAccountsUseCase,
	}
}

// Create handles POST /accounts requests.
func (c *AccountController) Create(ctx *gin.Context) {
	var req dto.CreateAccountRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	input := account.CreateAccountInput{
		Name:        req.Name,
		Institution: req.Institution,
		Currency:    req.Currency,
	}

	output, err := c.createAccountUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleAccountError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToAccountResponseDTO(output.Account))
}

// List handles GET /accounts requests.
func (c *AccountController) List(ctx *gin.Context) {
	output, err := c.listAccountsUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleAccountError(ctx, err)
		return
	}

	accounts := make([]dto.AccountResponseDTO, len(output.Accounts))
	for i, a := range output.Accounts {
		accounts[i] = dto.ToAccountResponseDTO(a)
	}

	ctx.JSON(http.StatusOK, dto.ListAccountsResponseDTO{Accounts: accounts})
}

// handleAccountError handles account errors and returns appropriate HTTP responses.
func (c *AccountController) handleAccountError(ctx *gin.Context, err error) {
	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		statusCode := http.StatusBadRequest
		if txnErr.Code == domainerror.ErrCodeAccountNotFound {
			statusCode = http.StatusNotFound
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
