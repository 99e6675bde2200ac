// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/awesomegic/gic-bank/internal/domain"
	"github.com/awesomegic/gic-bank/pkg/dates"
	"github.com/awesomegic/gic-bank/pkg/errorspkg"
	"github.com/awesomegic/gic-bank/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Deposit(ctx context.Context, accountID string, date civil.Date, amount string) (domain.Transaction, error)
	Withdraw(ctx context.Context, accountID string, date civil.Date, amount string) (domain.Transaction, error)
	Transactions(ctx context.Context, accountID string) ([]domain.Transaction, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(s Service) Handler {
	return Handler{service: s}
}

// TransactionRow is the wire representation of a posted transaction.
type TransactionRow struct {
	Date    string `json:"date"`
	ID      string `json:"id"`
	Type    string `json:"type"`
	Amount  string `json:"amount"`
	Balance string `json:"balance"`
}

// NewTransactionRow renders a transaction with amounts rounded to 2 decimals.
// Rounding happens here and nowhere else; the ledger keeps full precision.
func NewTransactionRow(txn domain.Transaction) TransactionRow {
	return TransactionRow{
		Date:    dates.Format(txn.Date),
		ID:      txn.ID,
		Type:    string(txn.Kind),
		Amount:  txn.Amount.StringFixed(2),
		Balance: txn.BalanceAfter.StringFixed(2),
	}
}

type createRequest struct {
	Date    string `json:"date" binding:"required,date8"`
	Account string `json:"account" binding:"required"`
	Type    string `json:"type" binding:"required,oneof=D W d w"`
	Amount  string `json:"amount" binding:"required"`
}

type data struct {
	Transaction TransactionRow `json:"transaction"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

// CreateTransaction handles http request to post a deposit or withdrawal.
func (h *Handler) CreateTransaction(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	date, err := dates.Parse(req.Date)
	if err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	}

	var txn domain.Transaction

	switch strings.ToUpper(req.Type) {
	case string(domain.KindDeposit):
		txn, err = h.service.Deposit(ctx, req.Account, date, req.Amount)
	case string(domain.KindWithdrawal):
		txn, err = h.service.Withdraw(ctx, req.Account, date, req.Amount)
	}

	if err != nil {
		switch err {
		case domain.ErrInvalidAmount, domain.ErrNonPositiveAmount, domain.ErrFirstTransactionWithdrawal:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrInsufficientBalance, domain.ErrBackdatedPosting:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{NewTransactionRow(txn)},
	}

	gctx.JSON(http.StatusOK, res)
}

type listRequest struct {
	ID string `uri:"id" binding:"required"`
}

type dataTransactions struct {
	Account      string           `json:"account"`
	Transactions []TransactionRow `json:"transactions"`
}
type responseTransactions struct {
	Data dataTransactions `json:"data,omitempty"`
}

// ListTransactions handles http request to list an account's full history.
func (h *Handler) ListTransactions(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req listRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	txns, err := h.service.Transactions(ctx, req.ID)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	rows := make([]TransactionRow, 0, len(txns))
	for _, txn := range txns {
		rows = append(rows, NewTransactionRow(txn))
	}

	res := responseTransactions{
		Data: dataTransactions{Account: req.ID, Transactions: rows},
	}

	gctx.JSON(http.StatusOK, res)
}
