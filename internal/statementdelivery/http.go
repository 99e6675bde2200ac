// Package statementdelivery manages delivery layer of monthly statements.
package statementdelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/awesomegic/gic-bank/internal/accountdelivery"
	"github.com/awesomegic/gic-bank/internal/domain"
	"github.com/awesomegic/gic-bank/pkg/errorspkg"
	"github.com/awesomegic/gic-bank/pkg/web"
)

// Service provides service layer interface needed by statement delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package statementdelivery
type Service interface {
	Statement(ctx context.Context, accountID string, year int, month time.Month) (domain.Statement, error)
}

// Handler facilitates statement delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns statement handler.
func NewHandler(s Service) Handler {
	return Handler{service: s}
}

type uriRequest struct {
	ID string `uri:"id" binding:"required"`
}

type queryRequest struct {
	Year  int `form:"year" binding:"required,min=1,max=9999"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

type dataStatement struct {
	Account      string                           `json:"account"`
	Transactions []accountdelivery.TransactionRow `json:"transactions"`
	Interest     accountdelivery.TransactionRow   `json:"interest"`
}
type response struct {
	Data dataStatement `json:"data,omitempty"`
}

// Get handles http request to generate a monthly statement. Generating the
// statement applies the month's interest to the ledger; repeating the request
// returns the same interest transaction.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
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

	var query queryRequest
	if err := gctx.ShouldBindQuery(&query); err != nil {
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

	statement, err := h.service.Statement(ctx, uri.ID, query.Year, time.Month(query.Month))
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrBackdatedPosting:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	rows := make([]accountdelivery.TransactionRow, 0, len(statement.Transactions))
	for _, txn := range statement.Transactions {
		rows = append(rows, accountdelivery.NewTransactionRow(txn))
	}

	res := response{
		Data: dataStatement{
			Account:      statement.AccountID,
			Transactions: rows,
			Interest:     accountdelivery.NewTransactionRow(statement.Interest),
		},
	}

	gctx.JSON(http.StatusOK, res)
}
