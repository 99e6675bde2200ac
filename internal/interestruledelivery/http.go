// Package interestruledelivery manages delivery layer of interest rules.
package interestruledelivery

import (
	"context"
	"errors"
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/awesomegic/gic-bank/internal/domain"
	"github.com/awesomegic/gic-bank/pkg/dates"
	"github.com/awesomegic/gic-bank/pkg/errorspkg"
	"github.com/awesomegic/gic-bank/pkg/web"
)

// Service provides service layer interface needed by interest rule delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package interestruledelivery
type Service interface {
	Upsert(ctx context.Context, date civil.Date, ruleID, rate string) ([]domain.InterestRule, error)
	List(ctx context.Context) ([]domain.InterestRule, error)
}

// Handler facilitates interest rule delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns interest rule handler.
func NewHandler(s Service) Handler {
	return Handler{service: s}
}

// RuleRow is the wire representation of one interest rule.
type RuleRow struct {
	Date   string `json:"date"`
	RuleID string `json:"rule_id"`
	Rate   string `json:"rate"`
}

func newRuleRow(rule domain.InterestRule) RuleRow {
	return RuleRow{
		Date:   dates.Format(rule.EffectiveDate),
		RuleID: rule.RuleID,
		Rate:   rule.RatePercent.StringFixed(2),
	}
}

type upsertRequest struct {
	Date   string `json:"date" binding:"required,date8"`
	RuleID string `json:"rule_id" binding:"required"`
	Rate   string `json:"rate" binding:"required,ratepercent"`
}

type dataRules struct {
	Rules []RuleRow `json:"rules"`
}
type response struct {
	Data dataRules `json:"data,omitempty"`
}

// Upsert handles http request to define an interest rule. The response
// carries the whole timeline after the change.
func (h *Handler) Upsert(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req upsertRequest
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

	rules, err := h.service.Upsert(ctx, date, req.RuleID, req.Rate)
	if err != nil {
		if err == domain.ErrInvalidRate {
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: dataRules{Rules: newRuleRows(rules)}})
}

// List handles http request to list all interest rules.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	rules, err := h.service.List(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, response{Data: dataRules{Rules: newRuleRows(rules)}})
}

func newRuleRows(rules []domain.InterestRule) []RuleRow {
	rows := make([]RuleRow, 0, len(rules))
	for _, rule := range rules {
		rows = append(rows, newRuleRow(rule))
	}

	return rows
}
