package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Settings keys for runtime rate overrides.
const (
	settingCommissionRate = "commission_rate"
	settingCardFeeRate    = "card_fee_rate"
	settingTaxRate        = "tax_rate"
)

// RatesResponse reports the effective rates plus whichever of them are
// runtime overrides rather than file configuration.
type RatesResponse struct {
	CommissionRate float64            `json:"commissionRate"`
	CardFeeRate    float64            `json:"cardFeeRate"`
	TaxRate        float64            `json:"taxRate"`
	Overrides      map[string]float64 `json:"overrides"`
}

// GetRates reports the effective rates.
// GET /api/rates
func (h *Handler) GetRates(c *gin.Context) {
	c.JSON(http.StatusOK, h.ratesResponse())
}

func (h *Handler) ratesResponse() RatesResponse {
	rates := h.effectiveRates()
	resp := RatesResponse{
		CommissionRate: rates.Commission,
		CardFeeRate:    rates.CardFee,
		TaxRate:        rates.Tax,
		Overrides:      make(map[string]float64),
	}
	for _, key := range []string{settingCommissionRate, settingCardFeeRate, settingTaxRate} {
		if v, ok := h.store.GetSettingFloat(key); ok {
			resp.Overrides[key] = v
		}
	}
	return resp
}

// RatesRequest carries the overrides of a PUT. Absent fields keep their
// current value.
type RatesRequest struct {
	CommissionRate *float64 `json:"commissionRate"`
	CardFeeRate    *float64 `json:"cardFeeRate"`
	TaxRate        *float64 `json:"taxRate"`
}

// PutRates stores runtime rate overrides. The resulting effective set
// is validated before anything is persisted.
// PUT /api/rates
func (h *Handler) PutRates(c *gin.Context) {
	var req RatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be JSON rate fields"})
		return
	}
	if req.CommissionRate == nil && req.CardFeeRate == nil && req.TaxRate == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no rate given"})
		return
	}

	rates := h.effectiveRates()
	if req.CommissionRate != nil {
		rates.Commission = *req.CommissionRate
	}
	if req.CardFeeRate != nil {
		rates.CardFee = *req.CardFeeRate
	}
	if req.TaxRate != nil {
		rates.Tax = *req.TaxRate
	}
	if err := rates.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := []struct {
		key   string
		value *float64
	}{
		{settingCommissionRate, req.CommissionRate},
		{settingCardFeeRate, req.CardFeeRate},
		{settingTaxRate, req.TaxRate},
	}
	for _, u := range updates {
		if u.value == nil {
			continue
		}
		if err := h.store.SetSettingFloat(u.key, *u.value); err != nil {
			h.serverError(c, err)
			return
		}
	}

	h.log.WithFields(logrus.Fields{
		"commission": rates.Commission,
		"cardFee":    rates.CardFee,
		"tax":        rates.Tax,
	}).Info("rates updated")

	c.JSON(http.StatusOK, h.ratesResponse())
}
