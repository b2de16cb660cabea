package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"partnerleads/internal/services"
)

type ReferralHandler struct {
	Service *services.ReferralService
}

func NewReferralHandler(service *services.ReferralService) *ReferralHandler {
	return &ReferralHandler{Service: service}
}

// @Summary      Create referral
// @Description  Registers a partner submission; the referral code is generated server-side
// @Tags         Referrals
// @Accept       json
// @Produce      json
// @Param        referral  body      services.CreateReferralInput  true  "Referral"
// @Success      201       {object}  map[string]interface{}
// @Failure      400       {object}  map[string]string
// @Router       /referrals [post]
func (h *ReferralHandler) Create(c *gin.Context) {
	var in services.CreateReferralInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ref, err := h.Service.Create(in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"referral": ref})
}

// @Summary      List referrals
// @Tags         Referrals
// @Produce      json
// @Param        status      query  string  false  "Status filter, 'all' for none"
// @Param        partner_id  query  int     false  "Partner filter"
// @Success      200  {object}  map[string]interface{}
// @Router       /referrals [get]
func (h *ReferralHandler) List(c *gin.Context) {
	partnerID, _ := strconv.Atoi(c.DefaultQuery("partner_id", "0"))

	refs, err := h.Service.List(c.Query("status"), partnerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"referrals": refs})
}
