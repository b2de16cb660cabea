package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"partnerleads/internal/models"
	"partnerleads/internal/pdf"
	"partnerleads/internal/services"
)

type LeadHandler struct {
	Service  *services.LeadService
	Exporter pdf.Exporter
}

func NewLeadHandler(service *services.LeadService, exporter pdf.Exporter) *LeadHandler {
	return &LeadHandler{Service: service, Exporter: exporter}
}

// @Summary      Create lead
// @Description  Creates a lead, optionally linked to a referral by code
// @Tags         Leads
// @Accept       json
// @Produce      json
// @Param        lead  body      services.CreateLeadInput  true  "Lead fields"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /leads [post]
func (h *LeadHandler) Create(c *gin.Context) {
	var in services.CreateLeadInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	actorID, _ := getUserAndRole(c)
	lead, linked, err := h.Service.Create(in, actorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"lead": lead, "linked_to_referral": linked})
}

// @Summary      List leads
// @Description  Filtered, paginated lead list with aggregate statistics over the full set
// @Tags         Leads
// @Produce      json
// @Param        page         query  int     false  "Page"
// @Param        limit        query  int     false  "Page size"
// @Param        status       query  string  false  "Status filter, 'all' for none"
// @Param        source       query  string  false  "Source filter, 'all' for none"
// @Param        assigned_to  query  string  false  "Assignee filter, 'all' for none"
// @Param        search       query  string  false  "Substring match on company/contact/email"
// @Success      200  {object}  map[string]interface{}
// @Router       /leads [get]
func (h *LeadHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filters := models.LeadFilters{
		Status:     c.Query("status"),
		Source:     c.Query("source"),
		AssignedTo: c.Query("assigned_to"),
		Search:     c.Query("search"),
	}

	result, err := h.Service.List(filters, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"leads":      result.Leads,
		"pagination": result.Pagination,
		"statistics": result.Statistics,
	})
}

// @Summary      Lead detail
// @Description  Lead with assignee, partner, full activity timeline and payments
// @Tags         Leads
// @Produce      json
// @Param        id   path      int  true  "Lead id"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /leads/{id} [get]
func (h *LeadHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}

	lead, err := h.Service.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"lead": lead})
}

// @Summary      Update lead
// @Description  Free-form field update; id, created_at and referral_id are immutable here
// @Tags         Leads
// @Accept       json
// @Produce      json
// @Param        id    path      int                       true  "Lead id"
// @Param        lead  body      services.UpdateLeadInput  true  "Fields to change"
// @Success      200   {object}  map[string]interface{}
// @Failure      404   {object}  map[string]string
// @Router       /leads/{id} [put]
func (h *LeadHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}

	var in services.UpdateLeadInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	actorID, _ := getUserAndRole(c)
	lead, err := h.Service.Update(id, in, actorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"lead": lead})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// @Summary      Update lead status
// @Description  Moves the lead through its lifecycle and cascades onto a linked referral
// @Tags         Leads
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Lead id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Router       /leads/{id}/status [put]
func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	actorID, _ := getUserAndRole(c)
	lead, err := h.Service.UpdateStatus(id, models.LeadStatus(req.Status), req.Notes, actorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"lead": lead})
}

type logActivityRequest struct {
	Type  string `json:"type" binding:"required"`
	Notes string `json:"notes" binding:"required"`
}

// @Summary      Log activity
// @Description  Appends a manual timeline entry to the lead
// @Tags         Leads
// @Accept       json
// @Produce      json
// @Param        id    path      int                 true  "Lead id"
// @Param        body  body      logActivityRequest  true  "Activity"
// @Success      201   {object}  map[string]interface{}
// @Router       /leads/{id}/activities [post]
func (h *LeadHandler) LogActivity(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}

	var req logActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	actorID, _ := getUserAndRole(c)
	activity, err := h.Service.LogActivity(id, models.ActivityType(req.Type), req.Notes, actorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"activity": activity})
}

type recordPaymentRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Method string  `json:"method"`
	Notes  string  `json:"notes"`
}

// @Summary      Record payment
// @Tags         Leads
// @Accept       json
// @Produce      json
// @Param        id    path      int                   true  "Lead id"
// @Param        body  body      recordPaymentRequest  true  "Payment"
// @Success      201   {object}  map[string]interface{}
// @Router       /leads/{id}/payments [post]
func (h *LeadHandler) RecordPayment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}

	var req recordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	actorID, _ := getUserAndRole(c)
	payment, err := h.Service.RecordPayment(id, req.Amount, req.Method, req.Notes, actorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"payment": payment})
}

type attachReferralRequest struct {
	ReferralCode string `json:"referral_code" binding:"required"`
}

// @Summary      Attach referral code
// @Description  Links an unlinked lead to a referral after creation
// @Tags         Leads
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true  "Lead id"
// @Param        body  body      attachReferralRequest  true  "Code"
// @Success      200   {object}  map[string]interface{}
// @Failure      404   {object}  map[string]string
// @Router       /leads/{id}/referral-code [post]
func (h *LeadHandler) AttachReferralCode(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}

	var req attachReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	actorID, _ := getUserAndRole(c)
	lead, err := h.Service.AttachReferralCode(id, req.ReferralCode, actorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"lead": lead})
}

// @Summary      Export lead PDF
// @Tags         Leads
// @Produce      application/pdf
// @Param        id  path  int  true  "Lead id"
// @Success      200
// @Failure      404  {object}  map[string]string
// @Router       /leads/{id}/export [get]
func (h *LeadHandler) Export(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}

	lead, err := h.Service.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	data, err := h.Exporter.LeadSummary(lead)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="lead_%d.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", data)
}
