package services

import (
	"partnerleads/internal/apperrors"
	"partnerleads/internal/models"
)

// DashboardMetrics backs the four summary tiles on the dashboard.
type DashboardMetrics struct {
	TotalLeads    int     `json:"total_leads"`
	PartnerLeads  int     `json:"partner_leads"`
	Converted     int     `json:"converted"`
	PipelineValue float64 `json:"pipeline_value"`
}

type DashboardService struct {
	leads LeadStore
}

func NewDashboardService(leads LeadStore) *DashboardService {
	return &DashboardService{leads: leads}
}

func (s *DashboardService) Metrics() (*DashboardMetrics, error) {
	stats, err := s.leads.Statistics()
	if err != nil {
		return nil, apperrors.Persistencef("lead statistics", err)
	}
	pipeline, err := s.leads.PipelineValue()
	if err != nil {
		return nil, apperrors.Persistencef("pipeline value", err)
	}
	return &DashboardMetrics{
		TotalLeads:    stats.Total,
		PartnerLeads:  stats.BySource[models.LeadSourcePartner],
		Converted:     stats.ByStatus[models.LeadStatusConverted],
		PipelineValue: pipeline,
	}, nil
}
