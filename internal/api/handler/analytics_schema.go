package handler

type predictionRequest struct {
	ClientID    string `json:"client_id"    validate:"required"`
	TimeHorizon string `json:"time_horizon" validate:"omitempty,oneof=3months 6months 12months 24months"`
}

type riskRequest struct {
	PortfolioID string   `json:"portfolio_id" validate:"required"`
	RiskTypes   []string `json:"risk_types"   validate:"omitempty,dive,oneof=environmental social governance"`
}

type carbonRequest struct {
	ClientID       string `json:"client_id"       validate:"required"`
	ForecastPeriod string `json:"forecast_period" validate:"omitempty,oneof=3months 6months 12months 24months"`
}

type recommendationRequest struct {
	ClientID   string   `json:"client_id"   validate:"required"`
	FocusAreas []string `json:"focus_areas" validate:"omitempty,dive,oneof=environmental social governance"`
}

type reportRequest struct {
	ClientID   string `json:"client_id"   validate:"required"`
	ReportType string `json:"report_type" validate:"omitempty,oneof=comprehensive summary regulatory"`
	TimeRange  string `json:"time_range"`
}
