package domain

import "time"

// Analytics result records. Field names mirror the platform's inference API
// wire format (camelCase JSON). Every record carries a Fallback marker so
// downstream code can tell live data from a synthesized placeholder.

// ScorePoint is one entry of a monthly ESG score projection.
type ScorePoint struct {
	Month      string  `json:"month"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
}

// ESGPrediction is the result of a score prediction call.
type ESGPrediction struct {
	CurrentScore    float64      `json:"currentScore"`
	PredictedScores []ScorePoint `json:"predictedScores"`
	Trend           string       `json:"trend"`
	Confidence      float64      `json:"confidence"`
	KeyDrivers      []string     `json:"keyDrivers"`
	RiskFactors     []string     `json:"riskFactors"`
	Fallback        bool         `json:"isFallback"`
}

// RiskCategory scores one ESG pillar.
type RiskCategory struct {
	Score   float64  `json:"score"`
	Level   string   `json:"level"`
	Factors []string `json:"factors"`
}

// RiskItem is a single identified risk with its mitigation.
type RiskItem struct {
	Type        string  `json:"type"`
	Probability float64 `json:"probability"`
	Impact      string  `json:"impact"`
	Mitigation  string  `json:"mitigation"`
}

// RiskAssessment is the result of a portfolio risk scoring call.
type RiskAssessment struct {
	OverallRiskScore float64                 `json:"overallRiskScore"`
	RiskCategories   map[string]RiskCategory `json:"riskCategories"`
	TopRisks         []RiskItem              `json:"topRisks"`
	Recommendations  []string                `json:"recommendations"`
	Fallback         bool                    `json:"isFallback"`
}

// CarbonPoint is one entry of a monthly emissions forecast.
type CarbonPoint struct {
	Month      string  `json:"month"`
	Predicted  float64 `json:"predicted"`
	Confidence float64 `json:"confidence"`
}

// CarbonForecast is the result of an emissions forecasting call.
type CarbonForecast struct {
	CurrentEmissions          float64       `json:"currentEmissions"`
	ForecastData              []CarbonPoint `json:"forecastData"`
	ReductionPotential        float64       `json:"reductionPotential"`
	KeyDrivers                []string      `json:"keyDrivers"`
	OptimizationOpportunities []string      `json:"optimizationOpportunities"`
	Fallback                  bool          `json:"isFallback"`
}

// ESGImpact weights a recommendation per pillar.
type ESGImpact struct {
	Environmental float64 `json:"environmental"`
	Social        float64 `json:"social"`
	Governance    float64 `json:"governance"`
}

// Recommendation is a single sustainability recommendation.
type Recommendation struct {
	Category           string    `json:"category"`
	Priority           string    `json:"priority"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	EstimatedSavings   string    `json:"estimatedSavings"`
	ImplementationTime string    `json:"implementationTime"`
	ESGImpact          ESGImpact `json:"esgImpact"`
	ROI                float64   `json:"roi"`
}

// RoadmapPhase is one phase of the implementation roadmap.
type RoadmapPhase struct {
	Phase    string `json:"phase"`
	Duration string `json:"duration"`
	Items    int    `json:"items"`
}

// RecommendationSet is the result of a recommendations call.
type RecommendationSet struct {
	Recommendations       []Recommendation `json:"recommendations"`
	TotalPotentialSavings string           `json:"totalPotentialSavings"`
	ImplementationRoadmap []RoadmapPhase   `json:"implementationRoadmap"`
	Fallback              bool             `json:"isFallback"`
}

// SentimentMetric scores one pillar of an analyzed document.
type SentimentMetric struct {
	Score     float64 `json:"score"`
	Mentions  int     `json:"mentions"`
	Sentiment string  `json:"sentiment"`
}

// ComplianceStatus summarizes compliance findings of a document.
type ComplianceStatus struct {
	Overall         string   `json:"overall"`
	Gaps            []string `json:"gaps"`
	Recommendations []string `json:"recommendations"`
}

// EmissionsBreakdown is scope 1/2/3 tonnage extracted from a document.
type EmissionsBreakdown struct {
	Scope1 float64 `json:"scope1"`
	Scope2 float64 `json:"scope2"`
	Scope3 float64 `json:"scope3"`
}

// EnergyBreakdown is the renewable share extracted from a document.
type EnergyBreakdown struct {
	Renewable float64 `json:"renewable"`
	Total     float64 `json:"total"`
}

// WaterBreakdown is water usage extracted from a document.
type WaterBreakdown struct {
	Consumption float64 `json:"consumption"`
	Recycled    float64 `json:"recycled"`
}

// ExtractedData groups the quantitative metrics pulled out of a document.
type ExtractedData struct {
	Emissions EmissionsBreakdown `json:"emissions"`
	Energy    EnergyBreakdown    `json:"energy"`
	Water     WaterBreakdown     `json:"water"`
}

// DocumentAnalysis is the result of a document analysis upload.
type DocumentAnalysis struct {
	Summary          string                     `json:"summary"`
	ESGMetrics       map[string]SentimentMetric `json:"esgMetrics"`
	KeyInsights      []string                   `json:"keyInsights"`
	ComplianceStatus ComplianceStatus           `json:"complianceStatus"`
	ExtractedData    ExtractedData              `json:"extractedData"`
	Fallback         bool                       `json:"isFallback"`
}

// ExecutiveSummary opens a generated report.
type ExecutiveSummary struct {
	OverallESGScore     float64  `json:"overallESGScore"`
	Trend               string   `json:"trend"`
	KeyAchievements     []string `json:"keyAchievements"`
	AreasForImprovement []string `json:"areasForImprovement"`
}

// PillarAnalysis details one ESG pillar inside a report.
type PillarAnalysis struct {
	Score           float64  `json:"score"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
}

// ReportPredictions is the forward-looking section of a report.
type ReportPredictions struct {
	NextQuarterScore float64  `json:"nextQuarterScore"`
	NextYearScore    float64  `json:"nextYearScore"`
	Confidence       float64  `json:"confidence"`
	KeyDrivers       []string `json:"keyDrivers"`
}

// ActionPlan is the closing section of a report.
type ActionPlan struct {
	Immediate []string `json:"immediate"`
	ShortTerm []string `json:"shortTerm"`
	LongTerm  []string `json:"longTerm"`
}

// AIReport is the result of a full report generation call.
type AIReport struct {
	ReportID         string                    `json:"reportId"`
	GeneratedAt      time.Time                 `json:"generatedAt"`
	ExecutiveSummary ExecutiveSummary          `json:"executiveSummary"`
	DetailedAnalysis map[string]PillarAnalysis `json:"detailedAnalysis"`
	Predictions      ReportPredictions         `json:"predictions"`
	ActionPlan       ActionPlan                `json:"actionPlan"`
	Fallback         bool                      `json:"isFallback"`
}

// PanelBundle groups the cached dashboard panels for one client.
type PanelBundle struct {
	ClientID        string             `json:"client_id"`
	Prediction      *ESGPrediction     `json:"prediction,omitempty"`
	Risks           *RiskAssessment    `json:"risks,omitempty"`
	Carbon          *CarbonForecast    `json:"carbon,omitempty"`
	Recommendations *RecommendationSet `json:"recommendations,omitempty"`
	RefreshedAt     time.Time          `json:"refreshed_at"`
}
