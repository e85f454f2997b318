package entity

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AIAnalysis is a persisted record of a completed single-symbol analysis.
type AIAnalysis struct {
	ID             int64          `json:"id"`
	Symbol         string         `json:"symbol"`
	Recommendation string         `json:"recommendation"`
	Confidence     int            `json:"confidence"`
	Reasoning      string         `json:"reasoning"`
	TargetPrice    float64        `json:"target_price"`
	StopLoss       float64        `json:"stop_loss"`
	Timeframe      string         `json:"timeframe"`
	RiskLevel      string         `json:"risk_level"`
	KeyFactors     datatypes.JSON `gorm:"type:jsonb" json:"key_factors"`
	RequestData    datatypes.JSON `gorm:"type:jsonb" json:"request_data"`
	ResponseData   datatypes.JSON `gorm:"type:jsonb" json:"response_data"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"deleted_at"`
}

func (AIAnalysis) TableName() string {
	return "ai_analyses"
}
