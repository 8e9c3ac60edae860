package persistence

import (
	"time"
)

// PlanModel represents the plans table
type PlanModel struct {
	ID             string    `gorm:"column:id;primaryKey;not null"`
	Mode           string    `gorm:"column:mode;not null"`
	Reconciled     bool      `gorm:"column:reconciled;not null;default:false"`
	Targets        string    `gorm:"column:targets;type:text"` // JSON array as text
	Graph          string    `gorm:"column:graph;type:text"`   // JSON document as text
	NodeCount      int       `gorm:"column:node_count;not null;default:0"`
	TotalFactories float64   `gorm:"column:total_factories;not null;default:0"`
	CreatedAt      time.Time `gorm:"column:created_at;not null;index"`
}

func (PlanModel) TableName() string {
	return "plans"
}

// targetRecord is the stored form of production.Target
type targetRecord struct {
	Item     string  `json:"item"`
	Resolved string  `json:"resolved"`
	Rate     float64 `json:"rate"`
}

// graphRecord is the stored form of production.Graph; slices keep insertion order
type graphRecord struct {
	Nodes   []nodeRecord `json:"nodes"`
	Edges   []edgeRecord `json:"edges"`
	Targets []string     `json:"targets"`
}

type nodeRecord struct {
	Name     string  `json:"name"`
	Load     float64 `json:"load"`
	Category string  `json:"category,omitempty"`
	Raw      bool    `json:"raw,omitempty"`
	Process  bool    `json:"process,omitempty"`
}

type edgeRecord struct {
	Producer string  `json:"producer"`
	Consumer string  `json:"consumer"`
	Rate     float64 `json:"rate"`
}
