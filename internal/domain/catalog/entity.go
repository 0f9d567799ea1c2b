package catalog

// HostelService is one bookable offering in the catalog.
type HostelService struct {
	ID           int64   `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description  string  `gorm:"type:text" json:"description"`
	Price        float64 `gorm:"type:numeric(8,2);not null;check:price >= 0" json:"price"`
	Duration     string  `gorm:"size:50" json:"duration"`
	Rating       float64 `gorm:"type:numeric(3,1);not null" json:"rating"`
	Availability bool    `gorm:"not null" json:"availability"`
	ProviderName string  `gorm:"size:100" json:"provider_name"`
}

func (HostelService) TableName() string { return "services" }
