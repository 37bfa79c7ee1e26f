package domain

import "context"

type Cafe struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	Name          string  `gorm:"size:250;uniqueIndex;not null" json:"name"`
	Location      string  `gorm:"size:250;uniqueIndex;not null" json:"location"`
	MapsURL       string  `gorm:"size:500;uniqueIndex;not null" json:"maps_url"`
	ImageURL      string  `gorm:"size:500;uniqueIndex;not null" json:"image_url"`
	Open          string  `gorm:"size:7;not null" json:"open"`
	Close         string  `gorm:"size:7;not null" json:"close"`
	WiFi          Amenity `gorm:"column:wifi" json:"wifi"`
	Sockets       Amenity `json:"sockets"`
	MountainViews Amenity `json:"mountain_views"`
}

func (Cafe) TableName() string { return "cafes" }

// HoursField 只允许更新这两列
type HoursField string

const (
	HoursOpen  HoursField = "open"
	HoursClose HoursField = "close"
)

// HoursMaxLen 与 open/close 列的 size:7 保持一致
const HoursMaxLen = 7

type CafeRepository interface {
	Create(ctx context.Context, c *Cafe) error
	FindByID(ctx context.Context, id uint) (*Cafe, error)
	FindByName(ctx context.Context, name string) (*Cafe, error)
	List(ctx context.Context) ([]Cafe, error)
	// UpdateHours 返回 false 表示 id 不存在
	UpdateHours(ctx context.Context, id uint, field HoursField, value string) (bool, error)
	// DeleteWithReviews 同一事务内先删评论再删店
	DeleteWithReviews(ctx context.Context, id uint) (bool, error)
}
