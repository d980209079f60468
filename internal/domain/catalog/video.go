package catalog

import "time"

// Video is one playlist entry of a package. The encoded asset lives at the
// video host and is referenced by BunnyVideoID, assigned when the asset is
// created and never reused. OrderIndex drives playback order; the composite
// unique index serializes concurrent max+1 assignment (insert retries on
// conflict).
type Video struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Title string `gorm:"not null" json:"title"`

	BunnyVideoID string `gorm:"column:bunny_video_id;not null" json:"bunny_video_id"`

	PackageID  uint `gorm:"not null;uniqueIndex:idx_videos_package_order,priority:1" json:"package_id"`
	OrderIndex int  `gorm:"not null;uniqueIndex:idx_videos_package_order,priority:2" json:"order_index"`

	Stage       *string `json:"stage,omitempty"`
	Type        *string `gorm:"column:type" json:"type,omitempty"`
	DurationMin *int    `gorm:"column:duration_min" json:"duration_min,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
