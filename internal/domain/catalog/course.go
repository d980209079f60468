package catalog

import "time"

// Course groups packages on the storefront. Referenced by Package.CourseID;
// the FK constraint is what rejects packages pointing at a missing course.
type Course struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`
	Slug string `gorm:"not null;uniqueIndex:idx_courses_slug" json:"slug"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
