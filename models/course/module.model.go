package course

import "gorm.io/gorm"

// Module represents one unit of course content in the fixed sequence
type Module struct {
	gorm.Model
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"` // HTML body shown once the gate allows access
	VideoURL    string `json:"video_url"`
	OrderIndex  int    `json:"order_index" gorm:"index;default:0"` // position in the course sequence
	IsFree      bool   `json:"is_free" gorm:"default:false"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}
