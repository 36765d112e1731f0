// internal/models/category.go
package models

type Category struct {
	BaseModel
	Name        string `json:"name" gorm:"uniqueIndex;size:255;not null"`
	Description string `json:"description" gorm:"type:text"`
	Image       string `json:"image" gorm:"size:512"`

	Products []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID"`
}
