package entity

// Category is a user-visible tag. The set is replaced wholesale on edit,
// so there is no per-row lifecycle beyond the id being stable.
type Category struct {
	ID    string `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"not null" json:"name"`
	Emoji string `gorm:"not null" json:"emoji"`
	Color string `gorm:"not null" json:"color"`
}
