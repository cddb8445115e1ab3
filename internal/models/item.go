package models

// ItemType tells vegetarian items apart from the rest
type ItemType string

const (
	ItemTypeVeg    ItemType = "VEG"
	ItemTypeNonVeg ItemType = "NON_VEG"
)

// Item is a dish that can be looked up by its uuid
type Item struct {
	ID       int64    `json:"-" gorm:"primaryKey;autoIncrement"`
	UUID     string   `json:"id" gorm:"column:uuid;size:200;uniqueIndex;not null"`
	ItemName string   `json:"itemName" gorm:"column:item_name;size:30;not null"`
	Price    int64    `json:"price" gorm:"column:price;not null"`
	Type     ItemType `json:"itemType" gorm:"column:type;size:10;not null"`
	ImageKey string   `json:"-" gorm:"column:image_key;size:255"`
}

func (Item) TableName() string {
	return "item"
}

// Valid reports whether the item type is one of the known values
func (t ItemType) Valid() bool {
	return t == ItemTypeVeg || t == ItemTypeNonVeg
}
