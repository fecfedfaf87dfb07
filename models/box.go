package models

// Box is a service bay place. Orders reference ID; people refer to (BoxNumber, PlaceNumber).
type Box struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	BoxNumber   int  `gorm:"not null;uniqueIndex:idx_box_place,priority:1" json:"boxNumber"`
	PlaceNumber int  `gorm:"not null;uniqueIndex:idx_box_place,priority:2" json:"placeNumber"`
}

// TableName specifies the table name for the Box model
func (Box) TableName() string {
	return "Box"
}
