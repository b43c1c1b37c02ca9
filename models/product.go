package models

type Product struct {
	ID        string  `json:"id" bson:"id"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Stock     int     `json:"stock" bson:"stock"`
	Image     string  `json:"image,omitempty" bson:"image,omitempty"`
	Thumbnail string  `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
}
