package entity

type Movie struct {
	Base
	Title    string  `db:"title"`
	Overview *string `db:"overview"`
	Homepage *string `db:"homepage"`
	ImgURL   *string `db:"img_url"`
	Genre    string  `db:"genre"`
}

// RatingStats is the on-demand aggregate of a movie's reviews.
type RatingStats struct {
	AverageRating float64
	ReviewCount   int64
}

type MovieWithRating struct {
	Movie
	RatingStats
}
