package entity

type Review struct {
	Base
	UserID  int64   `db:"user_id"`
	MovieID int64   `db:"movie_id"`
	Rating  int     `db:"rating"` // 1-5
	Comment *string `db:"comment"`
}

// ReviewWithUser is a review joined with its owner's public fields.
type ReviewWithUser struct {
	Review
	User UserSummary
}

// ReviewWithMovie is a review joined with the reviewed movie.
type ReviewWithMovie struct {
	Review
	Movie Movie
}

// ReviewDetail is a review with both its owner and its movie.
type ReviewDetail struct {
	Review
	User  UserSummary
	Movie Movie
}
