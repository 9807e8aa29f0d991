package request

type MovieRequest struct {
	Title    string  `json:"title" validate:"required,min=1,max=200"`
	Overview *string `json:"overview,omitempty"`
	Homepage *string `json:"homepage,omitempty" validate:"omitempty,max=2048"`
	ImgURL   *string `json:"imgUrl,omitempty" validate:"omitempty,max=2048"`
	Genre    string  `json:"genre" validate:"required,min=1,max=100"`
}

type MovieUpdateRequest struct {
	Title    *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Overview *string `json:"overview,omitempty"`
	Homepage *string `json:"homepage,omitempty" validate:"omitempty,max=2048"`
	ImgURL   *string `json:"imgUrl,omitempty" validate:"omitempty,max=2048"`
	Genre    *string `json:"genre,omitempty" validate:"omitempty,min=1,max=100"`
}

// MovieListRequest carries the query string of GET /movies.
type MovieListRequest struct {
	PaginatedRequest
	Genre  *string
	Search *string
}
