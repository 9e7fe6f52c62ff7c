package bracket

type Candidate struct {
	ID       string  `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	Author   string  `db:"author" json:"author"`
	ImageURL *string `db:"image_url" json:"imageUrl,omitempty"`
	Reason   *string `db:"reason" json:"reason,omitempty"`
}
