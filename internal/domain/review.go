package domain

// Review avaliação do prestador: onze critérios de 1 a 5 mais um
// comentário livre. Um prestador tem no máximo uma avaliação.
type Review struct {
	Agility        int    `json:"agility"`
	Cleanliness    int    `json:"cleanliness"`
	DetailOriented int    `json:"detailOriented"`
	Flexibility    int    `json:"flexibility"`
	Honesty        int    `json:"honesty"`
	Knowledge      int    `json:"knowledge"`
	Price          int    `json:"price"`
	Punctuality    int    `json:"punctuality"`
	Quality        int    `json:"quality"`
	Talkative      int    `json:"talkative"`
	UpToDate       int    `json:"upToDate"`
	Text           string `json:"text"`
}

// ReviewFieldCount número de critérios numéricos da avaliação.
const ReviewFieldCount = 11

func (r *Review) fields() [ReviewFieldCount]int {
	return [ReviewFieldCount]int{
		r.Agility,
		r.UpToDate,
		r.Talkative,
		r.Knowledge,
		r.DetailOriented,
		r.Flexibility,
		r.Honesty,
		r.Cleanliness,
		r.Punctuality,
		r.Price,
		r.Quality,
	}
}

// Average média aritmética dos onze critérios. Critérios não
// preenchidos entram como zero na soma: uma avaliação parcial puxa a
// média para baixo. Avaliação ausente vale 0.
func (r *Review) Average() float64 {
	if r == nil {
		return 0
	}
	total := 0
	for _, v := range r.fields() {
		total += v
	}
	return float64(total) / float64(ReviewFieldCount)
}
