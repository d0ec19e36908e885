package domain

// Raw provider record shapes. The provider returns two variants: a
// lightweight list item (search/browse/discover results) and a full
// detail record carrying credits and watch-provider information. They
// are modeled as explicit types rather than probed field-by-field.

// Genre is a provider genre table entry.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProviderRecord is a lightweight list-item record. List results carry
// bare genre ids; detail records carry full genre objects instead.
type ProviderRecord struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	GenreIDs     []int   `json:"genre_ids"`
	Genres       []Genre `json:"genres"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Popularity   float64 `json:"popularity"`
}

// CastMember is a credited cast entry.
type CastMember struct {
	Name      string `json:"name"`
	Character string `json:"character"`
}

// CrewMember is a credited crew entry.
type CrewMember struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

// Credits holds the cast and crew of a detail record.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// WatchOffer is a single watch-provider offer.
type WatchOffer struct {
	ProviderID   int    `json:"provider_id"`
	ProviderName string `json:"provider_name"`
}

// WatchRegion holds the offers available in one region. Only the
// subscription streaming tier is consumed.
type WatchRegion struct {
	Flatrate []WatchOffer `json:"flatrate"`
}

// WatchProviders maps region codes to their available offers.
type WatchProviders struct {
	Results map[string]WatchRegion `json:"results"`
}

// ProviderDetail is the full detail record variant.
type ProviderDetail struct {
	ProviderRecord

	Credits        Credits        `json:"credits"`
	WatchProviders WatchProviders `json:"watch/providers"`
}

// ProviderPage is one page of provider results.
type ProviderPage struct {
	Page         int              `json:"page"`
	Results      []ProviderRecord `json:"results"`
	TotalPages   int              `json:"total_pages"`
	TotalResults int              `json:"total_results"`
}
