package model

// Playlist is a fetched YouTube playlist reduced to what the catalog stores.
type Playlist struct {
	ID     string     `json:"id"`
	Title  string     `json:"title"`
	URL    string     `json:"url"`
	Videos []VideoRef `json:"videos"`
}

// NewPlaylist creates an empty playlist for url.
func NewPlaylist(url string) *Playlist {
	return &Playlist{
		URL:    url,
		Videos: make([]VideoRef, 0),
	}
}

// AddVideo appends a video, skipping ids already present.
func (p *Playlist) AddVideo(ref VideoRef) bool {
	for _, v := range p.Videos {
		if v.SameVideo(ref) {
			return false
		}
	}
	p.Videos = append(p.Videos, ref)
	return true
}

// Len returns the number of videos.
func (p *Playlist) Len() int {
	return len(p.Videos)
}

// Favorites converts the playlist into favorites under category.
func (p *Playlist) Favorites(category string) []FavoriteEntry {
	out := make([]FavoriteEntry, 0, len(p.Videos))
	for _, v := range p.Videos {
		out = append(out, FavoriteEntry{Ref: v, Category: category}.Normalize())
	}
	return out
}
