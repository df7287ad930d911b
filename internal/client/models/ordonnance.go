package models

// DefaultOrdonnanceImage is the placeholder asset used when a scanned
// prescription has no image of its own.
const DefaultOrdonnanceImage = "/images/dna.png"

// Ordonnance is one scanned prescription's summary metadata.
type Ordonnance struct {
	ID     ID       `json:"id"`
	Title  string   `json:"title"`
	Doctor string   `json:"doctor,omitempty"`
	Date   Time     `json:"date"`
	Tags   []string `json:"tags,omitempty"`
	Image  string   `json:"image,omitempty"`
}

// DisplayTitle returns the title to render, defaulting to "Ordonnance".
func (o Ordonnance) DisplayTitle() string {
	if o.Title == "" {
		return "Ordonnance"
	}
	return o.Title
}

// DisplayImage returns the image URL or the placeholder asset.
func (o Ordonnance) DisplayImage() string {
	if o.Image == "" {
		return DefaultOrdonnanceImage
	}
	return o.Image
}
