package media

// Object is the durable handle the media backend returns for a stored binary.
type Object struct {
	URL      string `json:"url"`
	ObjectID string `json:"object_id"`
}

// Store is the media backend contract. This service keeps only the object ID
// on the owning record and resolves it again at deletion time; Release must
// tolerate objects that are already gone.
type Store interface {
	Store(data []byte, contentType string) (Object, error)
	Release(objectID string) error
}
