package types

// Document represents an identity document stored for a mechanic,
// e.g. a passport scan. The file bytes live in the blob store under
// FileKey; this row holds the metadata.
type Document struct {
	// ID is the unique identifier of the document.
	ID int `json:"id" db:"id"`

	// MechanicID references the owning mechanic.
	MechanicID int `json:"mechanic_id" db:"mechanic_id"`

	// Type is the document kind, e.g. "passport". At most one document
	// of a given type exists per mechanic.
	Type string `json:"type" db:"type"`

	// FileKey is the blob-store key of the uploaded file. Unique among
	// all stored files.
	FileKey string `json:"file_key" db:"file_key"`
}
