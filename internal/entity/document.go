package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentReference points at the one active uploaded document for an owner.
type DocumentReference struct {
	OwnerID        uuid.UUID `json:"owner_id"`
	StorageLocator string    `json:"storage_locator"`
	DisplayName    string    `json:"display_name"`
	UploadedAt     time.Time `json:"uploaded_at"`
}
