package model

import "github.com/google/uuid"

// IsUUID accepts only the canonical 8-4-4-4-12 form. uuid.Parse on its own
// also takes urn:uuid: and braced variants, which Postgres rejects.
func IsUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
