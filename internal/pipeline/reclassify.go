package pipeline

import "github.com/sq-invest/crm-service/internal/domain"

// Reclassify applies a drag from source to dest. A nil dest is a cancelled drop.
// The dragged contact takes dest's canonical status, discarding any more specific
// status it held. Membership is derived from status, so source is not consulted.
// The result is a new slice; contacts is not modified.
func Reclassify(contacts []domain.Contact, source, dest *Bucket, contactID string) []domain.Contact {
	out := cloneAll(contacts)
	if dest == nil {
		return out
	}
	status, ok := CanonicalStatus(*dest)
	if !ok {
		return out
	}
	for i := range out {
		if out[i].ID != contactID {
			continue
		}
		if out[i].Status != status {
			out[i].Status = status
		}
		break
	}
	return out
}

func cloneAll(contacts []domain.Contact) []domain.Contact {
	out := make([]domain.Contact, len(contacts))
	for i, c := range contacts {
		out[i] = c.Clone()
	}
	return out
}
