package pipeline

import (
	"fmt"

	"github.com/sq-invest/crm-service/internal/domain"
)

// Bucket is one of the three board columns.
type Bucket string

const (
	BucketLeads     Bucket = "leads"
	BucketProspects Bucket = "prospects"
	BucketClients   Bucket = "clients"
)

type bucketDef struct {
	bucket    Bucket
	title     string
	canonical domain.ContactStatus
	statuses  []domain.ContactStatus
}

// Canonical status is the first status of each bucket.
var bucketTable = []bucketDef{
	{
		bucket:    BucketLeads,
		title:     "Leads",
		canonical: domain.StatusFreshLeads,
		statuses:  []domain.ContactStatus{domain.StatusFreshLeads, domain.StatusOpened, domain.StatusCallBacks},
	},
	{
		bucket:    BucketProspects,
		title:     "Prospects",
		canonical: domain.StatusKOL,
		statuses:  []domain.ContactStatus{domain.StatusKOL, domain.StatusLegal, domain.StatusNeedsTO, domain.StatusDeals},
	},
	{
		bucket:    BucketClients,
		title:     "Clients",
		canonical: domain.StatusClients,
		statuses:  []domain.ContactStatus{domain.StatusClients, domain.StatusDead},
	},
}

var statusBucket = func() map[domain.ContactStatus]Bucket {
	m := make(map[domain.ContactStatus]Bucket)
	for _, def := range bucketTable {
		for _, status := range def.statuses {
			m[status] = def.bucket
		}
	}
	return m
}()

// Buckets returns the columns in board order.
func Buckets() []Bucket {
	out := make([]Bucket, 0, len(bucketTable))
	for _, def := range bucketTable {
		out = append(out, def.bucket)
	}
	return out
}

// ParseBucket accepts a drop-zone identifier.
func ParseBucket(raw string) (Bucket, error) {
	for _, def := range bucketTable {
		if string(def.bucket) == raw {
			return def.bucket, nil
		}
	}
	return "", fmt.Errorf("unknown bucket %q", raw)
}

// BucketOf maps a status to its column.
func BucketOf(status domain.ContactStatus) (Bucket, bool) {
	b, ok := statusBucket[status]
	return b, ok
}

// CanonicalStatus is the status a contact takes when dropped into b.
func CanonicalStatus(b Bucket) (domain.ContactStatus, bool) {
	def, ok := lookup(b)
	if !ok {
		return "", false
	}
	return def.canonical, true
}

// StatusesOf lists the statuses rendered under b.
func StatusesOf(b Bucket) []domain.ContactStatus {
	def, ok := lookup(b)
	if !ok {
		return nil
	}
	return append([]domain.ContactStatus(nil), def.statuses...)
}

// Title is the display name of b.
func (b Bucket) Title() string {
	if def, ok := lookup(b); ok {
		return def.title
	}
	return string(b)
}

func lookup(b Bucket) (bucketDef, bool) {
	for _, def := range bucketTable {
		if def.bucket == b {
			return def, true
		}
	}
	return bucketDef{}, false
}
