package contracts

import "time"

// FilingReference identifies one disclosure returned by the filing index
// ⭐ SSOT: Index → Fetcher 로 전달되는 공시 식별자
type FilingReference struct {
	ID         string    `json:"id"`          // search hit id, e.g. "0001193125-24-012345:d1.htm"
	IssuerName string    `json:"issuer_name"` // display name of the filing entity
	CIK        string    `json:"cik"`         // leading zeros preserved
	FormType   string    `json:"form_type,omitempty"`
	FiledAt    time.Time `json:"filed_at,omitempty"`
}

// Label is a short human-readable identity for logs and reports
func (f FilingReference) Label() string {
	if f.IssuerName == "" {
		return f.ID
	}
	return f.IssuerName + " (" + f.ID + ")"
}
