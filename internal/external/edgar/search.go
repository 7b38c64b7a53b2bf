package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/wonny/oddlot/internal/contracts"
	"github.com/wonny/oddlot/pkg/httputil"
)

// searchRequest is the full-text search query body
type searchRequest struct {
	Query    string                         `json:"q"`
	Forms    []string                       `json:"forms"`
	Category string                         `json:"category"`
	From     int                            `json:"from"`
	Size     int                            `json:"size"`
	Sort     []map[string]map[string]string `json:"sort"`
}

// SearchResponse represents the full-text search response
type SearchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []SearchHit `json:"hits"`
	} `json:"hits"`
}

// SearchHit is one filing in a search response
type SearchHit struct {
	ID     string    `json:"_id"`
	Source HitSource `json:"_source"`
}

// HitSource holds the indexed fields of a hit. The endpoint has shipped both
// snake_case list fields and scalar camelCase ones; both are accepted.
type HitSource struct {
	CIKs            []string   `json:"ciks"`
	CIK             flexString `json:"cik"`
	DisplayNames    []string   `json:"display_names"`
	DisplayNamesAlt []string   `json:"displayNames"`
	Form            string     `json:"form"`
	FileType        string     `json:"file_type"`
	FileDate        string     `json:"file_date"`
}

// flexString accepts a JSON string or number
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if string(data) == "null" {
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// cikSuffix matches the "(CIK 0000123456)" tail of a display name
var cikSuffix = regexp.MustCompile(`\s*\(CIK\s+\d+\)\s*$`)

// FetchRecentFilings lists up to maxResults filings of formTypes, newest first.
// Pages are requested lazily until enough references are collected or the
// index runs out.
// ⭐ SSOT: EDGAR 공시 목록 호출은 이 함수에서만
func (c *Client) FetchRecentFilings(ctx context.Context, formTypes []string, maxResults int) ([]contracts.FilingReference, error) {
	if maxResults <= 0 {
		return nil, nil
	}

	refs := make([]contracts.FilingReference, 0, maxResults)

	for from := 0; len(refs) < maxResults; {
		size := min(pageSize, maxResults-len(refs))

		page, total, err := c.FetchPage(ctx, formTypes, from, size)
		if err != nil {
			return nil, err
		}

		c.logger.Debugf("Fetched index page from=%d hits=%d total=%d", from, len(page), total)

		refs = append(refs, page...)
		from += size

		if len(page) < size || (total > 0 && from >= total) {
			break
		}
	}

	if len(refs) > maxResults {
		refs = refs[:maxResults]
	}

	c.logger.WithFields(map[string]interface{}{
		"forms": strings.Join(formTypes, ","),
		"count": len(refs),
	}).Info("Fetched filing index")

	return refs, nil
}

// FetchPage requests one page of the index and returns its references and the
// index's reported total hit count
func (c *Client) FetchPage(ctx context.Context, formTypes []string, from, size int) ([]contracts.FilingReference, int, error) {
	body := searchRequest{
		Query:    buildQuery(formTypes),
		Forms:    formTypes,
		Category: "custom",
		From:     from,
		Size:     size,
		Sort:     []map[string]map[string]string{{"filedAt": {"order": "desc"}}},
	}

	resp, err := c.httpClient.PostJSON(ctx, c.searchURL, body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: search request: %w", contracts.ErrUpstreamUnavailable, err)
	}

	if !httputil.IsSuccess(resp.StatusCode) {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		resp.Body.Close()
		return nil, 0, fmt.Errorf("%w: unexpected status code: %d", contracts.ErrUpstreamUnavailable, resp.StatusCode)
	}

	raw, err := httputil.ReadBody(resp, 16<<20)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: read response: %w", contracts.ErrUpstreamUnavailable, err)
	}

	var result SearchResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, 0, fmt.Errorf("%w: decode response: %w", contracts.ErrUpstreamUnavailable, err)
	}

	refs := make([]contracts.FilingReference, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		ref, ok := hit.Reference()
		if !ok {
			c.logger.WithField("hit", hit.ID).Debug("Skipping search hit without id")
			continue
		}
		refs = append(refs, ref)
	}

	return refs, result.Hits.Total.Value, nil
}

// Reference converts a hit into a FilingReference. ok is false for hits
// without an id, which cannot be fetched.
func (h SearchHit) Reference() (contracts.FilingReference, bool) {
	if strings.TrimSpace(h.ID) == "" {
		return contracts.FilingReference{}, false
	}

	src := h.Source
	ref := contracts.FilingReference{
		ID:         h.ID,
		IssuerName: issuerName(src),
		CIK:        string(src.CIK),
		FormType:   src.Form,
	}
	if len(src.CIKs) > 0 {
		ref.CIK = src.CIKs[0]
	}
	if ref.FormType == "" {
		ref.FormType = src.FileType
	}
	if t, err := time.Parse("2006-01-02", src.FileDate); err == nil {
		ref.FiledAt = t
	}

	return ref, true
}

func issuerName(src HitSource) string {
	names := src.DisplayNames
	if len(names) == 0 {
		names = src.DisplayNamesAlt
	}
	if len(names) == 0 {
		return ""
	}
	return strings.TrimSpace(cikSuffix.ReplaceAllString(names[0], ""))
}

// buildQuery renders formTypes as a full-text query clause
func buildQuery(formTypes []string) string {
	quoted := make([]string, 0, len(formTypes))
	for _, f := range formTypes {
		quoted = append(quoted, `"`+f+`"`)
	}
	return "formType:(" + strings.Join(quoted, " OR ") + ")"
}
