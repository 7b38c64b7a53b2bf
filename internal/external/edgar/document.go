package edgar

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/wonny/oddlot/internal/contracts"
	"github.com/wonny/oddlot/pkg/httputil"
)

// accessionPrefix splits a search hit id into accession number and primary document name
var accessionPrefix = regexp.MustCompile(`^(\d{10}-\d{2}-\d{6})(?::(.+))?$`)

// DocumentURL builds the deterministic URL of a filing's document.
// A hit id "<accession>:<file>" resolves to the primary document under the
// filer's CIK and the undashed accession folder. A bare accession resolves to
// the complete submission text file. Anything else falls back to
// "<archives>/<id>.txt".
func DocumentURL(archivesURL string, ref contracts.FilingReference) string {
	base := strings.TrimRight(archivesURL, "/")

	m := accessionPrefix.FindStringSubmatch(ref.ID)
	cik := strings.TrimLeft(strings.TrimSpace(ref.CIK), "0")
	if m != nil && cik != "" {
		accession := m[1]
		file := strings.TrimLeft(strings.TrimSpace(m[2]), "/")
		if file == "" {
			return fmt.Sprintf("%s/edgar/data/%s/%s.txt", base, cik, accession)
		}
		return fmt.Sprintf("%s/edgar/data/%s/%s/%s", base, cik, strings.ReplaceAll(accession, "-", ""), file)
	}

	return base + "/" + strings.TrimLeft(ref.ID, "/") + ".txt"
}

// FetchText retrieves the full text of one filing
// ⭐ SSOT: EDGAR 문서 본문 호출은 이 함수에서만
func (c *Client) FetchText(ctx context.Context, ref contracts.FilingReference) (string, error) {
	url := DocumentURL(c.archivesURL, ref)

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", contracts.ErrFilingUnavailable, url, err)
	}

	if !httputil.IsSuccess(resp.StatusCode) {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		resp.Body.Close()
		return "", fmt.Errorf("%w: %s: unexpected status code: %d", contracts.ErrFilingUnavailable, url, resp.StatusCode)
	}

	body, err := httputil.ReadBody(resp, c.maxDocumentBytes)
	if err != nil {
		return "", fmt.Errorf("%w: %s: read body: %w", contracts.ErrFilingUnavailable, url, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"filing_id": ref.ID,
		"bytes":     len(body),
	}).Debug("Fetched filing text")

	return string(body), nil
}
