package nga

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/gyokusei/nga-cli/domain"
)

// verifyEndpoint is a listing only logged-in users can open. Its response is
// a full markup page, not JSON, so identity extraction works on raw page
// text and bypasses the Decoder.
const verifyEndpoint = "/thread.php?fid=-7"

var (
	userObjectRe  = regexp.MustCompile(`window\.__U\s*=\s*(\{.*?\});`)
	currentNameRe = regexp.MustCompile(`__CURRENT_UNAME = '([^']*)',`)
)

// VerifySession checks whether the configured cookie is accepted by fetching
// an authenticated-only page and pulling the user identity out of it. A nil
// identity with nil error means the cookie was rejected.
func (c *Client) VerifySession(ctx context.Context) (*domain.UserIdentity, error) {
	if c.cookie == "" {
		return nil, nil
	}

	resp, err := c.http.R().SetContext(ctx).Get(verifyEndpoint)
	if err != nil {
		c.log.Error().Err(err).Msg("session check failed")
		return nil, &domain.APIError{Kind: domain.ErrTransport, Err: err}
	}

	// The page is served as GBK; decode lossily, a few mangled runes do not
	// matter for identity extraction.
	html, err := simplifiedchinese.GBK.NewDecoder().Bytes(resp.Body())
	if err != nil {
		html = resp.Body()
	}
	c.diag.Response(string(html))

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, nil
	}
	return extractIdentity(html), nil
}

// extractIdentity looks for the script-assigned user object first and falls
// back to the embedded username marker. Both absent means not logged in.
func extractIdentity(page []byte) *domain.UserIdentity {
	if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page)); err == nil {
		var found *domain.UserIdentity
		doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if id := identityFromScript(sel.Text()); id != nil {
				found = id
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}

	// Some error pages are not well-formed enough for the DOM pass; scan the
	// raw text for both markers as a fallback.
	if id := identityFromScript(string(page)); id != nil {
		return id
	}
	if m := currentNameRe.FindSubmatch(page); m != nil && len(m[1]) > 0 {
		return &domain.UserIdentity{Username: string(m[1])}
	}
	return nil
}

func identityFromScript(script string) *domain.UserIdentity {
	m := userObjectRe.FindStringSubmatch(script)
	if m == nil {
		return nil
	}
	var user struct {
		UID      json.Number `json:"uid"`
		Username string      `json:"username"`
	}
	if err := json.Unmarshal([]byte(m[1]), &user); err != nil {
		return nil
	}
	uid, _ := user.UID.Int64()
	if uid == 0 {
		return nil
	}
	return &domain.UserIdentity{UID: uid, Username: user.Username}
}
