package transfer

// FacebookPostRequest is the Graph API photo-publish payload.
type FacebookPostRequest struct {
	URL         string `json:"url"`
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
}

// FacebookError is the error object embedded in Graph API responses.
type FacebookError struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode,omitempty"`
}

// FacebookPostResponse is the Graph API response body for a photo publish.
// Error is non-nil even on HTTP 200 when the call failed.
type FacebookPostResponse struct {
	ID     string         `json:"id"`
	PostID string         `json:"post_id,omitempty"`
	Error  *FacebookError `json:"error,omitempty"`
}

// PublishResult is returned to the dashboard after a successful publish,
// and inside the error payload when the post was already published.
type PublishResult struct {
	PostID         string `json:"post_id"`
	FacebookPostID string `json:"facebook_post_id"`
	FacebookURL    string `json:"facebook_url"`
	PostedAt       string `json:"posted_at,omitempty"`
}
