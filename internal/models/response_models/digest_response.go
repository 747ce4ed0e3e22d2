package response_models

// DigestResponse is the deterministic selection for one newsletter issue.
type DigestResponse struct {
	Featured ContentResponse   `json:"featured"`
	Recent   []ContentResponse `json:"recent"`
}

type DigestSendReport struct {
	DigestID    string `json:"digest_id"`
	Subject     string `json:"subject"`
	SentCount   int    `json:"sent_count"`
	FailedCount int    `json:"failed_count"`
}
