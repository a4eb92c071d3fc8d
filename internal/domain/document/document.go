package document

import "strings"

// Kind is the type of document the model is asked to write.
type Kind string

const (
	KindResume            Kind = "resume"
	KindCoverLetter       Kind = "cover-letter"
	KindApplicationAnswer Kind = "application-answer"
)

var Kinds = []Kind{KindResume, KindCoverLetter, KindApplicationAnswer}

func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Label is the human-readable name used inside prompts.
func (k Kind) Label() string {
	return strings.ReplaceAll(string(k), "-", " ")
}

// JobInfo describes the opportunity a document is tailored to.
type JobInfo struct {
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	Description string `json:"description"`
	JobType     string `json:"jobType"`
	Location    string `json:"location,omitempty"`
}

// MissingFields lists every required job field that is empty.
func (j JobInfo) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(j.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(j.JobType) == "" {
		missing = append(missing, "jobType")
	}
	return missing
}

type Usage struct {
	InputTokens              int64  `json:"inputTokens"`
	OutputTokens             int64  `json:"outputTokens"`
	CacheReadInputTokens     *int64 `json:"cacheReadInputTokens,omitempty"`
	CacheCreationInputTokens *int64 `json:"cacheCreationInputTokens,omitempty"`
}

type Result struct {
	Content string `json:"content"`
	Usage   Usage  `json:"usage"`
}

// UsageTotals accumulates usage across every call for one kind.
type UsageTotals struct {
	Calls                    int64 `json:"calls"`
	InputTokens              int64 `json:"inputTokens"`
	OutputTokens             int64 `json:"outputTokens"`
	CacheReadInputTokens     int64 `json:"cacheReadInputTokens"`
	CacheCreationInputTokens int64 `json:"cacheCreationInputTokens"`
}
