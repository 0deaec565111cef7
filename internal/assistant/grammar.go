package assistant

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/logs"
)

const (
	maxGrammarIssues  = 8
	longSentenceWords = 36
	grammarLocale     = "en-US"
)

var grammarClient = resty.New().SetTimeout(6 * time.Second)

type grammarMatch struct {
	Message string `json:"message"`
	Rule    struct {
		IssueType string `json:"issueType"`
	} `json:"rule"`
	Context struct {
		Text   string `json:"text"`
		Offset int    `json:"offset"`
		Length int    `json:"length"`
	} `json:"context"`
}

type grammarResponse struct {
	Matches []grammarMatch `json:"matches"`
}

// CheckGrammar interroge le service de grammaire externe et mappe jusqu'à
// 8 problèmes retournés. Toute défaillance (réseau, 5xx, service non
// configuré) bascule silencieusement sur l'heuristique locale : les erreurs
// du service ne remontent jamais à l'appelant.
func CheckGrammar(content string) []Warning {
	apiURL := os.Getenv("GRAMMAR_API_URL")
	if apiURL == "" {
		return fallbackGrammarCheck(content)
	}

	var parsed grammarResponse
	resp, err := grammarClient.R().
		SetFormData(map[string]string{
			"text":     content,
			"language": grammarLocale,
		}).
		SetResult(&parsed).
		Post(apiURL + "/check")

	if err != nil || resp.IsError() {
		fields := map[string]interface{}{"url": apiURL}
		if err != nil {
			fields["error"] = err.Error()
		} else {
			fields["status"] = resp.StatusCode()
		}
		logs.LogJSON("WARN", "Grammar service unavailable, using local heuristics", fields)
		return fallbackGrammarCheck(content)
	}

	var warnings []Warning
	for _, m := range parsed.Matches {
		if len(warnings) >= maxGrammarIssues {
			break
		}
		severity, code := classifyGrammarIssue(m.Rule.IssueType)
		warnings = append(warnings, newWarning(SourceGrammar, severity,
			m.Message, excerpt(m.Context.Text), []string{code}, false))
	}
	return warnings
}

// classifyGrammarIssue mappe le type de règle du service vers nos codes.
func classifyGrammarIssue(issueType string) (severity, code string) {
	switch strings.ToLower(issueType) {
	case "misspelling", "typographical", "whitespace":
		return SeverityLow, "SPELLING_AND_GRAMMAR"
	case "punctuation", "grammar":
		return SeverityMedium, "SPELLING_AND_GRAMMAR"
	default: // style, redundancy, etc.
		return SeverityLow, "CLARITY_AND_STRUCTURE"
	}
}

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]+\s+|[.!?]+$`)
	punctClusterRe  = regexp.MustCompile(`[!?]{3,}`)
)

// fallbackGrammarCheck : heuristique locale quand le service est injoignable.
func fallbackGrammarCheck(content string) []Warning {
	var warnings []Warning

	var longSentences []string
	for _, sentence := range sentenceSplitRe.Split(content, -1) {
		if len(strings.Fields(sentence)) > longSentenceWords {
			longSentences = append(longSentences, strings.TrimSpace(sentence))
		}
	}
	if len(longSentences) > 0 {
		severity := SeverityLow
		if len(longSentences) > 2 {
			severity = SeverityMedium
		}
		warnings = append(warnings, newWarning(SourceGrammar, severity,
			fmt.Sprintf("%d sentence(s) exceed %d words and may be hard to follow.",
				len(longSentences), longSentenceWords),
			excerpt(longSentences[0]), []string{"CLARITY_AND_STRUCTURE"}, false))
	}

	if clusters := punctClusterRe.FindAllString(content, -1); len(clusters) > 0 {
		warnings = append(warnings, newWarning(SourceGrammar, SeverityLow,
			"Repeated punctuation clusters found.",
			strings.Join(clusters, " "), []string{"SPELLING_AND_GRAMMAR"}, false))
	}

	return warnings
}

// excerpt tronque sur une frontière de rune, jamais au milieu d'un
// caractère multi-octets.
func excerpt(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) > 80 {
		return string(runes[:77]) + "..."
	}
	return text
}
