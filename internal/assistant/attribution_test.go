package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/submission"
)

func TestCheckAttributionExpoShortfall(t *testing.T) {
	sub := &submission.Submission{
		PostType: submission.TypeExpo,
		Images:   []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
		ImageAttributions: submission.AttributionList{
			{Kind: submission.AttributionOriginal},
		},
	}

	warnings := CheckAttribution(sub)

	assert.Len(t, warnings, 1)
	assert.Equal(t, SourceCopyright, warnings[0].Source)
	assert.Equal(t, SeverityMedium, warnings[0].Severity)
	assert.False(t, warnings[0].Blocking)
	assert.Contains(t, warnings[0].Evidence, "1 image(s)")
}

func TestCheckAttributionExpoIncompleteVariant(t *testing.T) {
	sub := &submission.Submission{
		PostType: submission.TypeExpo,
		Images:   []string{"https://cdn.example.com/a.jpg"},
		ImageAttributions: submission.AttributionList{
			{Kind: submission.AttributionAttributed, SourceURL: "https://photos.example.com"},
		},
	}

	warnings := CheckAttribution(sub)
	assert.Len(t, warnings, 1)
}

func TestCheckAttributionExpoComplete(t *testing.T) {
	sub := &submission.Submission{
		PostType: submission.TypeExpo,
		Images:   []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
		ImageAttributions: submission.AttributionList{
			{Kind: submission.AttributionOriginal},
			{Kind: submission.AttributionAttributed, SourceURL: "https://photos.example.com", AuthorName: "Jane Doe"},
		},
	}

	assert.Empty(t, CheckAttribution(sub))
}

func TestCheckAttributionNow(t *testing.T) {
	sub := &submission.Submission{
		PostType:     submission.TypeNow,
		ThumbnailURL: "https://cdn.example.com/thumb.jpg",
		ThumbnailAttribution: submission.Attribution{
			Kind: submission.AttributionCustom,
		},
	}

	warnings := CheckAttribution(sub)
	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "thumbnail")

	sub.ThumbnailAttribution.CreditText = "Photo by the SM Now team"
	assert.Empty(t, CheckAttribution(sub))
}

func TestCheckAttributionPods(t *testing.T) {
	assert.Empty(t, CheckAttribution(&submission.Submission{PostType: submission.TypePods}))
}
