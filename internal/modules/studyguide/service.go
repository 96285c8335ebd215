package studyguide

import (
	"context"
	"fmt"
	"strings"

	"tutorhub/internal/pkg/mail"
)

// guideFiles maps a major to its downloadable blueprint. Unknown
// majors fall back to the general guide.
var guideFiles = map[string]string{
	"nursing":    "nursing-blueprint.pdf",
	"business":   "finance-blueprint.pdf",
	"stem":       "stem-blueprint.pdf",
	"humanities": "humanities-blueprint.pdf",
}

const defaultGuideFile = "general-blueprint.pdf"

type Service struct {
	mailer  mail.Mailer
	baseURL string
}

func NewService(mailer mail.Mailer, baseURL string) *Service {
	return &Service{mailer: mailer, baseURL: baseURL}
}

// SendGuide emails the requester a download link for the study guide
// matching their major. The send is synchronous so the caller can tell
// the visitor whether the email actually went out.
func (s *Service) SendGuide(ctx context.Context, req GuideRequest) error {
	major := strings.ToLower(strings.TrimSpace(req.Major))
	file, ok := guideFiles[major]
	if !ok {
		file = defaultGuideFile
	}
	link := fmt.Sprintf("%s/dl/%s", s.baseURL, file)

	body := fmt.Sprintf(
		"<h2>Your Academic Blueprint is Ready!</h2>"+
			"<p>Hi %s,</p>"+
			"<p>Here is the %s study guide you requested:</p>"+
			"<p><a href=%q>Download your blueprint</a></p>"+
			"<p>Good luck with your studies!</p>",
		req.FirstName, titleCase(major), link,
	)
	return s.mailer.Send(ctx, req.Email, "Your Academic Blueprint is Ready!", body)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
