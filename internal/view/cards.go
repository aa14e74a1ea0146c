package view

import (
	"html/template"
	"net/url"
	"strings"

	"go-safety-poster/internal/poster"
)

// Fixed copy rendered around the cards.
const (
	EmptyMessage = "출력된 이미지가 없습니다. 내용을 입력하고 생성해보세요."

	HeadingCaution  = "오늘의 주의사항"
	HeadingLocation = "위치"
	HeadingChecks   = "마무리 작업 시 필수 확인사항"
)

// Card is the view of one generated poster. Text fields are escaped by the
// template; ImageSrc has already been vetted.
type Card struct {
	Language string
	Label    string
	Alt      string
	ImageSrc template.URL
	Caution  string
	Location string
	Checks   string
}

// Cards maps images to cards, preserving order.
func Cards(images []poster.Image) []Card {
	cards := make([]Card, 0, len(images))
	for _, img := range images {
		cards = append(cards, Card{
			Language: img.Language,
			Label:    img.Label,
			Alt:      img.Label + " safety poster",
			ImageSrc: ImageSource(img.Image),
			Caution:  img.Translation.Caution,
			Location: img.Translation.Location,
			Checks:   img.Translation.Checks,
		})
	}
	return cards
}

// ImageSource returns src when it is an http(s) URL or a data:image URI and
// the empty URL otherwise.
func ImageSource(src string) template.URL {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}

	if len(src) > len("data:image/") && strings.EqualFold(src[:len("data:image/")], "data:image/") {
		// Reject markup smuggled into the media type.
		if strings.ContainsAny(src, "\"'<> ") {
			return ""
		}
		return template.URL(src)
	}

	u, err := url.Parse(src)
	if err != nil || u.Host == "" {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return template.URL(u.String())
	}
	return ""
}
