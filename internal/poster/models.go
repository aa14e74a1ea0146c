// Package poster holds the request and result shapes exchanged with the
// poster generation backend.
package poster

// Request is the body posted to the generation endpoint.
type Request struct {
	Caution  string `json:"caution" form:"caution" validate:"required"`
	Location string `json:"location" form:"location" validate:"required"`
	Checks   string `json:"checks" form:"checks" validate:"required"`
	Size     string `json:"size" form:"size"`
}

// Translation is the notice text rendered in one poster's language.
type Translation struct {
	Caution  string `json:"caution"`
	Location string `json:"location"`
	Checks   string `json:"checks"`
}

// Image is one generated poster.
type Image struct {
	Language    string      `json:"language,omitempty"`
	Label       string      `json:"label"`
	Image       string      `json:"image"`
	Translation Translation `json:"translation"`
}

// GenerateResponse is the success body of the generation endpoint.
type GenerateResponse struct {
	Images []Image `json:"images"`
}

// Sizes offered by the size selector. The first entry is the default.
var Sizes = []string{"1024x1024", "1536x1024", "1024x1536", "auto"}

// DefaultSize is preselected on a fresh form.
const DefaultSize = "1024x1024"

// Sample is the example notice copied into the form by the sample-fill action.
var Sample = Request{
	Caution:  "크레인 회전 반경 내 출입 금지, 신호수 지시에 따라 이동",
	Location: "3동 옥상 방수 보강 구간",
	Checks:   "공구 정리, 난간 고정 상태 확인, 폐기물 분리배출, 안전대 훅 분리 후 회수",
}
